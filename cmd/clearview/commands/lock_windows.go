//go:build windows

package commands

import (
	"errors"
	"syscall"

	"golang.org/x/sys/windows"

	"github.com/dixieflatline76/ClearView/config"
	"github.com/dixieflatline76/ClearView/util/log"
)

var mutex windows.Handle

// acquireLock creates a named mutex. It returns false when another instance
// already owns it.
func acquireLock() (bool, error) {
	namePtr, err := syscall.UTF16PtrFromString(config.AppName + "_SingleInstanceMutex")
	if err != nil {
		return false, err
	}

	mutex, err = windows.CreateMutex(nil, false, namePtr)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		if mutex != 0 {
			windows.CloseHandle(mutex)
			mutex = 0
		}
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// releaseLock releases the single-instance lock.
func releaseLock() {
	if mutex == 0 {
		return
	}
	if err := windows.ReleaseMutex(mutex); err != nil {
		log.Printf("Failed to release mutex: %v", err)
	}
	if err := windows.CloseHandle(mutex); err != nil {
		log.Printf("Failed to close mutex handle: %v", err)
	}
	mutex = 0
}
