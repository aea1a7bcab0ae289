//go:build !release

package log

import (
	"fmt"
	"log"
)

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}

// Debug logs with a [DEBUG] prefix.
func Debug(v ...interface{}) {
	output("[DEBUG] " + fmt.Sprint(v...))
}

// Debugf logs with a [DEBUG] prefix.
func Debugf(format string, v ...interface{}) {
	output("[DEBUG] " + fmt.Sprintf(format, v...))
}
