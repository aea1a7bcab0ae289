//go:build !windows

package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock(t *testing.T) {
	orig := lockPath
	t.Cleanup(func() { lockPath = orig })
	lockPath = filepath.Join(t.TempDir(), "clearview.lock")

	ok, err := acquireLock()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.FileExists(t, lockPath)

	info, err := os.Stat(lockPath)
	require.NoError(t, err)

	releaseLock()
	assert.Nil(t, lockFile)
	releaseLock()

	// The file is reused, not recreated, by the next instance.
	ok, err = acquireLock()
	require.NoError(t, err)
	assert.True(t, ok)
	again, err := os.Stat(lockPath)
	require.NoError(t, err)
	assert.True(t, os.SameFile(info, again))
	releaseLock()
	assert.FileExists(t, lockPath)
}
