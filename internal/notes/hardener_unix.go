//go:build !windows

package notes

import "os"

// POSIXHardener sets 0700 on directories and 0600 on files.
type POSIXHardener struct{}

func (POSIXHardener) Harden(path string, isDir bool) {
	mode := os.FileMode(0600)
	if isDir {
		mode = 0700
	}
	_ = os.Chmod(path, mode)
}

// DefaultHardener returns the hardener for the current platform.
func DefaultHardener() PermissionHardener {
	return POSIXHardener{}
}
