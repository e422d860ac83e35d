//go:build windows

package notes

// DefaultHardener returns the hardener for the current platform.
// Windows ACLs are not touched.
func DefaultHardener() PermissionHardener {
	return NoopHardener{}
}
