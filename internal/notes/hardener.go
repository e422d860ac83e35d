package notes

// PermissionHardener restricts access to store files and directories.
// Implementations are best-effort and never fail the surrounding operation.
type PermissionHardener interface {
	Harden(path string, isDir bool)
}

// NoopHardener leaves permissions as they are.
type NoopHardener struct{}

func (NoopHardener) Harden(string, bool) {}
