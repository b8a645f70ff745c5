//go:build !windows

package core

// IsReparsePoint is always false outside Windows; symlinks are detected
// through the file mode instead.
func IsReparsePoint(path string) bool {
	return false
}
