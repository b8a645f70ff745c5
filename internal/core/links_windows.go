//go:build windows

package core

import (
	"golang.org/x/sys/windows"
)

// IsReparsePoint reports whether path is a Windows junction or symlink
// (FILE_ATTRIBUTE_REPARSE_POINT). Traversal must never descend into one.
func IsReparsePoint(path string) bool {
	p, err := windows.UTF16PtrFromString(longPath(path))
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0
}
