package scanner

import (
	"io/fs"
	"path/filepath"

	"github.com/FroogalTheDragon/devclean/internal/core"
)

// DirSize returns the total length of all regular files under path.
// Symlinks are not followed and unreadable entries are skipped, so a missing
// path simply measures 0.
func DirSize(path string) int64 {
	var total int64

	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != path && core.IsReparsePoint(p) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})

	return total
}
