package filemanager

import (
	"os"
	"path/filepath"
)

// atomicRename moves src over dst and then syncs the parent directory so the
// new directory entry survives a crash. Directory sync is best effort since
// not every platform supports it.
func atomicRename(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return err
	}
	if dir, err := os.Open(filepath.Dir(dst)); err == nil {
		_ = dir.Sync()
		_ = dir.Close()
	}
	return nil
}
