package imem

import (
	"io"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes path through fn so that readers observe either the
// previous file or the complete new one. The data goes to a temporary file in
// the same directory which is synced and renamed over path. On any error the
// temporary file is removed and path is left untouched.
//
// perm applies to a new file; replacing an existing regular file keeps its
// permission bits.
func WriteFileAtomic(path string, perm os.FileMode, fn func(io.Writer) error) (err error) {
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = fn(f); err != nil {
		return err
	}
	if err = f.Chmod(perm); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return err
	}

	// Persisting the rename is best effort; some platforms cannot sync a
	// directory handle.
	_ = syncDir(dir)
	return nil
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
