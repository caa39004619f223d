package outfile

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteGeneratedFile writes src to outPath through a temp file in the same
// directory and a rename, so readers never see a partial file. It returns
// false without touching the file when its content already equals src.
func WriteGeneratedFile(outPath string, src []byte) (bool, error) {
	old, err := os.ReadFile(outPath)
	switch {
	case err == nil && bytes.Equal(old, src):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(src); err != nil {
		_ = tmp.Close()
		return false, err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return false, err
	}
	return true, nil
}
