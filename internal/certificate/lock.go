package certificate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// checkNotLocked fails with ErrFileLocked when path exists but another
// process holds it, which is how a workbook open in Excel shows up. Other
// problems with the output path are reported as they are.
func checkNotLocked(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check output %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("output %s is a directory", path)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return openError(path, err)
	}
	return f.Close()
}

func openError(path string, err error) error {
	if isLockError(err) {
		return fmt.Errorf("%w: %s: %v", ErrFileLocked, path, err)
	}
	return fmt.Errorf("failed to open output %s: %w", path, err)
}
