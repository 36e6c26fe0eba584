//go:build !windows

package certificate

import (
	"errors"
	"io/fs"
)

func isLockError(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}
