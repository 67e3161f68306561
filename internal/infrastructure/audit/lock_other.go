//go:build !unix

package audit

import "os"

func tryLockFile(*os.File) error {
	return errLockUnsupported
}

func unlockFile(*os.File) error {
	return nil
}
