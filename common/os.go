package common

import (
	"os"

	"github.com/pkg/errors"
)

// WriteFileAtomic writes to newBytes to filePath.
// Guaranteed not to lose *both* oldBytes and newBytes,
// (assuming that the OS is perfect)
func WriteFileAtomic(filePath string, newBytes []byte, mode os.FileMode) error {
	// Keep the previous content around as filePath+".bak"
	if _, err := os.Stat(filePath); !os.IsNotExist(err) {
		fileBytes, err := os.ReadFile(filePath)
		if err != nil {
			return errors.Wrapf(err, "could not read file %v", filePath)
		}
		if err = os.WriteFile(filePath+".bak", fileBytes, mode); err != nil {
			return errors.Wrapf(err, "could not write file %v", filePath+".bak")
		}
	}
	if err := os.WriteFile(filePath+".new", newBytes, mode); err != nil {
		return errors.Wrapf(err, "could not write file %v", filePath+".new")
	}
	return os.Rename(filePath+".new", filePath)
}

// FileExists reports whether the named file or directory exists.
func FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}
