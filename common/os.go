package common

import (
	"os"

	"github.com/pkg/errors"
)

// WriteFileAtomic writes newBytes to filePath. The previous content, if any,
// is kept in filePath+".bak" until the new content has been moved in place.
func WriteFileAtomic(filePath string, newBytes []byte, mode os.FileMode) error {
	if _, err := os.Stat(filePath); !os.IsNotExist(err) {
		fileBytes, err := os.ReadFile(filePath)
		if err != nil {
			return errors.Wrapf(err, "could not read file %v", filePath)
		}
		if err = os.WriteFile(filePath+".bak", fileBytes, mode); err != nil {
			return errors.Wrapf(err, "could not write file %v", filePath+".bak")
		}
	}

	tmpPath := filePath + ".new"
	if err := os.WriteFile(tmpPath, newBytes, mode); err != nil {
		return errors.Wrapf(err, "could not write file %v", tmpPath)
	}
	return os.Rename(tmpPath, filePath)
}

// FileExists reports whether a regular file or directory exists at path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
