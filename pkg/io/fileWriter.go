package io

import (
	"fmt"
	"os"
	"path/filepath"
)

// MakeDirForFile creates all parent directories of filePath, desc names the
// file purpose in the error message.
func MakeDirForFile(filePath string, desc string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return fmt.Errorf("could not create dir for %s: %w", desc, err)
	}
	return nil
}
