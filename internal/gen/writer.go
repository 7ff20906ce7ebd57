package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFile writes file into outputDir, creating the directory if needed,
// and returns the written path.
func WriteFile(file *GeneratedFile, outputDir string) (string, error) {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	outputPath := filepath.Join(outputDir, file.Filename)

	err = os.WriteFile(outputPath, file.Content, filePerm)
	if err != nil {
		return "", fmt.Errorf("writing file %s: %w", file.Filename, err)
	}

	return outputPath, nil
}

// UpToDate reports whether outputDir already holds file with identical content.
func UpToDate(file *GeneratedFile, outputDir string) (bool, error) {
	existing, err := os.ReadFile(filepath.Join(outputDir, file.Filename))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("reading file %s: %w", file.Filename, err)
	}

	return bytes.Equal(existing, file.Content), nil
}
