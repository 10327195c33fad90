package dumputil

import (
	"log/slog"
	"os"
	"path/filepath"
)

// FilesystemOutput writes debugging artifacts (page snapshots) into a
// directory, one file per id.
type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput clears dir and recreates it.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.RemoveAll(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

// Write never fails the caller, a file that cannot be written is logged.
func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0644)
	if err != nil {
		slog.Warn("failed to write dump file", "id", id, "err", err)
	}
}
