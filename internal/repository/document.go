package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrDocumentNotFound is returned by Document.Read when nothing has been saved yet
var ErrDocumentNotFound = errors.New("document not found")

// Document is a whole-body persisted blob. Every Write replaces the previous body.
type Document interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Name() string
}

type fileDocument struct {
	path string
}

// NewFileDocument creates a Document backed by a file on the local filesystem
func NewFileDocument(path string) Document {
	return &fileDocument{path: path}
}

func (d *fileDocument) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", d.path, err)
	}
	return data, nil
}

// Write truncates and rewrites the file; there is no temp-file rename.
func (d *fileDocument) Write(_ context.Context, data []byte) error {
	if err := os.WriteFile(d.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", d.path, err)
	}
	return nil
}

func (d *fileDocument) Name() string {
	return d.path
}
