package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Default file configuration constants.
const (
	defaultPath     = "arrows_data.json"
	defaultFileMode = 0o644
)

// FileGateway stores the document as one JSON file on disk. Saves go
// through a temp file in the same directory followed by a rename, so a
// crash mid-write never leaves a half-written document behind.
type FileGateway struct {
	path string
	mode os.FileMode
}

var _ Gateway = (*FileGateway)(nil)

// Option applies a configuration option to the FileGateway.
type Option func(*FileGateway)

// WithPath sets the document file path.
func WithPath(path string) Option {
	return func(g *FileGateway) {
		if path != "" {
			g.path = path
		}
	}
}

// WithFileMode sets the permissions used for the document file.
func WithFileMode(mode os.FileMode) Option {
	return func(g *FileGateway) {
		if mode != 0 {
			g.mode = mode
		}
	}
}

// NewFileGateway constructs a file-backed gateway with default
// configuration.
func NewFileGateway(opts ...Option) *FileGateway {
	g := &FileGateway{
		path: defaultPath,
		mode: defaultFileMode,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Path returns the configured document file path.
func (g *FileGateway) Path() string {
	return g.path
}

// Load reads and decodes the document. A missing file yields a fresh
// default document; an unreadable or corrupt file is an error the
// caller decides how to degrade from.
func (g *FileGateway) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	raw, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(), nil
		}
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, g.path, err)
	}
	doc.normalize()
	return &doc, nil
}

// Save atomically replaces the document file.
func (g *FileGateway) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	dir := filepath.Dir(g.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(g.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := os.Chmod(tmpPath, g.mode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := os.Rename(tmpPath, g.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}
