// internal/dictstore/file.go
//
// File persists the dictionary as a JSON array of upper-case words.
// A missing file is an empty list, not an error. Writes go to a temp file
// in the same directory and are renamed into place.

package dictstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File is a JSON-file words.Persister.
type File struct {
	path string
}

// NewFile returns a store backed by path. The file is created on first Save.
func NewFile(path string) *File { return &File{path: path} }

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

// Load reads the word list. Returns (nil, nil) if the file does not exist.
func (f *File) Load(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return list, nil
}

// Save replaces the stored list with words.
func (f *File) Save(ctx context.Context, words []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if words == nil {
		words = []string{}
	}
	b, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".words-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(append(b, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("rename to %s: %w", f.path, err)
	}
	return nil
}
