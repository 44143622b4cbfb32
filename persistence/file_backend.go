/*
 * MIT License
 *
 * Copyright (c) 2026 Orchd Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the name of the configuration document inside the
	// storage directory.
	ConfigFileName = "current_configuration.json"

	dirMode  os.FileMode = 0o755
	fileMode os.FileMode = 0o644
)

// FileBackend persists the configuration document as a single file inside
// a storage directory. Writes go to a temporary file in the same
// directory which is fsynced and renamed over the document, so a crash at
// any point leaves either the old or the new complete file.
type FileBackend struct {
	dir  string
	path string
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend creates a file backend rooted at the given storage
// directory. The directory is created on Connect.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{
		dir:  dir,
		path: filepath.Join(dir, ConfigFileName),
	}
}

// Path returns the location of the configuration document.
func (b *FileBackend) Path() string {
	return b.path
}

// Connect creates the storage directory, recursively, if it is absent.
func (b *FileBackend) Connect(_ context.Context) error {
	if err := os.MkdirAll(b.dir, dirMode); err != nil {
		return fmt.Errorf("creating storage directory %q: %w", b.dir, err)
	}
	return nil
}

// Load reads the current document bytes.
func (b *FileBackend) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoConfiguration
	}
	if err != nil {
		return nil, fmt.Errorf("reading configuration %q: %w", b.path, err)
	}
	return data, nil
}

// Persist atomically replaces the document via a temp file and rename.
// The temp file lives in the storage directory so the rename never
// crosses filesystems.
func (b *FileBackend) Persist(_ context.Context, data []byte) error {
	tmp, err := os.CreateTemp(b.dir, ConfigFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary configuration file: %w", err)
	}
	tmpName := tmp.Name()

	if err := writeAndSync(tmp, data); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temporary configuration file %q: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting mode on %q: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing configuration %q: %w", b.path, err)
	}
	return nil
}

// Close is a no-op; the backend holds no open handles between calls.
func (b *FileBackend) Close() error {
	return nil
}

func writeAndSync(file *os.File, data []byte) error {
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
