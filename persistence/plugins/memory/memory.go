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

// Package memory provides a persistence backend holding the configuration
// document in process memory. Nothing survives a restart; it exists for
// tests and for embedding the store where durability is not wanted.
package memory

import (
	"context"
	"sync"

	"github.com/orchd/orchd/persistence"
)

// MemoryStore implements persistence.Backend over an in-memory buffer.
type MemoryStore struct {
	mu       sync.RWMutex
	document []byte
}

var _ persistence.Backend = (*MemoryStore)(nil)

// New creates an empty in-memory backend.
func New() *MemoryStore {
	return &MemoryStore{}
}

// Connect is a no-op.
func (s *MemoryStore) Connect(context.Context) error {
	return nil
}

// Load returns a copy of the current document, or
// persistence.ErrNoConfiguration when nothing has been persisted yet.
func (s *MemoryStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.document == nil {
		return nil, persistence.ErrNoConfiguration
	}
	out := make([]byte, len(s.document))
	copy(out, s.document)
	return out, nil
}

// Persist replaces the current document with a copy of data.
func (s *MemoryStore) Persist(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	s.mu.Lock()
	s.document = stored
	s.mu.Unlock()
	return nil
}

// Close drops the stored document.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.document = nil
	s.mu.Unlock()
	return nil
}
