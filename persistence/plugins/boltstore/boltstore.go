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

// Package boltstore provides a persistence backend storing the
// configuration document in a BoltDB file. Bolt's write transactions give
// the same atomic-replace guarantee as the default file backend.
package boltstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bbolt "go.etcd.io/bbolt"
	"go.uber.org/atomic"

	"github.com/orchd/orchd/persistence"
)

const (
	boltFileMode os.FileMode = 0o600
	boltDirMode  os.FileMode = 0o755

	boltFileName   = "configuration.db"
	boltBucketName = "configuration"
	boltKeyName    = "current"
)

var (
	boltTimeout        = 5 * time.Second
	defaultBoltOptions = &bbolt.Options{Timeout: boltTimeout, NoGrowSync: true}

	errClosed = errors.New("boltstore: store is closed")
)

// BoltStore implements persistence.Backend on go.etcd.io/bbolt. The
// document lives under a single key in a dedicated bucket; bbolt's
// single-writer transactions serialize replaces. The DB is opened with a
// short timeout to avoid blocking on locked files.
type BoltStore struct {
	dir    string
	db     *bbolt.DB
	bucket []byte
	closed *atomic.Bool
}

var _ persistence.Backend = (*BoltStore)(nil)

// New creates a BoltStore rooted at the given storage directory. The
// directory and database file are created on Connect.
func New(dir string) *BoltStore {
	return &BoltStore{
		dir:    dir,
		bucket: []byte(boltBucketName),
		closed: atomic.NewBool(false),
	}
}

// Connect creates the storage directory, opens the database and ensures
// the configuration bucket exists.
func (s *BoltStore) Connect(_ context.Context) error {
	if s.db != nil {
		return nil
	}
	if err := os.MkdirAll(s.dir, boltDirMode); err != nil {
		return fmt.Errorf("boltstore: creating storage directory %q: %w", s.dir, err)
	}

	optionsCopy := *defaultBoltOptions
	db, err := bbolt.Open(filepath.Join(s.dir, boltFileName), boltFileMode, &optionsCopy)
	if err != nil {
		return fmt.Errorf("boltstore: opening database: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(s.bucket)
		return e
	}); err != nil {
		_ = db.Close()
		return fmt.Errorf("boltstore: initializing bucket: %w", err)
	}

	s.db = db
	return nil
}

// Load returns the current document, or persistence.ErrNoConfiguration
// when none has been persisted.
func (s *BoltStore) Load(ctx context.Context) ([]byte, error) {
	if err := s.ensureOpen(ctx); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("boltstore: bucket %q missing", s.bucket)
		}
		if stored := bucket.Get([]byte(boltKeyName)); stored != nil {
			data = make([]byte, len(stored))
			copy(data, stored)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, persistence.ErrNoConfiguration
	}
	return data, nil
}

// Persist replaces the current document in a single write transaction.
func (s *BoltStore) Persist(ctx context.Context, data []byte) error {
	if err := s.ensureOpen(ctx); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("boltstore: bucket %q missing", s.bucket)
		}
		return bucket.Put([]byte(boltKeyName), data)
	})
}

// Close closes the underlying database. The store cannot be reused
// afterwards.
func (s *BoltStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *BoltStore) ensureOpen(ctx context.Context) error {
	if s.closed.Load() {
		return errClosed
	}
	if s.db == nil {
		return errors.New("boltstore: store is not connected")
	}
	return ctx.Err()
}
