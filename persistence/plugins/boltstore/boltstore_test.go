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

package boltstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/orchd/orchd/log"
	"github.com/orchd/orchd/model"
	"github.com/orchd/orchd/persistence"
)

func TestBoltStore(t *testing.T) {
	ctx := context.Background()

	t.Run("connect creates directory and database", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "bolt")
		store := New(dir)
		require.NoError(t, store.Connect(ctx))
		defer store.Close()
	})

	t.Run("connect is idempotent", func(t *testing.T) {
		store := New(t.TempDir())
		require.NoError(t, store.Connect(ctx))
		defer store.Close()
		require.NoError(t, store.Connect(ctx))
	})

	t.Run("load without a document", func(t *testing.T) {
		store := New(t.TempDir())
		require.NoError(t, store.Connect(ctx))
		defer store.Close()

		_, err := store.Load(ctx)
		require.ErrorIs(t, err, persistence.ErrNoConfiguration)
	})

	t.Run("persist then load round trips", func(t *testing.T) {
		store := New(t.TempDir())
		require.NoError(t, store.Connect(ctx))
		defer store.Close()

		document := []byte(`{"$type": "configuration", "version": 3}`)
		require.NoError(t, store.Persist(ctx, document))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, document, loaded)
	})

	t.Run("persist replaces the previous document", func(t *testing.T) {
		store := New(t.TempDir())
		require.NoError(t, store.Connect(ctx))
		defer store.Close()

		require.NoError(t, store.Persist(ctx, []byte("first")))
		require.NoError(t, store.Persist(ctx, []byte("second")))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, []byte("second"), loaded)
	})

	t.Run("survives reopening the database", func(t *testing.T) {
		dir := t.TempDir()
		document := []byte("durable")

		store := New(dir)
		require.NoError(t, store.Connect(ctx))
		require.NoError(t, store.Persist(ctx, document))
		require.NoError(t, store.Close())

		reopened := New(dir)
		require.NoError(t, reopened.Connect(ctx))
		defer reopened.Close()

		loaded, err := reopened.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, document, loaded)
	})

	t.Run("rejects use before connect", func(t *testing.T) {
		store := New(t.TempDir())
		_, err := store.Load(ctx)
		require.Error(t, err)
		require.Error(t, store.Persist(ctx, []byte("x")))
	})

	t.Run("rejects use after close", func(t *testing.T) {
		store := New(t.TempDir())
		require.NoError(t, store.Connect(ctx))
		require.NoError(t, store.Close())

		_, err := store.Load(ctx)
		require.Error(t, err)
		require.Error(t, store.Persist(ctx, []byte("x")))
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		store := New(t.TempDir())
		require.NoError(t, store.Connect(ctx))
		defer store.Close()

		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := store.Load(canceled)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		store := New(t.TempDir())
		require.NoError(t, store.Connect(ctx))
		require.NoError(t, store.Close())
		require.NoError(t, store.Close())
	})
}

// TestBoltBackedService runs the configuration store against the bolt
// backend end to end.
func TestBoltBackedService(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	nodeID := uuid.MustParse("ab294ce4-a6c3-40cb-a0a2-484a1f09521c")
	deployment := model.NewDeployment().WithNode(model.NewNode(nodeID))

	store, err := persistence.New("",
		persistence.WithBackend(New(dir)),
		persistence.WithLogger(log.DiscardLogger))
	require.NoError(t, err)
	require.NoError(t, store.Start(ctx))
	require.NoError(t, store.Save(ctx, deployment))
	require.NoError(t, store.Stop(ctx))

	reopened, err := persistence.New("",
		persistence.WithBackend(New(dir)),
		persistence.WithLogger(log.DiscardLogger))
	require.NoError(t, err)
	require.NoError(t, reopened.Start(ctx))
	defer reopened.Stop(ctx)
	require.Equal(t, deployment, reopened.Get())
}
