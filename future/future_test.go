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

package future

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFuture(t *testing.T) {
	t.Run("resolves with the task value", func(t *testing.T) {
		f := New(func() (int, error) { return 42, nil })
		value, err := f.Await(context.Background())
		require.NoError(t, err)
		require.Equal(t, 42, value)
	})

	t.Run("fails with the task error", func(t *testing.T) {
		boom := errors.New("boom")
		f := New(func() (int, error) { return 0, boom })
		value, err := f.Await(context.Background())
		require.ErrorIs(t, err, boom)
		require.Zero(t, value)
	})

	t.Run("await honors context cancellation", func(t *testing.T) {
		release := make(chan struct{})
		f := New(func() (string, error) {
			<-release
			return "late", nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := f.Await(ctx)
		require.ErrorIs(t, err, context.Canceled)

		// a canceled await does not consume the result
		close(release)
		value, err := f.Await(context.Background())
		require.NoError(t, err)
		require.Equal(t, "late", value)
	})

	t.Run("can be awaited more than once", func(t *testing.T) {
		f := New(func() (int, error) { return 7, nil })
		for i := 0; i < 3; i++ {
			value, err := f.Await(context.Background())
			require.NoError(t, err)
			require.Equal(t, 7, value)
		}
	})

	t.Run("done channel closes on completion", func(t *testing.T) {
		f := New(func() (bool, error) { return true, nil })
		select {
		case <-f.Done():
		case <-time.After(time.Second):
			t.Fatal("future did not complete in time")
		}
	})
}

func TestCompleted(t *testing.T) {
	t.Run("with value", func(t *testing.T) {
		f := Completed("now", nil)
		value, err := f.Await(context.Background())
		require.NoError(t, err)
		require.Equal(t, "now", value)
	})

	t.Run("with error", func(t *testing.T) {
		failed := errors.New("failed")
		f := Completed(0, failed)
		_, err := f.Await(context.Background())
		require.ErrorIs(t, err, failed)
	})
}
