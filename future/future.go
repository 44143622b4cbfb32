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

// Package future provides a single-assignment asynchronous result: a value
// which may not be available yet, or an error if that value could not be
// produced.
package future

import (
	"context"
	"sync"
)

// Task is the unit of work a Future runs.
type Task[T any] func() (T, error)

// Future represents the pending outcome of a Task. A Future completes
// exactly once; completion is observed through Await or Done.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// New creates a Future that executes the given task in a separate
// goroutine. The Future completes with the value returned by the task or
// fails with its error.
func New[T any](task Task[T]) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		value, err := task()
		f.complete(value, err)
	}()
	return f
}

// Completed returns a Future that is already resolved with the given
// value and error. Useful for synchronous fast paths.
func Completed[T any](value T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	f.complete(value, err)
	return f
}

// Await blocks until the Future is completed or the context is canceled
// and returns either the result or an error. Awaiting with a canceled
// context does not consume the eventual result; a later Await still
// observes it.
func (x *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-x.done:
		return x.value, x.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed when the Future completes.
func (x *Future[T]) Done() <-chan struct{} {
	return x.done
}

// complete resolves the Future. Only the first call wins.
func (x *Future[T]) complete(value T, err error) {
	x.once.Do(func() {
		x.value = value
		x.err = err
		close(x.done)
	})
}
