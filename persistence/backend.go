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

import "context"

// Backend is the durable storage a Service writes the encoded
// configuration to. Implementations must make Persist atomic: a reader
// (including this process after a crash and restart) observes either the
// previous complete document or the new complete document, never a
// partial one.
//
// The built-in FileBackend is the default; plugins provide alternatives
// such as the bbolt-backed store.
type Backend interface {
	// Connect prepares the backend for use, creating any missing
	// directories or buckets.
	Connect(ctx context.Context) error
	// Load returns the current document, or ErrNoConfiguration when none
	// has ever been persisted.
	Load(ctx context.Context) ([]byte, error)
	// Persist atomically replaces the current document.
	Persist(ctx context.Context, data []byte) error
	// Close releases the backend's resources.
	Close() error
}
