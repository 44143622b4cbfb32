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

import "errors"

// Predefined errors for standard store failure conditions. Classify with
// errors.Is.
var (
	// ErrNoConfiguration indicates that no configuration document exists
	// in the backend yet. A fresh store initializes an empty deployment
	// when it sees this.
	ErrNoConfiguration = errors.New("no configuration document exists")

	// ErrNotStarted is returned when Save is called before Start.
	ErrNotStarted = errors.New("configuration store is not started")

	// ErrFutureVersion indicates that the persisted document was written
	// by a newer software version. Loading it would silently drop data,
	// so startup fails instead.
	ErrFutureVersion = errors.New("persisted configuration version is newer than supported")
)
