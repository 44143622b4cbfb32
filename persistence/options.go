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
	"go.uber.org/multierr"

	"github.com/orchd/orchd/codec"
	"github.com/orchd/orchd/internal/validation"
	"github.com/orchd/orchd/log"
)

// options configures the store.
type options struct {
	dir      string
	logger   log.Logger
	sink     EventSink
	backend  Backend
	registry *codec.Registry
}

var _ validation.Validator = (*options)(nil)

// Validate checks if the options are valid and returns an error if not.
func (o *options) Validate() error {
	return multierr.Combine(
		validation.Assert(o.dir != "" || o.backend != nil, "storage directory is required when no backend is set"),
		validation.Assert(o.logger != nil, "logger cannot be nil"),
		validation.Assert(o.registry != nil, "wire registry cannot be nil"),
	)
}

// Option configures the store at construction time.
type Option func(*options)

// WithLogger sets a custom logger. Defaults to log.DefaultLogger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithEventSink sets the sink receiving the store's structured events.
// Defaults to a sink rendering events through the store's logger.
func WithEventSink(sink EventSink) Option {
	return func(o *options) { o.sink = sink }
}

// WithBackend overrides the durable backend. Defaults to a FileBackend
// in the storage directory.
func WithBackend(backend Backend) Option {
	return func(o *options) { o.backend = backend }
}

// WithRegistry overrides the wire type registry. Defaults to the
// production model registry; tests substitute their own.
func WithRegistry(registry *codec.Registry) Option {
	return func(o *options) { o.registry = registry }
}
