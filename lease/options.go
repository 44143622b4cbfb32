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

package lease

import (
	"time"

	"go.uber.org/multierr"

	"github.com/orchd/orchd/internal/validation"
	"github.com/orchd/orchd/log"
)

// defaultCheckInterval is how often the service looks for expired leases
// when no interval is configured.
const defaultCheckInterval = time.Second

// options configures the expiry service.
type options struct {
	clock    Clock
	interval time.Duration
	logger   log.Logger
}

var _ validation.Validator = (*options)(nil)

// Validate checks if the options are valid and returns an error if not.
func (o *options) Validate() error {
	return multierr.Combine(
		validation.Assert(o.clock != nil, "clock cannot be nil"),
		validation.Assert(o.interval > 0, "check interval must be positive"),
		validation.Assert(o.logger != nil, "logger cannot be nil"),
	)
}

// Option configures the expiry service at construction time.
type Option func(*options)

// WithClock sets the scheduling clock. Defaults to a QuartzClock on real
// time; tests pass a ManualClock.
func WithClock(clock Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithCheckInterval sets how often expired leases are looked for.
func WithCheckInterval(interval time.Duration) Option {
	return func(o *options) { o.interval = interval }
}

// WithLogger sets a custom logger. Defaults to log.DefaultLogger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}
