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

// Package errorschain sequences fallible steps and folds their failures
// into a single error.
package errorschain

import "go.uber.org/multierr"

// Chain defines an error chain. Steps are evaluated in insertion order.
type Chain struct {
	returnFirst bool
	fns         []func() error
}

// ChainOption configures a chain at creation time.
type ChainOption func(*Chain)

// New creates a new error chain.
func New(opts ...ChainOption) *Chain {
	chain := &Chain{
		fns: make([]func() error, 0),
	}

	for _, opt := range opts {
		opt(chain)
	}

	return chain
}

// ReturnFirst stops evaluation on the first failing step.
func ReturnFirst() ChainOption {
	return func(c *Chain) { c.returnFirst = true }
}

// ReturnAll evaluates every step and combines their failures.
func ReturnAll() ChainOption {
	return func(c *Chain) { c.returnFirst = false }
}

// AddErrorFn adds a step to the chain. The step does not run until Error
// is called.
func (c *Chain) AddErrorFn(fn func() error) *Chain {
	c.fns = append(c.fns, fn)
	return c
}

// AddError adds an already materialized error to the chain.
func (c *Chain) AddError(err error) *Chain {
	c.fns = append(c.fns, func() error { return err })
	return c
}

// Error runs the chain and returns the resulting error, if any.
func (c *Chain) Error() error {
	var err error
	for _, fn := range c.fns {
		if stepErr := fn(); stepErr != nil {
			if c.returnFirst {
				return stepErr
			}
			err = multierr.Append(err, stepErr)
		}
	}
	return err
}
