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
	"github.com/orchd/orchd/log"
	"github.com/orchd/orchd/model"
)

// Event is a structured record the store emits around its lifecycle and
// save operations.
//
// Note: the unexported method intentionally prevents external
// implementations; the set of events is fixed.
type Event interface {
	event()
}

// StartupLoaded is emitted once per Start, carrying the deployment the
// store begins serving (loaded from storage, or freshly initialized).
type StartupLoaded struct {
	Deployment model.Deployment
}

// SaveStarted opens the bracket around one save operation.
type SaveStarted struct {
	Deployment model.Deployment
}

// SaveCompleted closes the bracket around one save operation. Digest is
// the xxh3 hash of the persisted bytes when the save succeeded.
type SaveCompleted struct {
	Deployment model.Deployment
	Succeeded  bool
	Digest     uint64
	Err        error
}

// CallbackFailed reports a change-notification callback that panicked.
// The failure is isolated: it never interrupts the save or the remaining
// callbacks.
type CallbackFailed struct {
	Position int
	Reason   any
}

func (StartupLoaded) event()  {}
func (SaveStarted) event()    {}
func (SaveCompleted) event()  {}
func (CallbackFailed) event() {}

// EventSink consumes store events. Sinks are append-only and best-effort:
// the store never consumes a return value and never blocks its state
// transitions on a sink.
type EventSink interface {
	Record(event Event)
}

// NopSink discards every event.
type NopSink struct{}

var _ EventSink = NopSink{}

// Record implements EventSink.
func (NopSink) Record(Event) {}

// logSink renders events through a Logger.
type logSink struct {
	logger log.Logger
}

var _ EventSink = logSink{}

// NewLogSink returns a sink writing structured entries to the given
// logger.
func NewLogSink(logger log.Logger) EventSink {
	return logSink{logger: logger}
}

// Record implements EventSink.
func (s logSink) Record(event Event) {
	switch e := event.(type) {
	case StartupLoaded:
		s.logger.With("nodes", len(e.Deployment.Nodes), "leases", len(e.Deployment.Leases)).
			Info("configuration loaded")
	case SaveStarted:
		s.logger.With("nodes", len(e.Deployment.Nodes)).Debug("saving configuration")
	case SaveCompleted:
		if e.Succeeded {
			s.logger.With("digest", e.Digest).Info("configuration saved")
			return
		}
		s.logger.With("error", e.Err).Error("configuration save failed")
	case CallbackFailed:
		s.logger.With("position", e.Position, "reason", e.Reason).
			Error("configuration change callback failed")
	}
}
