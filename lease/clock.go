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
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"
)

// CancelFunc cancels a scheduled repeating task. A run already in flight
// is not aborted.
type CancelFunc func()

// ErrNonPositiveInterval is returned by Schedule when the interval is
// zero or negative.
var ErrNonPositiveInterval = errors.New("schedule interval must be positive")

// Clock is the scheduling abstraction the expiry service runs on.
// Production uses QuartzClock; tests use ManualClock to advance logical
// time deterministically instead of waiting on real time.
type Clock interface {
	// Now returns the current instant.
	Now() time.Time
	// Schedule runs the task repeatedly, every given interval, until the
	// returned CancelFunc is called.
	Schedule(ctx context.Context, every time.Duration, task func(context.Context)) (CancelFunc, error)
}

// QuartzClock implements Clock on real time with a quartz scheduler.
type QuartzClock struct {
	mu        sync.Mutex
	scheduler quartz.Scheduler
	started   *atomic.Bool
}

var _ Clock = (*QuartzClock)(nil)

// NewQuartzClock creates a quartz-backed clock with scheduler logging
// off.
func NewQuartzClock() *QuartzClock {
	scheduler, _ := quartz.NewStdScheduler(quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))
	return &QuartzClock{
		scheduler: scheduler,
		started:   atomic.NewBool(false),
	}
}

// Now returns the wall-clock time.
func (c *QuartzClock) Now() time.Time {
	return time.Now()
}

// Schedule registers a repeating quartz job firing every interval.
func (c *QuartzClock) Schedule(ctx context.Context, every time.Duration, task func(context.Context)) (CancelFunc, error) {
	if every <= 0 {
		return nil, ErrNonPositiveInterval
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started.Load() {
		c.scheduler.Start(ctx)
		c.started.Store(c.scheduler.IsStarted())
	}

	fnJob := job.NewFunctionJob[bool](func(jobCtx context.Context) (bool, error) {
		task(jobCtx)
		return true, nil
	})
	key := quartz.NewJobKey(uuid.NewString())
	detail := quartz.NewJobDetail(fnJob, key)
	if err := c.scheduler.ScheduleJob(detail, quartz.NewSimpleTrigger(every)); err != nil {
		return nil, err
	}
	return func() { _ = c.scheduler.DeleteJob(key) }, nil
}

// Shutdown stops the underlying scheduler and waits for running jobs to
// drain or the context to expire.
func (c *QuartzClock) Shutdown(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started.Load() {
		return
	}
	_ = c.scheduler.Clear()
	c.scheduler.Stop()
	c.started.Store(c.scheduler.IsStarted())
	c.scheduler.Wait(ctx)
}

// ManualClock implements Clock on simulated time for tests. Time only
// moves when Advance is called; due tasks run synchronously inside
// Advance, in firing order.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	nextID  int
	entries map[int]*manualEntry
}

type manualEntry struct {
	id       int
	interval time.Duration
	next     time.Time
	task     func(context.Context)
}

var _ Clock = (*ManualClock)(nil)

// NewManualClock creates a manual clock frozen at the given instant.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{
		now:     start,
		entries: map[int]*manualEntry{},
	}
}

// Now returns the simulated current instant.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Schedule registers a repeating task. The first run is due one interval
// from the current simulated time.
func (c *ManualClock) Schedule(_ context.Context, every time.Duration, task func(context.Context)) (CancelFunc, error) {
	if every <= 0 {
		return nil, ErrNonPositiveInterval
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.entries[id] = &manualEntry{
		id:       id,
		interval: every,
		next:     c.now.Add(every),
		task:     task,
	}
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.entries, id)
	}, nil
}

// Advance moves simulated time forward by d, running every task that
// falls due along the way. Tasks run without the clock lock held so they
// may read Now or schedule further work.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		entry := c.popDue(target)
		if entry == nil {
			break
		}
		entry.task(context.Background())
	}

	c.mu.Lock()
	if target.After(c.now) {
		c.now = target
	}
	c.mu.Unlock()
}

// popDue advances the clock to the earliest entry due at or before
// target, reschedules that entry one interval later, and returns it.
func (c *ManualClock) popDue(target time.Time) *manualEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	var earliest *manualEntry
	for _, entry := range c.entries {
		if entry.next.After(target) {
			continue
		}
		if earliest == nil ||
			entry.next.Before(earliest.next) ||
			(entry.next.Equal(earliest.next) && entry.id < earliest.id) {
			earliest = entry
		}
	}
	if earliest == nil {
		return nil
	}

	if earliest.next.After(c.now) {
		c.now = earliest.next
	}
	fired := *earliest
	earliest.next = earliest.next.Add(earliest.interval)
	return &fired
}
