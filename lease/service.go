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

// Package lease prunes expired dataset leases from the persisted cluster
// configuration on a repeating, cancellable schedule.
package lease

import (
	"context"
	"fmt"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/orchd/orchd/future"
	"github.com/orchd/orchd/log"
	"github.com/orchd/orchd/model"
	"github.com/orchd/orchd/persistence"
)

// ConfigStore is the slice of the configuration store the expiry service
// consumes.
type ConfigStore interface {
	// Get returns the cached current deployment.
	Get() model.Deployment
	// Save persists an updated deployment.
	Save(ctx context.Context, deployment model.Deployment) error
}

var _ ConfigStore = (*persistence.Service)(nil)

// Service periodically drops expired leases from the deployment held by
// the configuration store.
type Service struct {
	mu     sync.Mutex
	cancel CancelFunc

	store    ConfigStore
	clock    Clock
	interval time.Duration
	logger   log.Logger
	started  *atomic.Bool
}

// New creates an expiry service over the given configuration store.
func New(store ConfigStore, opts ...Option) (*Service, error) {
	config := &options{
		interval: defaultCheckInterval,
		logger:   log.DefaultLogger,
	}
	for _, opt := range opts {
		opt(config)
	}
	if config.clock == nil {
		config.clock = NewQuartzClock()
	}
	if store == nil {
		return nil, fmt.Errorf("configuration store cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Service{
		store:    store,
		clock:    config.clock,
		interval: config.interval,
		logger:   config.logger,
		started:  atomic.NewBool(false),
	}, nil
}

// Start schedules the repeating expiry tick on the clock.
func (s *Service) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	cancel, err := s.clock.Schedule(ctx, s.interval, s.tick)
	if err != nil {
		s.started.Store(false)
		return fmt.Errorf("scheduling lease expiry: %w", err)
	}

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	s.logger.Infof("lease expiry service started, checking every %v", s.interval)
	return nil
}

// Stop cancels the pending tick. No further expiry checks occur; a tick
// already in flight is not aborted.
func (s *Service) Stop(context.Context) error {
	if !s.started.CompareAndSwap(true, false) {
		return nil
	}

	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.logger.Info("lease expiry service stopped")
	return nil
}

// Expire drops every lease whose expiration lies in the past. The
// returned future resolves to the updated deployment once it has been
// saved, or to nil when there was nothing to expire, or fails with the
// save error.
func (s *Service) Expire(ctx context.Context) *future.Future[*model.Deployment] {
	return future.New(func() (*model.Deployment, error) {
		now := s.clock.Now()
		deployment := s.store.Get()

		expired := mapset.NewSet[uuid.UUID]()
		for datasetID, l := range deployment.Leases {
			if l.Expired(now) {
				expired.Add(datasetID)
			}
		}
		if expired.Cardinality() == 0 {
			return nil, nil
		}

		updated := deployment.WithoutLeases(expired)
		if err := s.store.Save(ctx, updated); err != nil {
			return nil, fmt.Errorf("pruning %d expired leases: %w", expired.Cardinality(), err)
		}
		s.logger.Infof("pruned %d expired leases", expired.Cardinality())
		return &updated, nil
	})
}

// tick runs one scheduled expiry check to completion.
func (s *Service) tick(ctx context.Context) {
	if _, err := s.Expire(ctx).Await(ctx); err != nil {
		s.logger.Errorf("lease expiry check failed: %v", err)
	}
}
