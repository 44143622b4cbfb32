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

// Package persistence owns the authoritative cluster configuration: it
// loads the persisted document on start (migrating older schemas), serves
// cached reads, saves new deployments through an atomic replace, and
// notifies registered callbacks after every successful save.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/zeebo/xxh3"
	"go.uber.org/atomic"

	"github.com/orchd/orchd/codec"
	"github.com/orchd/orchd/internal/errorschain"
	"github.com/orchd/orchd/log"
	"github.com/orchd/orchd/migration"
	"github.com/orchd/orchd/model"
)

// Service is the configuration store. Reads are lock-free against an
// in-memory cache; saves are serialized by a per-service mutex so two
// atomic replaces can never interleave.
type Service struct {
	// mu serializes saves and guards the callback list.
	mu sync.Mutex

	backend  Backend
	registry *codec.Registry
	logger   log.Logger
	sink     EventSink

	started   *atomic.Bool
	current   *atomic.Pointer[model.Deployment]
	callbacks []func()
}

// New creates a configuration store persisting to the given storage
// directory. Options override the backend, logger, event sink, and wire
// registry.
func New(dir string, opts ...Option) (*Service, error) {
	config := &options{
		dir:      dir,
		logger:   log.DefaultLogger,
		registry: model.WireRegistry(),
	}
	for _, opt := range opts {
		opt(config)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.backend == nil {
		config.backend = NewFileBackend(config.dir)
	}
	if config.sink == nil {
		config.sink = NewLogSink(config.logger)
	}

	return &Service{
		backend:  config.backend,
		registry: config.registry,
		logger:   config.logger,
		sink:     config.sink,
		started:  atomic.NewBool(false),
		current:  atomic.NewPointer[model.Deployment](nil),
	}, nil
}

// Start connects the backend and loads the persisted configuration,
// migrating it when its schema version is older than the current one.
// When no document exists yet an empty deployment is initialized and
// persisted immediately, so a document is guaranteed to exist post-start.
// A migration or I/O failure here is fatal to the store.
func (s *Service) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	err := errorschain.New(errorschain.ReturnFirst()).
		AddErrorFn(func() error { return s.backend.Connect(ctx) }).
		AddErrorFn(func() error { return s.load(ctx) }).
		Error()
	if err != nil {
		s.started.Store(false)
		return err
	}
	return nil
}

// Stop marks the store stopped and closes the backend. A save already in
// flight finishes first.
func (s *Service) Stop(context.Context) error {
	if !s.started.CompareAndSwap(true, false) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Close()
}

// Get returns the cached current deployment. It never blocks and never
// touches storage. Before Start it returns an empty deployment.
func (s *Service) Get() model.Deployment {
	if current := s.current.Load(); current != nil {
		return *current
	}
	return model.NewDeployment()
}

// Register appends a zero-argument callback invoked after every save that
// completes strictly after registration, in registration order. Callback
// panics are isolated: they are reported to the event sink and never
// prevent later callbacks or fail the save.
func (s *Service) Register(callback func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, callback)
}

// Save wraps the deployment into a Configuration at the current schema
// version, encodes it, atomically replaces the persisted document,
// updates the in-memory cache and then notifies every registered
// callback. On failure the persisted document and the cache are left
// unchanged. The whole operation is bracketed by SaveStarted and
// SaveCompleted events.
func (s *Service) Save(ctx context.Context, deployment model.Deployment) error {
	if !s.started.Load() {
		return ErrNotStarted
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, deployment)
}

// save runs one bracketed save. Callers hold s.mu.
func (s *Service) save(ctx context.Context, deployment model.Deployment) error {
	s.sink.Record(SaveStarted{Deployment: deployment})

	configuration := model.Configuration{
		Version:    migration.CurrentVersion,
		Deployment: deployment,
	}
	data, err := codec.Encode(s.registry, configuration)
	if err != nil {
		s.sink.Record(SaveCompleted{Deployment: deployment, Err: err})
		return fmt.Errorf("encoding configuration: %w", err)
	}

	if err := s.backend.Persist(ctx, data); err != nil {
		s.sink.Record(SaveCompleted{Deployment: deployment, Err: err})
		return fmt.Errorf("persisting configuration: %w", err)
	}

	s.current.Store(&deployment)
	s.notify()
	s.sink.Record(SaveCompleted{
		Deployment: deployment,
		Succeeded:  true,
		Digest:     xxh3.Hash(data),
	})
	return nil
}

// notify runs the registered callbacks in registration order. Callers
// hold s.mu.
func (s *Service) notify() {
	for position, callback := range s.callbacks {
		s.invoke(position, callback)
	}
}

func (s *Service) invoke(position int, callback func()) {
	defer func() {
		if reason := recover(); reason != nil {
			s.logger.Errorf("configuration change callback %d panicked: %v", position, reason)
			s.sink.Record(CallbackFailed{Position: position, Reason: reason})
		}
	}()
	callback()
}

// load reads the persisted document, migrating and decoding it, or
// initializes an empty deployment when none exists.
func (s *Service) load(ctx context.Context) error {
	data, err := s.backend.Load(ctx)
	switch {
	case errors.Is(err, ErrNoConfiguration):
		deployment := model.NewDeployment()
		s.current.Store(&deployment)
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.save(ctx, deployment); err != nil {
			return err
		}
		s.sink.Record(StartupLoaded{Deployment: deployment})
		return nil
	case err != nil:
		return err
	}

	version, err := peekVersion(data)
	if err != nil {
		return err
	}
	if version > migration.CurrentVersion {
		return fmt.Errorf("%w: version %d, supported up to %d", ErrFutureVersion, version, migration.CurrentVersion)
	}
	if version < migration.CurrentVersion {
		s.logger.Infof("migrating persisted configuration from version %d to %d", version, migration.CurrentVersion)
		if data, err = migration.Migrate(version, migration.CurrentVersion, data); err != nil {
			return err
		}
	}

	decoded, err := codec.Decode(s.registry, data)
	if err != nil {
		return fmt.Errorf("decoding persisted configuration: %w", err)
	}
	configuration, ok := decoded.(model.Configuration)
	if !ok {
		return fmt.Errorf("%w: persisted document is %T, expected a configuration", codec.ErrMalformedDocument, decoded)
	}

	deployment := configuration.Deployment
	s.current.Store(&deployment)
	s.sink.Record(StartupLoaded{Deployment: deployment})
	return nil
}

// peekVersion inspects the recorded schema version without decoding the
// document. Version 1 documents predate the envelope and carry no
// version field.
func peekVersion(data []byte) (int, error) {
	var head struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return 0, fmt.Errorf("%w: %v", codec.ErrMalformedDocument, err)
	}
	if head.Version == 0 {
		return 1, nil
	}
	return head.Version, nil
}
