// Package service runs the session's long-lived resources through a common lifecycle.
package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Service defines the lifecycle interface for infrastructure subsystems
// Services manage long-lived resources: the terminal screen, the audio device
//
// Lifecycle:
//  1. Construction
//  2. Init() - acquire the resource
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Init acquires the underlying resource
	Init() error

	// Start begins service operation (launches goroutines if any)
	// Called after all services have initialized
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}

type entry struct {
	svc      Service
	required bool
	inited   bool
	started  bool
	failed   bool
}

// Hub initializes and starts services in registration order and stops them in reverse.
// A failing optional service is logged and skipped; a failing required one aborts.
type Hub struct {
	entries []*entry
	log     zerolog.Logger
}

// NewHub creates an empty hub
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{log: log}
}

// Add registers a service
func (h *Hub) Add(svc Service, required bool) {
	h.entries = append(h.entries, &entry{svc: svc, required: required})
}

// InitAll runs Init on every registered service
func (h *Hub) InitAll() error {
	for _, e := range h.entries {
		if e.inited || e.failed {
			continue
		}
		if err := e.svc.Init(); err != nil {
			if e.required {
				return fmt.Errorf("%s init: %w", e.svc.Name(), err)
			}
			e.failed = true
			h.log.Warn().Err(err).Str("service", e.svc.Name()).Msg("optional service disabled")
			continue
		}
		e.inited = true
		h.log.Debug().Str("service", e.svc.Name()).Msg("service initialized")
	}
	return nil
}

// StartAll runs Start on every initialized service
func (h *Hub) StartAll() error {
	for _, e := range h.entries {
		if !e.inited || e.started {
			continue
		}
		if err := e.svc.Start(); err != nil {
			if e.required {
				return fmt.Errorf("%s start: %w", e.svc.Name(), err)
			}
			e.failed = true
			h.log.Warn().Err(err).Str("service", e.svc.Name()).Msg("optional service disabled")
			continue
		}
		e.started = true
	}
	return nil
}

// Active reports whether the named service started
func (h *Hub) Active(name string) bool {
	for _, e := range h.entries {
		if e.svc.Name() == name {
			return e.started
		}
	}
	return false
}

// StopAll stops initialized services in reverse order, joining their errors
func (h *Hub) StopAll() error {
	var errs []error
	for i := len(h.entries) - 1; i >= 0; i-- {
		e := h.entries[i]
		if !e.inited {
			continue
		}
		if err := e.svc.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("%s stop: %w", e.svc.Name(), err))
		}
		e.inited, e.started = false, false
	}
	return errors.Join(errs...)
}
