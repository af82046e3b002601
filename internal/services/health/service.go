// Package health reports whether the API can reach its stores.
package health

import (
	"context"
	"time"
)

const checkTimeout = 2 * time.Second

// Pinger is anything whose reachability can be probed.
type Pinger interface {
	Keys(ctx context.Context) ([]string, error)
}

// Report is the health payload.
type Report struct {
	OK          bool   `json:"ok"`
	KVBackend   string `json:"kvBackend"`
	ObjectStore string `json:"objectStore"`
	Collections int    `json:"collections"`
	Error       string `json:"error,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	Store       Pinger
	KVBackend   string
	ObjectStore string
}

// NewService constructs a new health service.
func NewService(store Pinger, kvBackend, objectStore string) *Service {
	return &Service{Store: store, KVBackend: kvBackend, ObjectStore: objectStore}
}

// Status probes the key-value store.
func (s *Service) Status(ctx context.Context) Report {
	rep := Report{OK: true, KVBackend: s.KVBackend, ObjectStore: s.ObjectStore}
	if s.Store == nil {
		return rep
	}
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	keys, err := s.Store.Keys(ctx)
	if err != nil {
		rep.OK = false
		rep.Error = err.Error()
		return rep
	}
	rep.Collections = len(keys)
	return rep
}
