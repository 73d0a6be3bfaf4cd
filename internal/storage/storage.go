package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage provides the local cache behind the upstream fetch layer.

// Store keeps opaque payloads under string keys until their TTL runs out.
type Store interface {
	Close() error
	Lookup(key string) ([]byte, bool, error)
	Save(key string, value []byte, ttl time.Duration) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	DefaultTTL      time.Duration
	CleanupInterval time.Duration
}

const (
	defaultTTL             = 60 * time.Second
	defaultCleanupInterval = 10 * time.Minute
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = defaultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                              { return nil }
func (noopStore) Lookup(string) ([]byte, bool, error)       { return nil, false, nil }
func (noopStore) Save(string, []byte, time.Duration) error { return nil }
