package source

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/de-tools/property-atlas/pkg/models/store"
)

const (
	SchemeFile   = "file"
	SchemeDuckDB = "duckdb"
	SchemeS3     = "s3"
)

// Reader yields the raw rows of one record source.
type Reader interface {
	ReadRecords(ctx context.Context) ([]store.RawRecord, error)
}

// ReaderFunc adapts a function to Reader.
type ReaderFunc func(ctx context.Context) ([]store.RawRecord, error)

func (f ReaderFunc) ReadRecords(ctx context.Context) ([]store.RawRecord, error) {
	return f(ctx)
}

// Factory opens a Reader for uri. The returned close function releases any
// resources held by the reader and is never nil.
type Factory func(ctx context.Context, uri string) (Reader, func() error, error)

// Registry manages record source factories keyed by URI scheme
type Registry interface {
	// Register adds a new factory for scheme
	Register(scheme string, factory Factory) error
	// Open resolves the scheme of uri and opens a reader for it. A URI
	// without a scheme is a local file.
	Open(ctx context.Context, uri string) (Reader, func() error, error)
	// ListSchemes returns the registered schemes, sorted
	ListSchemes() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]Factory),
	}
}

func (r *registry) Register(scheme string, factory Factory) error {
	if scheme == "" {
		return fmt.Errorf("scheme cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[scheme]; exists {
		return fmt.Errorf("scheme %q is already registered", scheme)
	}

	r.factories[scheme] = factory
	return nil
}

func (r *registry) Open(ctx context.Context, uri string) (Reader, func() error, error) {
	scheme := Scheme(uri)

	r.mu.RLock()
	factory, exists := r.factories[scheme]
	r.mu.RUnlock()

	if !exists {
		return nil, nil, fmt.Errorf("source scheme %q is not registered", scheme)
	}
	return factory(ctx, uri)
}

func (r *registry) ListSchemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schemes := make([]string, 0, len(r.factories))
	for scheme := range r.factories {
		schemes = append(schemes, scheme)
	}
	sort.Strings(schemes)
	return schemes
}

// Scheme returns the scheme of uri, or "file" when it has none.
func Scheme(uri string) string {
	if i := strings.Index(uri, "://"); i > 0 {
		return strings.ToLower(uri[:i])
	}
	return SchemeFile
}

// TrimScheme strips "<scheme>://" from uri.
func TrimScheme(uri string) string {
	if i := strings.Index(uri, "://"); i > 0 {
		return uri[i+3:]
	}
	return uri
}

func noop() error { return nil }
