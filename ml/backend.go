// backend.go - Backend-Interface und Registrierung fuer Tensor-Backends
// Dieses Modul definiert das Backend-Interface und die Backend-Factory-Funktionen.
package ml

import (
	"errors"
	"fmt"

	"github.com/strata-ml/strata/envconfig"
)

// ErrUnknownBackend is returned by NewBackend for unregistered names.
var ErrUnknownBackend = errors.New("ml: unknown backend")

// Backend represents a tensor execution backend (e.g., the pure Go CPU
// backend).
type Backend interface {
	// Close frees all memory associated with this backend
	Close()

	NewContext() Context
}

// BackendParams controls how the backend executes tensor operations
type BackendParams struct {
	// NumThreads bounds compute parallelism on CPU backends. Zero selects
	// STRATA_THREADS, falling back to the number of logical CPUs.
	NumThreads int
}

var backends = make(map[string]func(BackendParams) (Backend, error))

// RegisterBackend registers a backend factory function.
func RegisterBackend(name string, f func(BackendParams) (Backend, error)) {
	if _, ok := backends[name]; ok {
		panic("backend: backend already registered")
	}

	backends[name] = f
}

// NewBackend creates a new backend instance by registered name. An empty
// name selects the configured default (STRATA_BACKEND, normally "cpu").
func NewBackend(name string, params BackendParams) (Backend, error) {
	if name == "" {
		name = envconfig.Backend()
	}

	if backend, ok := backends[name]; ok {
		return backend(params)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}
