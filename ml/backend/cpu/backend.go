// backend.go - Backend-Struktur und Basis-Methoden
// Enthält: Backend struct, init(), New(), Close()

package cpu

import (
	"log/slog"
	"runtime"

	"github.com/strata-ml/strata/envconfig"
	"github.com/strata-ml/strata/ml"
)

func init() {
	ml.RegisterBackend("cpu", New)
}

// Backend führt alle Tensor-Operationen eager in float32 auf der CPU aus.
// F16 ist ein reines Speicherformat; Operationen dekodieren nach float32.
type Backend struct {
	threads int
}

// New erstellt ein CPU-Backend mit der konfigurierten Thread-Anzahl
func New(params ml.BackendParams) (ml.Backend, error) {
	threads := params.NumThreads
	if threads <= 0 {
		threads = envconfig.Threads()
	}
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	slog.Info("cpu backend", "threads", threads)

	return &Backend{threads: threads}, nil
}

// Close gibt alle Backend-Ressourcen frei
func (b *Backend) Close() {}

// NewContext erstellt einen Compute-Kontext
func (b *Backend) NewContext() ml.Context {
	return &Context{b: b}
}
