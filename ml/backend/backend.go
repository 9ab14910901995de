// backend.go - Registriert alle verfügbaren Backends
// Enthält: Blank-Imports der Backend-Implementierungen

package backend

import (
	_ "github.com/strata-ml/strata/ml/backend/cpu"
)
