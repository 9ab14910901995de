// models.go - Registriert alle verfuegbaren Architekturen
// Enthaelt: Blank-Imports der Modell-Pakete

package models

import (
	_ "github.com/strata-ml/strata/model/models/resnet"
)
