// Package model - Model-Interface und Registrierung
//
// Dieses Paket definiert das Model-Interface und stellt Funktionen
// zur Konstruktion und Ausführung von Klassifikations-Modellen bereit.
//
// Hauptkomponenten:
// - Model: Interface für alle Modell-Architekturen
// - Register: Registriert Modell-Konstruktoren
// - New: Erstellt neue Model-Instanzen über die Registry
// - Forward: Führt Vorwärts-Pass durch
// - Predict: Klassifiziert einen Eingabe-Batch

package model

import (
	"errors"
	"fmt"

	"github.com/strata-ml/strata/fs"
	"github.com/strata-ml/strata/ml"
	_ "github.com/strata-ml/strata/ml/backend"
)

// Fehler-Definitionen
var (
	ErrUnsupportedModel = errors.New("model not supported")
)

// Model definiert das Interface für spezifische Modell-Architekturen
type Model interface {
	Forward(ml.Context, ml.Tensor) (ml.Tensor, error)
}

// Validator ist ein optionales Interface für Post-Build-Validierung
type Validator interface {
	Validate() error
}

// models speichert registrierte Modell-Konstruktoren
var models = make(map[string]func(ml.Context, fs.Config) (Model, error))

// Register registriert einen Modell-Konstruktor für eine Architektur
func Register(name string, f func(ml.Context, fs.Config) (Model, error)) {
	if _, ok := models[name]; ok {
		panic("model: model already registered")
	}

	models[name] = f
}

// New initialisiert eine neue Model-Instanz basierend auf den Metadaten
func New(ctx ml.Context, c fs.Config) (Model, error) {
	f, ok := models[c.Architecture()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModel, c.Architecture())
	}

	m, err := f(ctx, c)
	if err != nil {
		return nil, err
	}

	if validator, ok := m.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Forward führt einen Vorwärts-Pass durch das Modell aus
func Forward(ctx ml.Context, m Model, t ml.Tensor) (ml.Tensor, error) {
	shape := t.Shape()
	if len(shape) != 4 {
		return nil, fmt.Errorf("input must be 4D (N, C, H, W), got shape %v", shape)
	}

	if shape[0] < 1 {
		return nil, errors.New("batch size cannot be less than 1")
	}

	out, err := m.Forward(ctx, t)
	if err != nil {
		return nil, err
	}

	ctx.Forward(out).Compute(out)

	return out, nil
}

// Classification ist das Ergebnis für ein einzelnes Bild im Batch
type Classification struct {
	Class      int
	Confidence float32
}

// Predict klassifiziert einen Batch: Softmax über die Logits, pro
// Bild die Klasse mit der höchsten Wahrscheinlichkeit
func Predict(ctx ml.Context, m Model, t ml.Tensor) ([]Classification, error) {
	logits, err := Forward(ctx, m, t)
	if err != nil {
		return nil, err
	}

	probs := logits.Softmax(ctx)

	shape := probs.Shape()
	classes := shape[len(shape)-1]

	vals := probs.Floats()

	out := make([]Classification, 0, len(vals)/classes)
	for base := 0; base < len(vals); base += classes {
		row := vals[base : base+classes]

		best := 0
		for i, v := range row {
			if v > row[best] {
				best = i
			}
		}

		out = append(out, Classification{Class: best, Confidence: row[best]})
	}

	return out, nil
}
