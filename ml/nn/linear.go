// linear.go - Voll verbundene Schicht
// Enthält: Linear struct, NewLinear, Forward

package nn

import (
	"fmt"

	"github.com/strata-ml/strata/ml"
)

// Linear ist eine voll verbundene Schicht mit Bias
type Linear struct {
	Weight ml.Tensor
	Bias   ml.Tensor
}

// NewLinear erzeugt eine Schicht mit Gewicht (out, in) über init
// und Bias null
func NewLinear(ctx ml.Context, init InitFn, in, out int) (*Linear, error) {
	if in < 1 || out < 1 {
		return nil, fmt.Errorf("nn: linear: invalid dimensions %d -> %d", in, out)
	}

	weight := ctx.Empty(ml.DTypeF32, out, in)
	weight.FromFloats(init(out, in))

	return &Linear{Weight: weight, Bias: ctx.Zeros(ml.DTypeF32, out)}, nil
}

// Forward bildet (..., in) auf (..., out) ab
func (m *Linear) Forward(ctx ml.Context, t ml.Tensor) ml.Tensor {
	t = m.Weight.Mulmat(ctx, t)
	if m.Bias != nil {
		t = t.Add(ctx, m.Bias)
	}

	return t
}
