// normalization.go - Batch-Normalisierung
// Enthält: BatchNorm2D struct, NewBatchNorm2D, Forward

package nn

import (
	"fmt"

	"github.com/strata-ml/strata/ml"
)

// BatchNorm2D normalisiert einen (N, C, H, W) Tensor kanalweise mit
// gespeicherten Statistiken und affiner Transformation
type BatchNorm2D struct {
	Weight   ml.Tensor
	Bias     ml.Tensor
	Mean     ml.Tensor
	Variance ml.Tensor

	Eps float32
}

// NewBatchNorm2D erzeugt eine Normalisierungsschicht mit
// Identitäts-Statistiken: weight=1, bias=0, mean=0, var=1
func NewBatchNorm2D(ctx ml.Context, features int, eps float32) (*BatchNorm2D, error) {
	if features < 1 {
		return nil, fmt.Errorf("nn: batch norm: invalid feature count %d", features)
	}
	if eps <= 0 {
		return nil, fmt.Errorf("nn: batch norm: invalid epsilon %g", eps)
	}

	weight := ctx.Empty(ml.DTypeF32, features)
	weight.FromFloats(Ones()(features))

	variance := ctx.Empty(ml.DTypeF32, features)
	variance.FromFloats(Ones()(features))

	return &BatchNorm2D{
		Weight:   weight,
		Bias:     ctx.Zeros(ml.DTypeF32, features),
		Mean:     ctx.Zeros(ml.DTypeF32, features),
		Variance: variance,
		Eps:      eps,
	}, nil
}

// Forward wendet die Normalisierung elementweise an
func (m *BatchNorm2D) Forward(ctx ml.Context, t ml.Tensor) ml.Tensor {
	return t.BatchNorm(ctx, m.Weight, m.Bias, m.Mean, m.Variance, m.Eps)
}
