// conv.go - 2D-Faltungsschicht
// Enthält: Conv2D struct, NewConv2D, Forward

package nn

import (
	"fmt"

	"github.com/strata-ml/strata/ml"
)

// Conv2D ist eine bias-freie 2D-Faltung mit quadratischem Kernel
type Conv2D struct {
	Weight ml.Tensor

	Stride   int
	Padding  int
	Dilation int
}

// NewConv2D erzeugt eine Faltungsschicht, das Gewicht (out, in, k, k)
// wird über init belegt
func NewConv2D(ctx ml.Context, init InitFn, inChannels, outChannels, kernel, stride, padding int) (*Conv2D, error) {
	if inChannels < 1 || outChannels < 1 {
		return nil, fmt.Errorf("nn: conv2d: invalid channels %d -> %d", inChannels, outChannels)
	}
	if kernel < 1 {
		return nil, fmt.Errorf("nn: conv2d: invalid kernel size %d", kernel)
	}
	if stride < 1 {
		return nil, fmt.Errorf("nn: conv2d: invalid stride %d", stride)
	}
	if padding < 0 {
		return nil, fmt.Errorf("nn: conv2d: invalid padding %d", padding)
	}

	weight := ctx.Empty(ml.DTypeF32, outChannels, inChannels, kernel, kernel)
	weight.FromFloats(init(outChannels, inChannels, kernel, kernel))

	return &Conv2D{Weight: weight, Stride: stride, Padding: padding, Dilation: 1}, nil
}

// Forward faltet einen (N, C, H, W) Tensor zu (N, OC, OH, OW)
func (m *Conv2D) Forward(ctx ml.Context, t ml.Tensor) ml.Tensor {
	return t.Conv2D(ctx, m.Weight, m.Stride, m.Stride, m.Padding, m.Padding, m.Dilation, m.Dilation)
}
