// tensor_arithmetic.go - Elementweise Operationen
// Enthält: Add, Mul, Scale, RELU, Softmax

package cpu

import (
	"fmt"
	"math"
	"slices"

	"github.com/strata-ml/strata/ml"
)

// Add addiert t2 elementweise, mit Broadcasting über t2
func (t *Tensor) Add(ctx ml.Context, t2 ml.Tensor) ml.Tensor {
	return t.broadcast(t2, func(a, b float32) float32 { return a + b })
}

// Mul multipliziert t2 elementweise, mit Broadcasting über t2
func (t *Tensor) Mul(ctx ml.Context, t2 ml.Tensor) ml.Tensor {
	return t.broadcast(t2, func(a, b float32) float32 { return a * b })
}

// broadcast wendet op elementweise an. t2 wird rechtsbündig gegen die
// Form des Empfängers ausgerichtet; jede Dimension muss gleich oder 1 sein.
func (t *Tensor) broadcast(other ml.Tensor, op func(a, b float32) float32) ml.Tensor {
	t2 := fromML(other)

	a := t.Floats()
	b := t2.Floats()

	out := newTensor(t.b, ml.DTypeF32, t.shape)
	dst := make([]float32, len(a))

	// Schneller Pfad: identische Formen
	if slices.Equal(t.shape, t2.shape) {
		for i := range dst {
			dst[i] = op(a[i], b[i])
		}
		out.FromFloats(dst)
		return out
	}

	// t2-Form rechtsbündig mit führenden Einsen auffüllen
	bShape := make([]int, len(t.shape))
	for i := range bShape {
		bShape[i] = 1
	}
	copy(bShape[len(t.shape)-len(t2.shape):], t2.shape)

	bStride := make([]int, len(t.shape))
	stride := 1
	for i := len(bShape) - 1; i >= 0; i-- {
		if bShape[i] == 1 {
			bStride[i] = 0
		} else if bShape[i] == t.shape[i] {
			bStride[i] = stride
		} else {
			panic(fmt.Sprintf("cpu: cannot broadcast %v to %v", t2.shape, t.shape))
		}
		stride *= bShape[i]
	}

	idx := make([]int, len(t.shape))
	for i := range dst {
		bi := 0
		for d, v := range idx {
			bi += v * bStride[d]
		}
		dst[i] = op(a[i], b[bi])

		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < t.shape[d] {
				break
			}
			idx[d] = 0
		}
	}

	out.FromFloats(dst)
	return out
}

// Scale multipliziert alle Elemente mit einem Skalar
func (t *Tensor) Scale(ctx ml.Context, s float64) ml.Tensor {
	src := t.Floats()
	dst := make([]float32, len(src))
	for i, v := range src {
		dst[i] = v * float32(s)
	}

	out := newTensor(t.b, ml.DTypeF32, t.shape)
	out.FromFloats(dst)
	return out
}

// RELU setzt negative Elemente auf null
func (t *Tensor) RELU(ctx ml.Context) ml.Tensor {
	src := t.Floats()
	dst := make([]float32, len(src))
	for i, v := range src {
		dst[i] = max(0, v)
	}

	out := newTensor(t.b, ml.DTypeF32, t.shape)
	out.FromFloats(dst)
	return out
}

// Softmax normalisiert die innerste Dimension zu einer
// Wahrscheinlichkeitsverteilung, numerisch stabilisiert
func (t *Tensor) Softmax(ctx ml.Context) ml.Tensor {
	inner := t.shape[len(t.shape)-1]

	src := t.Floats()
	dst := make([]float32, len(src))

	for base := 0; base < len(src); base += inner {
		row := src[base : base+inner]

		m := row[0]
		for _, v := range row[1:] {
			m = max(m, v)
		}

		var sum float64
		for i, v := range row {
			e := math.Exp(float64(v - m))
			dst[base+i] = float32(e)
			sum += e
		}

		for i := range row {
			dst[base+i] = float32(float64(dst[base+i]) / sum)
		}
	}

	out := newTensor(t.b, ml.DTypeF32, t.shape)
	out.FromFloats(dst)
	return out
}
