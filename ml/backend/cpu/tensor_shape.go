// tensor_shape.go - Form-Operationen auf Tensoren
// Enthält: Reshape, Permute

package cpu

import (
	"fmt"
	"slices"

	"github.com/strata-ml/strata/ml"
)

// Reshape gibt eine Ansicht mit neuer Form zurück.
// Die Element-Anzahl muss unverändert bleiben.
func (t *Tensor) Reshape(ctx ml.Context, shape ...int) ml.Tensor {
	n := 1
	for _, d := range shape {
		if d <= 0 {
			panic(fmt.Sprintf("cpu: invalid dimension %d in shape %v", d, shape))
		}
		n *= d
	}

	if n != t.elems() {
		panic(fmt.Sprintf("cpu: reshape %v to %v: element count mismatch", t.shape, shape))
	}

	return &Tensor{
		b:     t.b,
		dtype: t.dtype,
		shape: slices.Clone(shape),
		data:  t.data,
	}
}

// Permute ordnet die Dimensionen um: Dimension i des Ergebnisses ist
// Dimension axes[i] des Empfängers. Die Daten werden materialisiert.
func (t *Tensor) Permute(ctx ml.Context, axes ...int) ml.Tensor {
	if len(axes) != len(t.shape) {
		panic(fmt.Sprintf("cpu: permute %v: got %d axes, want %d", t.shape, len(axes), len(t.shape)))
	}

	seen := make([]bool, len(axes))
	for _, a := range axes {
		if a < 0 || a >= len(axes) || seen[a] {
			panic(fmt.Sprintf("cpu: permute %v: invalid axes %v", t.shape, axes))
		}
		seen[a] = true
	}

	shape := make([]int, len(axes))
	for i, a := range axes {
		shape[i] = t.shape[a]
	}

	out := newTensor(t.b, t.dtype, shape)

	src := t.Floats()
	dst := make([]float32, len(src))

	// Multi-Index über das Ergebnis, Quell-Index über die alten Strides
	srcStride := make([]int, len(axes))
	for i, a := range axes {
		srcStride[i] = t.Stride(a)
	}

	idx := make([]int, len(shape))
	for i := range dst {
		si := 0
		for d, v := range idx {
			si += v * srcStride[d]
		}
		dst[i] = src[si]

		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < shape[d] {
				break
			}
			idx[d] = 0
		}
	}

	out.FromFloats(dst)
	return out
}
