// tensor_matrix.go - Matrix-Operationen
// Enthält: Mulmat

package cpu

import (
	"fmt"
	"slices"

	"github.com/pdevine/tensor"

	"github.com/strata-ml/strata/ml"
)

// Mulmat multipliziert die Gewichtsmatrix (out, in) mit t2 (..., in)
// und gibt (..., out) zurück. Führende Dimensionen von t2 werden als
// Batch behandelt.
func (t *Tensor) Mulmat(ctx ml.Context, t2 ml.Tensor) ml.Tensor {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("cpu: mulmat: weight must be 2D, got %v", t.shape))
	}

	x := fromML(t2)

	o, i := t.shape[0], t.shape[1]
	if x.shape[len(x.shape)-1] != i {
		panic(fmt.Sprintf("cpu: mulmat: weight %v does not match input %v", t.shape, x.shape))
	}

	rows := x.elems() / i

	// Gewicht nach (in, out) transponieren, dann x @ wT = (rows, out)
	wf := t.Floats()
	wt := make([]float32, len(wf))
	for r := range o {
		for c := range i {
			wt[c*o+r] = wf[r*i+c]
		}
	}

	xd := tensor.New(tensor.WithShape(rows, i), tensor.WithBacking(x.Floats()))
	wd := tensor.New(tensor.WithShape(i, o), tensor.WithBacking(wt))

	prod, err := xd.MatMul(wd)
	if err != nil {
		panic(fmt.Sprintf("cpu: mulmat %v x %v: %v", t.shape, x.shape, err))
	}

	shape := append(slices.Clone(x.shape[:len(x.shape)-1]), o)
	out := newTensor(t.b, ml.DTypeF32, shape)
	out.FromFloats(prod.Data().([]float32))
	return out
}
