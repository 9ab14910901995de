// tensor_nn.go - Neuronale Netzwerk-Operationen
// Enthält: IM2Col, Conv2D, AvgPool2D, BatchNorm

package cpu

import (
	"fmt"

	"github.com/chewxy/math32"
	"golang.org/x/sync/errgroup"

	"github.com/strata-ml/strata/logutil"
	"github.com/strata-ml/strata/ml"
)

// IM2Col entfaltet Bildausschnitte eines (N, C, H, W) Tensors in
// Spalten der Form (N, OH, OW, C*KH*KW). Die Kernelgröße stammt aus
// dem Gewicht (OC, C, KH, KW); s0/p0/d0 wirken auf die Höhe,
// s1/p1/d1 auf die Breite.
func (t *Tensor) IM2Col(ctx ml.Context, weight ml.Tensor, s0, s1, p0, p1, d0, d1 int) ml.Tensor {
	w := fromML(weight)

	if len(t.shape) != 4 {
		panic(fmt.Sprintf("cpu: im2col: input must be 4D, got %v", t.shape))
	}
	if len(w.shape) != 4 {
		panic(fmt.Sprintf("cpu: im2col: weight must be 4D, got %v", w.shape))
	}

	batch, channels, height, width := t.shape[0], t.shape[1], t.shape[2], t.shape[3]
	kh, kw := w.shape[2], w.shape[3]

	if w.shape[1] != channels {
		panic(fmt.Sprintf("cpu: im2col: weight %v does not match input %v", w.shape, t.shape))
	}

	oh := (height+2*p0-d0*(kh-1)-1)/s0 + 1
	ow := (width+2*p1-d1*(kw-1)-1)/s1 + 1
	if oh <= 0 || ow <= 0 {
		panic(fmt.Sprintf("cpu: im2col: kernel %dx%d exceeds input %v", kh, kw, t.shape))
	}

	patch := channels * kh * kw

	src := t.Floats()
	dst := make([]float32, batch*oh*ow*patch)

	var g errgroup.Group
	g.SetLimit(t.b.threads)

	for n := range batch {
		g.Go(func() error {
			for y := range oh {
				for x := range ow {
					base := ((n*oh+y)*ow + x) * patch
					for c := range channels {
						for ky := range kh {
							iy := y*s0 - p0 + ky*d0
							if iy < 0 || iy >= height {
								continue
							}
							for kx := range kw {
								ix := x*s1 - p1 + kx*d1
								if ix < 0 || ix >= width {
									continue
								}
								dst[base+(c*kh+ky)*kw+kx] = src[((n*channels+c)*height+iy)*width+ix]
							}
						}
					}
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		panic(err)
	}

	out := newTensor(t.b, ml.DTypeF32, []int{batch, oh, ow, patch})
	out.FromFloats(dst)
	return out
}

// Conv2D faltet einen (N, C, H, W) Tensor mit dem Gewicht
// (OC, C, KH, KW) zu (N, OC, OH, OW), ohne Bias
func (t *Tensor) Conv2D(ctx ml.Context, weight ml.Tensor, s0, s1, p0, p1, d0, d1 int) ml.Tensor {
	w := fromML(weight)

	cols := t.IM2Col(ctx, weight, s0, s1, p0, p1, d0, d1)

	oc := w.shape[0]
	mat := w.Reshape(ctx, oc, w.elems()/oc)

	// (N, OH, OW, OC) -> (N, OC, OH, OW)
	out := mat.Mulmat(ctx, cols).Permute(ctx, 0, 3, 1, 2)

	logutil.Trace("conv2d", "input", t.Shape(), "weight", w.Shape(), "output", out.Shape())
	return out
}

// AvgPool2D mittelt über k×k Fenster mit Stride s; s <= 0 setzt s = k.
// Padding zählt mit in den Divisor.
func (t *Tensor) AvgPool2D(ctx ml.Context, k, s int, p float32) ml.Tensor {
	if len(t.shape) != 4 {
		panic(fmt.Sprintf("cpu: avg pool: input must be 4D, got %v", t.shape))
	}

	if s <= 0 {
		s = k
	}
	pad := int(p)

	batch, channels, height, width := t.shape[0], t.shape[1], t.shape[2], t.shape[3]

	oh := (height+2*pad-k)/s + 1
	ow := (width+2*pad-k)/s + 1
	if oh <= 0 || ow <= 0 {
		panic(fmt.Sprintf("cpu: avg pool: window %d exceeds input %v", k, t.shape))
	}

	src := t.Floats()
	dst := make([]float32, batch*channels*oh*ow)

	div := float32(k * k)

	for n := range batch {
		for c := range channels {
			plane := (n*channels + c) * height * width
			for y := range oh {
				for x := range ow {
					var sum float32
					for ky := range k {
						iy := y*s - pad + ky
						if iy < 0 || iy >= height {
							continue
						}
						for kx := range k {
							ix := x*s - pad + kx
							if ix < 0 || ix >= width {
								continue
							}
							sum += src[plane+iy*width+ix]
						}
					}
					dst[((n*channels+c)*oh+y)*ow+x] = sum / div
				}
			}
		}
	}

	out := newTensor(t.b, ml.DTypeF32, []int{batch, channels, oh, ow})
	out.FromFloats(dst)
	return out
}

// BatchNorm normalisiert einen (N, C, H, W) Tensor kanalweise mit
// gespeicherten Statistiken und affiner Transformation
func (t *Tensor) BatchNorm(ctx ml.Context, weight, bias, mean, variance ml.Tensor, eps float32) ml.Tensor {
	if len(t.shape) != 4 {
		panic(fmt.Sprintf("cpu: batch norm: input must be 4D, got %v", t.shape))
	}

	channels := t.shape[1]

	w := fromML(weight).Floats()
	b := fromML(bias).Floats()
	m := fromML(mean).Floats()
	v := fromML(variance).Floats()

	for name, s := range map[string][]float32{"weight": w, "bias": b, "mean": m, "variance": v} {
		if len(s) != channels {
			panic(fmt.Sprintf("cpu: batch norm: %s has %d values, want %d", name, len(s), channels))
		}
	}

	// y = (x - mean) / sqrt(var + eps) * weight + bias, pro Kanal
	// vorberechnet als y = x*scale + shift
	scale := make([]float32, channels)
	shift := make([]float32, channels)
	for c := range channels {
		scale[c] = w[c] / math32.Sqrt(v[c]+eps)
		shift[c] = b[c] - m[c]*scale[c]
	}

	plane := t.shape[2] * t.shape[3]

	src := t.Floats()
	dst := make([]float32, len(src))
	for i, x := range src {
		c := i / plane % channels
		dst[i] = x*scale[c] + shift[c]
	}

	out := newTensor(t.b, ml.DTypeF32, t.shape)
	out.FromFloats(dst)
	return out
}
