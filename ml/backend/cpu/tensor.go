// tensor.go - Tensor-Struktur und Basis-Methoden
// Enthält: Tensor struct, Shape, Bytes, Floats, DType, Cast

package cpu

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/x448/float16"

	"github.com/strata-ml/strata/ml"
)

// Tensor speichert Elemente als little-endian Rohbytes in row-major
// Reihenfolge (äußerste Dimension zuerst, NCHW für Bilder).
type Tensor struct {
	b     *Backend
	dtype ml.DType
	shape []int
	data  []byte
}

// newTensor alloziert einen Tensor mit genulltem Speicher
func newTensor(b *Backend, dtype ml.DType, shape []int) *Tensor {
	n := 1
	for _, d := range shape {
		if d <= 0 {
			panic(fmt.Sprintf("cpu: invalid dimension %d in shape %v", d, shape))
		}
		n *= d
	}

	size := dtype.Size()
	if size == 0 {
		panic(fmt.Sprintf("cpu: unsupported dtype %v", dtype))
	}

	return &Tensor{
		b:     b,
		dtype: dtype,
		shape: slices.Clone(shape),
		data:  make([]byte, n*size),
	}
}

// fromML prüft, dass ein Operand aus diesem Backend stammt
func fromML(t ml.Tensor) *Tensor {
	tt, ok := t.(*Tensor)
	if !ok {
		panic(fmt.Sprintf("cpu: foreign tensor %T", t))
	}

	return tt
}

// LogValue gibt den Tensor als slog-Wert zurück
func (t *Tensor) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", t.dtype.String()),
		slog.Any("shape", t.Shape()),
	)
}

// elems gibt die Anzahl der Elemente zurück
func (t *Tensor) elems() int {
	n := 1
	for _, d := range t.shape {
		n *= d
	}

	return n
}

// Dim gibt die Größe einer Dimension zurück
func (t *Tensor) Dim(n int) int {
	return t.shape[n]
}

// Stride gibt den Element-Stride einer Dimension zurück
func (t *Tensor) Stride(n int) int {
	stride := 1
	for _, d := range t.shape[n+1:] {
		stride *= d
	}

	return stride
}

// Shape gibt die Form des Tensors zurück
func (t *Tensor) Shape() []int {
	return slices.Clone(t.shape)
}

// DType gibt den Element-Datentyp zurück
func (t *Tensor) DType() ml.DType {
	return t.dtype
}

// Bytes gibt die Tensor-Daten als rohe Bytes zurück
func (t *Tensor) Bytes() []byte {
	return t.data
}

// Floats dekodiert die Tensor-Daten nach float32
func (t *Tensor) Floats() []float32 {
	return decodeFloats(t.dtype, t.data)
}

// FromBytes überschreibt die Tensor-Daten mit rohen Bytes
func (t *Tensor) FromBytes(s []byte) {
	if len(s) != len(t.data) {
		panic(fmt.Sprintf("cpu: from bytes: got %d bytes, want %d", len(s), len(t.data)))
	}

	copy(t.data, s)
}

// FromFloats überschreibt die Tensor-Daten mit float32-Werten,
// kodiert in den Datentyp des Tensors
func (t *Tensor) FromFloats(s []float32) {
	if len(s) != t.elems() {
		panic(fmt.Sprintf("cpu: from floats: got %d values, want %d", len(s), t.elems()))
	}

	encodeFloats(t.dtype, t.data, s)
}

// Cast konvertiert den Tensor in einen anderen Datentyp
func (t *Tensor) Cast(ctx ml.Context, dtype ml.DType) ml.Tensor {
	out := newTensor(t.b, dtype, t.shape)
	encodeFloats(dtype, out.data, t.Floats())
	return out
}

// decodeFloats dekodiert Rohbytes in float32-Werte
func decodeFloats(dtype ml.DType, src []byte) []float32 {
	switch dtype {
	case ml.DTypeF32:
		dst := make([]float32, len(src)/4)
		for i := range dst {
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
		}
		return dst
	case ml.DTypeF16:
		dst := make([]float32, len(src)/2)
		for i := range dst {
			dst[i] = float16.Frombits(binary.LittleEndian.Uint16(src[i*2:])).Float32()
		}
		return dst
	default:
		panic(fmt.Sprintf("cpu: unsupported dtype %v", dtype))
	}
}

// encodeFloats kodiert float32-Werte in Rohbytes
func encodeFloats(dtype ml.DType, dst []byte, src []float32) {
	switch dtype {
	case ml.DTypeF32:
		for i, v := range src {
			binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
		}
	case ml.DTypeF16:
		for i, v := range src {
			binary.LittleEndian.PutUint16(dst[i*2:], float16.Fromfloat32(v).Bits())
		}
	default:
		panic(fmt.Sprintf("cpu: unsupported dtype %v", dtype))
	}
}
