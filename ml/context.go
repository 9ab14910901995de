// context.go - Context und Tensor Interfaces fuer ML-Operationen
// Dieses Modul definiert die Schnittstellen fuer Tensor-Operationen und Compute-Kontexte.
package ml

// Context represents an execution context for tensor operations. Eager
// backends materialize tensors on construction; for those, Forward and
// Compute are synchronization points that return immediately.
type Context interface {
	Empty(dtype DType, shape ...int) Tensor
	Zeros(dtype DType, shape ...int) Tensor
	FromBytes(dtype DType, s []byte, shape ...int) Tensor
	FromFloats(s []float32, shape ...int) Tensor

	Forward(...Tensor) Context
	Compute(...Tensor)

	Close()
}

// Tensor represents a multi-dimensional array with various operations.
// Shapes are row-major with the outermost dimension first; image batches
// use NCHW layout.
type Tensor interface {
	Dim(n int) int
	Stride(n int) int

	Shape() []int
	DType() DType
	Cast(ctx Context, dtype DType) Tensor

	Bytes() []byte
	Floats() []float32

	// FromBytes and FromFloats overwrite the tensor's contents in place.
	// They exist for weight population; compute ops never mutate operands.
	FromBytes([]byte)
	FromFloats([]float32)

	Add(ctx Context, t2 Tensor) Tensor
	Mul(ctx Context, t2 Tensor) Tensor

	// Mulmat treats the receiver as a (rows, cols) weight matrix and
	// contracts t2's innermost dimension against cols: receiver (o, i)
	// with t2 (..., i) yields (..., o).
	Mulmat(ctx Context, t2 Tensor) Tensor

	Scale(ctx Context, s float64) Tensor
	Softmax(ctx Context) Tensor
	RELU(ctx Context) Tensor

	AvgPool2D(ctx Context, k, s int, p float32) Tensor
	Conv2D(ctx Context, weight Tensor, s0, s1, p0, p1, d0, d1 int) Tensor
	IM2Col(ctx Context, weight Tensor, s0, s1, p0, p1, d0, d1 int) Tensor

	// BatchNorm applies inference-mode batch normalization over the
	// channel dimension of an NCHW tensor using recorded statistics.
	BatchNorm(ctx Context, weight, bias, mean, variance Tensor, eps float32) Tensor

	Reshape(ctx Context, shape ...int) Tensor
	Permute(ctx Context, shape ...int) Tensor
}
