// context.go - Compute-Kontext des CPU-Backends
// Enthält: Context struct, Tensor-Erzeugung (Empty, Zeros, FromBytes, FromFloats)

package cpu

import (
	"github.com/strata-ml/strata/ml"
)

// Context ist ein Eager-Kontext: Tensoren sind nach Erzeugung sofort
// materialisiert, Forward und Compute kehren direkt zurück.
type Context struct {
	b *Backend
}

// Empty erstellt einen uninitialisierten Tensor
func (c *Context) Empty(dtype ml.DType, shape ...int) ml.Tensor {
	return newTensor(c.b, dtype, shape)
}

// Zeros erstellt einen mit Nullen gefüllten Tensor
func (c *Context) Zeros(dtype ml.DType, shape ...int) ml.Tensor {
	// make() liefert bereits genullten Speicher
	return newTensor(c.b, dtype, shape)
}

// FromBytes erstellt einen Tensor aus rohen little-endian Bytes
func (c *Context) FromBytes(dtype ml.DType, s []byte, shape ...int) ml.Tensor {
	t := newTensor(c.b, dtype, shape)
	t.FromBytes(s)
	return t
}

// FromFloats erstellt einen F32-Tensor aus float32-Werten
func (c *Context) FromFloats(s []float32, shape ...int) ml.Tensor {
	t := newTensor(c.b, ml.DTypeF32, shape)
	t.FromFloats(s)
	return t
}

// Forward ist für das Eager-Backend ein No-Op
func (c *Context) Forward(...ml.Tensor) ml.Context {
	return c
}

// Compute ist für das Eager-Backend ein No-Op
func (c *Context) Compute(...ml.Tensor) {}

// Close gibt Kontext-Ressourcen frei
func (c *Context) Close() {}
