// types.go - Datentypen und Konstanten fuer ML-Operationen
// Dieses Modul definiert grundlegende Typen wie DType.
package ml

// DType represents the data type of tensor elements.
type DType int

const (
	DTypeOther DType = iota
	DTypeF32
	DTypeF16
)

// Size returns the storage size of one element in bytes, or 0 for
// unknown types.
func (dt DType) Size() int {
	switch dt {
	case DTypeF32:
		return 4
	case DTypeF16:
		return 2
	default:
		return 0
	}
}

func (dt DType) String() string {
	switch dt {
	case DTypeF32:
		return "F32"
	case DTypeF16:
		return "F16"
	default:
		return "Other"
	}
}
