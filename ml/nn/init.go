// init.go - Gewichts-Initialisierung
// Enthält: InitFn, Zeros, Ones, Uniform, KaimingUniform

package nn

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// InitFn erzeugt die Startwerte für einen Gewichtstensor der
// angegebenen Form. Eine Instanz führt einen eigenen Zufallsstrom,
// aufeinanderfolgende Aufrufe ziehen aufeinanderfolgende Werte.
type InitFn func(shape ...int) []float32

// Zeros initialisiert alle Gewichte mit null
func Zeros() InitFn {
	return func(shape ...int) []float32 {
		return make([]float32, count(shape))
	}
}

// Ones initialisiert alle Gewichte mit eins
func Ones() InitFn {
	return func(shape ...int) []float32 {
		out := make([]float32, count(shape))
		for i := range out {
			out[i] = 1
		}
		return out
	}
}

// Uniform zieht Gewichte gleichverteilt aus [lo, hi)
func Uniform(seed uint64, lo, hi float64) InitFn {
	src := rand.NewSource(seed)
	return func(shape ...int) []float32 {
		u := distuv.Uniform{Min: lo, Max: hi, Src: src}

		out := make([]float32, count(shape))
		for i := range out {
			out[i] = float32(u.Rand())
		}
		return out
	}
}

// KaimingUniform zieht Gewichte gleichverteilt aus
// [-sqrt(6/fanIn), sqrt(6/fanIn)], mit fanIn als Produkt aller
// Dimensionen nach der ersten
func KaimingUniform(seed uint64) InitFn {
	src := rand.NewSource(seed)
	return func(shape ...int) []float32 {
		fanIn := 1
		for _, d := range shape[1:] {
			fanIn *= d
		}

		bound := math.Sqrt(6 / float64(fanIn))
		u := distuv.Uniform{Min: -bound, Max: bound, Src: src}

		out := make([]float32, count(shape))
		for i := range out {
			out[i] = float32(u.Rand())
		}
		return out
	}
}

// count gibt die Element-Anzahl einer Form zurück
func count(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}

	return n
}
