// Package model - Reflection-basierte Tensor-Traversierung
//
// Dieses Modul enthält die Reflection-Logik zum Auffinden aller
// Tensoren einer Model-Struktur über exportierte Felder.
//
// Hauptkomponenten:
// - Tensors: Sammelt alle benannten Tensoren eines Modells
// - ParameterCount: Zählt die gespeicherten Tensor-Elemente
// - CopyWeights: Überträgt Gewichte zwischen strukturgleichen Modellen

package model

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/strata-ml/strata/logutil"
	"github.com/strata-ml/strata/ml"
)

var tensorType = reflect.TypeOf((*ml.Tensor)(nil)).Elem()

// namedTensor bindet einen Pfadnamen an einen Tensor
type namedTensor struct {
	name string
	t    ml.Tensor
}

// Tensors sammelt alle Tensoren eines Modells, benannt nach ihrem
// Feld-Pfad in Kleinschreibung, z.B. "layer1.0.conv1.weight"
func Tensors(m Model) map[string]ml.Tensor {
	out := make(map[string]ml.Tensor)
	for _, nt := range tensors(reflect.ValueOf(m), "") {
		out[nt.name] = nt.t
	}

	return out
}

// ParameterCount zählt die Elemente aller Tensoren eines Modells,
// einschließlich der Normalisierungs-Statistiken
func ParameterCount(m Model) int64 {
	var n int64
	for _, nt := range tensors(reflect.ValueOf(m), "") {
		c := int64(1)
		for _, d := range nt.t.Shape() {
			c *= int64(d)
		}
		n += c
	}

	return n
}

// CopyWeights überträgt alle Gewichte von src nach dst. Beide Modelle
// müssen strukturgleich sein: gleiche Tensor-Pfade in gleicher
// Reihenfolge mit gleichen Formen.
func CopyWeights(dst, src Model) error {
	dt := tensors(reflect.ValueOf(dst), "")
	st := tensors(reflect.ValueOf(src), "")

	if len(dt) != len(st) {
		return fmt.Errorf("model: copy weights: %d tensors in dst, %d in src", len(dt), len(st))
	}

	for i, d := range dt {
		s := st[i]

		if d.name != s.name {
			return fmt.Errorf("model: copy weights: tensor %q in dst, %q in src", d.name, s.name)
		}
		if !slices.Equal(d.t.Shape(), s.t.Shape()) {
			return fmt.Errorf("model: copy weights: %s: shape %v in dst, %v in src", d.name, d.t.Shape(), s.t.Shape())
		}

		logutil.Trace("copy tensor", "name", d.name, "shape", d.t.Shape())

		if d.t.DType() == s.t.DType() {
			d.t.FromBytes(s.t.Bytes())
		} else {
			d.t.FromFloats(s.t.Floats())
		}
	}

	return nil
}

// tensors traversiert eine Model-Struktur rekursiv über exportierte
// Felder und sammelt alle gesetzten Tensoren in Deklarations-Reihenfolge
func tensors(v reflect.Value, prefix string) []namedTensor {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	var out []namedTensor

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}

			vv := v.Field(i)
			name := joinPath(prefix, strings.ToLower(f.Name))

			if f.Type == tensorType {
				if !vv.IsNil() {
					out = append(out, namedTensor{name: name, t: vv.Interface().(ml.Tensor)})
				}
				continue
			}

			out = append(out, tensors(vv, name)...)
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			out = append(out, tensors(v.Index(i), joinPath(prefix, strconv.Itoa(i)))...)
		}
	}

	return out
}

// joinPath verbindet Pfad-Segmente mit Punkten
func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}
