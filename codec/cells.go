// SPDX-License-Identifier: MIT

package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/katalvlaran/lvengine/engine"
)

// isComplex reports whether T (possibly a named type) is complex-valued.
func isComplex[T engine.Element]() bool {
	var zero T
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// encodeCells encodes reals as a CBOR array of numbers and complex values as
// an array of [re, im] pairs. With foldZero, -0 is written as +0 so that
// cells equal under == encode identically.
func encodeCells[T engine.Element](cells []T, foldZero bool) (cbor.RawMessage, error) {
	if !isComplex[T]() {
		if foldZero {
			var zero T
			for k, v := range cells {
				if v == zero {
					cells[k] = zero
				}
			}
		}

		return encMode.Marshal(cells)
	}
	pairs := make([][2]float64, len(cells))
	for k, c := range cells {
		z := reflect.ValueOf(c).Complex()
		re, im := real(z), imag(z)
		if foldZero {
			if re == 0 {
				re = 0
			}
			if im == 0 {
				im = 0
			}
		}
		pairs[k] = [2]float64{re, im}
	}

	return encMode.Marshal(pairs)
}

// decodeCells reverses encodeCells.
func decodeCells[T engine.Element](raw cbor.RawMessage) ([]T, error) {
	if len(raw) == 0 {
		return nil, ErrMalformed
	}
	if !isComplex[T]() {
		var cells []T
		if err := decMode.Unmarshal(raw, &cells); err != nil {
			return nil, err
		}

		return cells, nil
	}
	var pairs [][2]float64
	if err := decMode.Unmarshal(raw, &pairs); err != nil {
		return nil, err
	}
	cells := make([]T, len(pairs))
	for k, p := range pairs {
		reflect.ValueOf(&cells[k]).Elem().SetComplex(complex(p[0], p[1]))
	}

	return cells, nil
}
