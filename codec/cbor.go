// SPDX-License-Identifier: MIT

package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/katalvlaran/lvengine/engine"
)

// encMode is the CBOR encoder configured with Core Deterministic Encoding:
// sorted map keys, smallest integer and float encoding, no indefinite-length
// items.
var encMode cbor.EncMode

// MaxCells bounds a decoded document: its row_reach*col_reach buffer and the
// length of any CBOR array in it.
const MaxCells = 1 << 26

// decMode rejects duplicate map keys and arrays longer than MaxCells; unknown
// fields are ignored.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: MaxCells,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// wireStorage is the CBOR document of one storage engine.
type wireStorage struct {
	Layout   string          `cbor:"layout"`
	Extents  string          `cbor:"extents"`
	Rows     int             `cbor:"rows"`
	Cols     int             `cbor:"cols"`
	RowReach int             `cbor:"row_reach"`
	ColReach int             `cbor:"col_reach"`
	Cells    cbor.RawMessage `cbor:"cells"`
}

// Marshal encodes s as a deterministic CBOR storage document.
//
// Errors: engine.ErrNilEngine.
// Complexity: O(rows*cols).
func Marshal[T engine.Element](s *engine.Storage[T]) ([]byte, error) {
	w, err := toWire(s)
	if err != nil {
		return nil, fmt.Errorf("codec.Marshal: %w", err)
	}

	return encMode.Marshal(w)
}

// Unmarshal decodes a storage document into a new engine. The document's
// layout, dimension policy and reach are restored; opts supply the remaining
// configuration (observer, logger). A layout in opts is overridden by the
// document.
//
// Errors: ErrMalformed (including reach above MaxCells),
// engine.ErrShapeMismatch (cell count or reach does not match the declared
// extent), CBOR decode errors.
// Complexity: O(rows*cols).
func Unmarshal[T engine.Element](data []byte, opts ...engine.Option) (*engine.Storage[T], error) {
	var w wireStorage
	if err := decMode.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("codec.Unmarshal: %w", err)
	}
	s, err := fromWire[T](&w, opts)
	if err != nil {
		return nil, fmt.Errorf("codec.Unmarshal: %w", err)
	}

	return s, nil
}

// Encoder writes a CBOR sequence of storage documents to a stream.
type Encoder[T engine.Element] struct {
	enc *cbor.Encoder
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder[T engine.Element](w io.Writer) *Encoder[T] {
	return &Encoder[T]{enc: encMode.NewEncoder(w)}
}

// Encode appends one storage document to the stream.
func (e *Encoder[T]) Encode(s *engine.Storage[T]) error {
	w, err := toWire(s)
	if err != nil {
		return fmt.Errorf("codec.Encoder.Encode: %w", err)
	}

	return e.enc.Encode(w)
}

// Decoder reads a CBOR sequence of storage documents from a stream.
type Decoder[T engine.Element] struct {
	dec  *cbor.Decoder
	opts []engine.Option
}

// NewDecoder returns a Decoder reading from r; opts apply to every decoded
// engine as in Unmarshal.
func NewDecoder[T engine.Element](r io.Reader, opts ...engine.Option) *Decoder[T] {
	return &Decoder[T]{dec: decMode.NewDecoder(r), opts: opts}
}

// Decode reads the next storage document. It returns io.EOF when the stream
// is exhausted.
func (d *Decoder[T]) Decode() (*engine.Storage[T], error) {
	var w wireStorage
	if err := d.dec.Decode(&w); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		return nil, fmt.Errorf("codec.Decoder.Decode: %w", err)
	}
	s, err := fromWire[T](&w, d.opts)
	if err != nil {
		return nil, fmt.Errorf("codec.Decoder.Decode: %w", err)
	}

	return s, nil
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// toWire snapshots s into its wire document.
func toWire[T engine.Element](s *engine.Storage[T]) (*wireStorage, error) {
	if s == nil {
		return nil, engine.ErrNilEngine
	}
	cells := make([]T, s.Size())
	for k := range cells {
		cells[k] = s.AtFlat(k)
	}
	raw, err := encodeCells(cells, false)
	if err != nil {
		return nil, err
	}

	return &wireStorage{
		Layout:   s.Layout().String(),
		Extents:  s.Extents().String(),
		Rows:     s.Rows(),
		Cols:     s.Cols(),
		RowReach: s.RowReach(),
		ColReach: s.ColReach(),
		Cells:    raw,
	}, nil
}

// fromWire validates w and rebuilds the engine it describes.
func fromWire[T engine.Element](w *wireStorage, opts []engine.Option) (*engine.Storage[T], error) {
	layout, ok := parseLayout(w.Layout)
	if !ok {
		return nil, fmt.Errorf("layout %q: %w", w.Layout, ErrMalformed)
	}
	ext, ok := parseExtents(w.Extents)
	if !ok {
		return nil, fmt.Errorf("extents %q: %w", w.Extents, ErrMalformed)
	}
	cells, err := decodeCells[T](w.Cells)
	if err != nil {
		return nil, fmt.Errorf("cells: %w", err)
	}
	if err = checkWireShape(w, ext, len(cells)); err != nil {
		return nil, err
	}

	// the document's layout wins over any caller-supplied one
	opts = append(opts[:len(opts):len(opts)], engine.WithLayout(layout))

	var s *engine.Storage[T]
	switch {
	case w.Rows == 0 && w.Cols == 0:
		return engine.New[T](opts...), nil
	case ext == engine.DynamicBoth:
		s, err = engine.NewWithReach[T](w.Rows, w.RowReach, w.Cols, w.ColReach, opts...)
	case ext == engine.DynamicRows:
		s, err = engine.NewRowDynamic[T](w.Rows, w.RowReach, w.Cols, opts...)
	case ext == engine.DynamicCols:
		s, err = engine.NewColDynamic[T](w.Rows, w.Cols, w.ColReach, opts...)
	default:
		s, err = engine.NewFixed[T](w.Rows, w.Cols, opts...)
	}
	if err != nil {
		return nil, err
	}
	for k, v := range cells {
		s.SetFlat(k, v)
	}

	return s, nil
}

// checkWireShape cross-checks the declared extent, reach, policy and cell
// count.
func checkWireShape(w *wireStorage, ext engine.Extents, n int) error {
	if w.Rows < 0 || w.Cols < 0 || !withinCells(w.Rows, w.Cols) || n != w.Rows*w.Cols {
		return fmt.Errorf("%dx%d with %d cells: %w", w.Rows, w.Cols, n, engine.ErrShapeMismatch)
	}
	if w.Rows == 0 || w.Cols == 0 {
		if w.Rows != w.Cols || ext != engine.DynamicBoth || w.RowReach != 0 || w.ColReach != 0 {
			return fmt.Errorf("empty %s engine: %w", ext, engine.ErrShapeMismatch)
		}

		return nil
	}
	if w.RowReach < w.Rows || w.ColReach < w.Cols {
		return fmt.Errorf("reach %dx%d below extent %dx%d: %w",
			w.RowReach, w.ColReach, w.Rows, w.Cols, engine.ErrShapeMismatch)
	}
	if !withinCells(w.RowReach, w.ColReach) {
		return fmt.Errorf("reach %dx%d above %d cells: %w", w.RowReach, w.ColReach, MaxCells, ErrMalformed)
	}
	fixedRows := ext == engine.FixedBoth || ext == engine.DynamicCols
	fixedCols := ext == engine.FixedBoth || ext == engine.DynamicRows
	if (fixedRows && w.RowReach != w.Rows) || (fixedCols && w.ColReach != w.Cols) {
		return fmt.Errorf("%s engine with spare reach: %w", ext, engine.ErrShapeMismatch)
	}

	return nil
}

// withinCells reports whether a*b <= MaxCells for non-negative a and b,
// without computing an overflowing product.
func withinCells(a, b int) bool {
	if a == 0 || b == 0 {
		return true
	}

	return b <= MaxCells/a
}

// parseLayout maps a Layout.String() value back to the layout.
func parseLayout(name string) (engine.Layout, bool) {
	for _, l := range []engine.Layout{engine.RowMajor, engine.ColMajor} {
		if l.String() == name {
			return l, true
		}
	}

	return engine.LayoutNone, false
}

// parseExtents maps an Extents.String() value back to the policy.
func parseExtents(name string) (engine.Extents, bool) {
	for _, e := range []engine.Extents{engine.DynamicBoth, engine.DynamicRows, engine.DynamicCols, engine.FixedBoth} {
		if e.String() == name {
			return e, true
		}
	}

	return engine.DynamicBoth, false
}
