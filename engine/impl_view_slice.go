// SPDX-License-Identifier: MIT

// Package engine - window views: row, column and box.
//
// Purpose:
//   - Row: a 1×cols view of parent row r.
//   - Col: a rows×1 view of parent column c.
//   - Box: a rows×cols window starting at parent (r0,c0).
//
// Constructors validate the window against the parent's logical extent at
// construction time (ErrOutOfRange, ErrInvalidLength for empty windows,
// ErrNilEngine for a nil parent). A later reshape of the parent is not
// re-checked; the window then reads through to whatever the parent holds at
// those indices.
//
// Flat indexing:
//   - Row/Col: the flat index is the position along the vector.
//   - Box: the flat index is decomposed in the parent's layout order
//     (row-major when the parent reports no layout).

package engine

const (
	ctxRow = "NewRow"
	ctxCol = "NewCol"
	ctxBox = "NewBox"
)

// ---------- row ----------

type rowCore[T Element] struct {
	viewBase[T]
	r int
}

func (v rowCore[T]) Rows() int {
	if v.p == nil {
		return 0
	}

	return 1
}
func (v rowCore[T]) Cols() int      { return v.parentCols() }
func (v rowCore[T]) Size() int      { return v.parentCols() }
func (v rowCore[T]) At(_, j int) T  { return v.p.At(v.r, j) }
func (v rowCore[T]) AtFlat(k int) T { return v.p.At(v.r, k) }
func (v rowCore[T]) Kind() ViewKind { return KindRow }
func (v rowCore[T]) Layout() Layout { return v.parentLayout() }

// Index returns the selected parent row.
func (v rowCore[T]) Index() int { return v.r }

func newRowCore[T Element](p Readable[T], r int) (rowCore[T], error) {
	if isNil(p) {
		return rowCore[T]{}, viewErrorf(ctxRow, ErrNilEngine, r)
	}
	if r < 0 || r >= p.Rows() {
		return rowCore[T]{}, viewErrorf(ctxRow, ErrOutOfRange, r)
	}

	return rowCore[T]{viewBase: viewBase[T]{p: p}, r: r}, nil
}

// Row is a mutable 1×cols view of one parent row.
type Row[T Element] struct {
	rowCore[T]
	w Writable[T]
}

// NewRow binds a mutable view of row r of p.
//
// Errors: ErrNilEngine, ErrOutOfRange.
func NewRow[T Element](p Writable[T], r int) (Row[T], error) {
	core, err := newRowCore[T](p, r)
	if err != nil {
		return Row[T]{}, err
	}

	return Row[T]{rowCore: core, w: p}, nil
}

// Mutable reports true.
func (v Row[T]) Mutable() bool { return true }

// Set writes parent (r,j); i is ignored.
func (v Row[T]) Set(_, j int, x T) { v.w.Set(v.r, j, x) }

// SetFlat writes parent (r,k).
func (v Row[T]) SetFlat(k int, x T) { v.w.Set(v.r, k, x) }

// Swap exchanges parents and row indices of v and o.
func (v *Row[T]) Swap(o *Row[T]) { *v, *o = *o, *v }

// ConstRow is the read-only row view.
type ConstRow[T Element] struct{ rowCore[T] }

// NewConstRow binds a read-only view of row r of p.
//
// Errors: ErrNilEngine, ErrOutOfRange.
func NewConstRow[T Element](p Readable[T], r int) (ConstRow[T], error) {
	core, err := newRowCore(p, r)
	if err != nil {
		return ConstRow[T]{}, err
	}

	return ConstRow[T]{core}, nil
}

// Mutable reports false.
func (v ConstRow[T]) Mutable() bool { return false }

// Swap exchanges parents and row indices of v and o.
func (v *ConstRow[T]) Swap(o *ConstRow[T]) { *v, *o = *o, *v }

// ---------- column ----------

type colCore[T Element] struct {
	viewBase[T]
	c int
}

func (v colCore[T]) Rows() int { return v.parentRows() }
func (v colCore[T]) Cols() int {
	if v.p == nil {
		return 0
	}

	return 1
}
func (v colCore[T]) Size() int      { return v.parentRows() }
func (v colCore[T]) At(i, _ int) T  { return v.p.At(i, v.c) }
func (v colCore[T]) AtFlat(k int) T { return v.p.At(k, v.c) }
func (v colCore[T]) Kind() ViewKind { return KindCol }
func (v colCore[T]) Layout() Layout { return v.parentLayout() }

// Index returns the selected parent column.
func (v colCore[T]) Index() int { return v.c }

func newColCore[T Element](p Readable[T], c int) (colCore[T], error) {
	if isNil(p) {
		return colCore[T]{}, viewErrorf(ctxCol, ErrNilEngine, c)
	}
	if c < 0 || c >= p.Cols() {
		return colCore[T]{}, viewErrorf(ctxCol, ErrOutOfRange, c)
	}

	return colCore[T]{viewBase: viewBase[T]{p: p}, c: c}, nil
}

// Col is a mutable rows×1 view of one parent column.
type Col[T Element] struct {
	colCore[T]
	w Writable[T]
}

// NewCol binds a mutable view of column c of p.
//
// Errors: ErrNilEngine, ErrOutOfRange.
func NewCol[T Element](p Writable[T], c int) (Col[T], error) {
	core, err := newColCore[T](p, c)
	if err != nil {
		return Col[T]{}, err
	}

	return Col[T]{colCore: core, w: p}, nil
}

// Mutable reports true.
func (v Col[T]) Mutable() bool { return true }

// Set writes parent (i,c); j is ignored.
func (v Col[T]) Set(i, _ int, x T) { v.w.Set(i, v.c, x) }

// SetFlat writes parent (k,c).
func (v Col[T]) SetFlat(k int, x T) { v.w.Set(k, v.c, x) }

// Swap exchanges parents and column indices of v and o.
func (v *Col[T]) Swap(o *Col[T]) { *v, *o = *o, *v }

// ConstCol is the read-only column view.
type ConstCol[T Element] struct{ colCore[T] }

// NewConstCol binds a read-only view of column c of p.
//
// Errors: ErrNilEngine, ErrOutOfRange.
func NewConstCol[T Element](p Readable[T], c int) (ConstCol[T], error) {
	core, err := newColCore(p, c)
	if err != nil {
		return ConstCol[T]{}, err
	}

	return ConstCol[T]{core}, nil
}

// Mutable reports false.
func (v ConstCol[T]) Mutable() bool { return false }

// Swap exchanges parents and column indices of v and o.
func (v *ConstCol[T]) Swap(o *ConstCol[T]) { *v, *o = *o, *v }

// ---------- box ----------

type boxCore[T Element] struct {
	viewBase[T]
	r0, c0     int
	rows, cols int
}

func (v boxCore[T]) Rows() int      { return v.rows }
func (v boxCore[T]) Cols() int      { return v.cols }
func (v boxCore[T]) Size() int      { return v.rows * v.cols }
func (v boxCore[T]) At(i, j int) T  { return v.p.At(v.r0+i, v.c0+j) }
func (v boxCore[T]) Kind() ViewKind { return KindBox }
func (v boxCore[T]) Layout() Layout { return v.parentLayout() }

// AtFlat decomposes k in the view's layout order.
func (v boxCore[T]) AtFlat(k int) T {
	i, j := v.split(k)

	return v.p.At(v.r0+i, v.c0+j)
}

// Origin returns the window's top-left parent index.
func (v boxCore[T]) Origin() (r0, c0 int) { return v.r0, v.c0 }

func (v boxCore[T]) split(k int) (i, j int) {
	if v.parentLayout() == ColMajor {
		return k % v.rows, k / v.rows
	}

	return k / v.cols, k % v.cols
}

func newBoxCore[T Element](p Readable[T], r0, c0, rows, cols int) (boxCore[T], error) {
	if isNil(p) {
		return boxCore[T]{}, viewErrorf(ctxBox, ErrNilEngine, r0, c0, rows, cols)
	}
	if err := validateWindow(p, r0, c0, rows, cols); err != nil {
		return boxCore[T]{}, viewErrorf(ctxBox, err, r0, c0, rows, cols)
	}

	return boxCore[T]{viewBase: viewBase[T]{p: p}, r0: r0, c0: c0, rows: rows, cols: cols}, nil
}

// Box is a mutable rectangular window into its parent.
type Box[T Element] struct {
	boxCore[T]
	w Writable[T]
}

// NewBox binds a mutable rows×cols window of p starting at (r0,c0).
//
// Errors: ErrNilEngine, ErrInvalidLength (empty window), ErrOutOfRange.
func NewBox[T Element](p Writable[T], r0, c0, rows, cols int) (Box[T], error) {
	core, err := newBoxCore[T](p, r0, c0, rows, cols)
	if err != nil {
		return Box[T]{}, err
	}

	return Box[T]{boxCore: core, w: p}, nil
}

// Mutable reports true.
func (v Box[T]) Mutable() bool { return true }

// Set writes parent (r0+i, c0+j).
func (v Box[T]) Set(i, j int, x T) { v.w.Set(v.r0+i, v.c0+j, x) }

// SetFlat writes the element at flat index k of the window.
func (v Box[T]) SetFlat(k int, x T) {
	i, j := v.split(k)
	v.w.Set(v.r0+i, v.c0+j, x)
}

// Swap exchanges parents and windows of v and o.
func (v *Box[T]) Swap(o *Box[T]) { *v, *o = *o, *v }

// ConstBox is the read-only window view.
type ConstBox[T Element] struct{ boxCore[T] }

// NewConstBox binds a read-only rows×cols window of p starting at (r0,c0).
//
// Errors: ErrNilEngine, ErrInvalidLength (empty window), ErrOutOfRange.
func NewConstBox[T Element](p Readable[T], r0, c0, rows, cols int) (ConstBox[T], error) {
	core, err := newBoxCore(p, r0, c0, rows, cols)
	if err != nil {
		return ConstBox[T]{}, err
	}

	return ConstBox[T]{core}, nil
}

// Mutable reports false.
func (v ConstBox[T]) Mutable() bool { return false }

// Swap exchanges parents and windows of v and o.
func (v *ConstBox[T]) Swap(o *ConstBox[T]) { *v, *o = *o, *v }
