// Package frame implements a small columnar table used to shuttle lidar
// sweeps and cuboid annotations between their tabular form and the dense
// numeric matrices the augmentation code operates on.
//
// A Frame is a set of named, same-length columns with a stable order.
// Frames are treated as immutable once built: transforms extract float
// columns into a *mat.Dense, mutate the matrix, and write the result back
// with WithFloats, which produces a new Frame sharing every untouched
// column with the original.
package frame

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrMissingColumn is returned when a named column does not exist.
	ErrMissingColumn = errors.New("missing column")
	// ErrColumnExists is returned when adding a duplicate column name.
	ErrColumnExists = errors.New("column already exists")
	// ErrLengthMismatch is returned when a column's length disagrees with
	// the frame's row count, or a write-back matrix has the wrong shape.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrKindMismatch is returned when a column holds a different kind of
	// data than the accessor expects (e.g. Floats on a string column).
	ErrKindMismatch = errors.New("column kind mismatch")
)

// column holds a single named column. Exactly one of floats/strs is set.
type column struct {
	name   string
	floats []float64
	strs   []string
}

func (c *column) len() int {
	if c.floats != nil {
		return len(c.floats)
	}
	return len(c.strs)
}

func (c *column) isFloat() bool { return c.strs == nil }

// Frame is an ordered collection of named, same-length columns.
type Frame struct {
	names []string
	cols  map[string]*column
	rows  int
}

// New returns an empty frame with no columns and no rows.
func New() *Frame {
	return &Frame{cols: make(map[string]*column)}
}

// NumRows returns the number of rows shared by all columns.
func (f *Frame) NumRows() int { return f.rows }

// NumColumns returns the number of columns.
func (f *Frame) NumColumns() int { return len(f.names) }

// ColumnNames returns the column names in frame order.
func (f *Frame) ColumnNames() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.cols[name]
	return ok
}

func (f *Frame) add(c *column) error {
	if _, ok := f.cols[c.name]; ok {
		return fmt.Errorf("add %q: %w", c.name, ErrColumnExists)
	}
	if len(f.names) > 0 && c.len() != f.rows {
		return fmt.Errorf("add %q: have %d rows, column has %d: %w",
			c.name, f.rows, c.len(), ErrLengthMismatch)
	}
	f.rows = c.len()
	f.names = append(f.names, c.name)
	f.cols[c.name] = c
	return nil
}

// AddFloats appends a float64 column. The values slice is copied.
func (f *Frame) AddFloats(name string, values []float64) error {
	vs := make([]float64, len(values))
	copy(vs, values)
	return f.add(&column{name: name, floats: vs})
}

// AddStrings appends a string column. The values slice is copied.
func (f *Frame) AddStrings(name string, values []string) error {
	vs := make([]string, len(values))
	copy(vs, values)
	return f.add(&column{name: name, strs: vs})
}

// MustAddFloats is AddFloats that panics on error; intended for fixtures.
func (f *Frame) MustAddFloats(name string, values []float64) *Frame {
	if err := f.AddFloats(name, values); err != nil {
		panic(err)
	}
	return f
}

// MustAddStrings is AddStrings that panics on error; intended for fixtures.
func (f *Frame) MustAddStrings(name string, values []string) *Frame {
	if err := f.AddStrings(name, values); err != nil {
		panic(err)
	}
	return f
}

func (f *Frame) floatColumn(name string) (*column, error) {
	c, ok := f.cols[name]
	if !ok {
		return nil, fmt.Errorf("column %q: %w", name, ErrMissingColumn)
	}
	if !c.isFloat() {
		return nil, fmt.Errorf("column %q is not float64: %w", name, ErrKindMismatch)
	}
	return c, nil
}

// Float64s returns a copy of the named float64 column.
func (f *Frame) Float64s(name string) ([]float64, error) {
	c, err := f.floatColumn(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(c.floats))
	copy(out, c.floats)
	return out, nil
}

// Strings returns a copy of the named string column.
func (f *Frame) Strings(name string) ([]string, error) {
	c, ok := f.cols[name]
	if !ok {
		return nil, fmt.Errorf("column %q: %w", name, ErrMissingColumn)
	}
	if c.isFloat() {
		return nil, fmt.Errorf("column %q is not string: %w", name, ErrKindMismatch)
	}
	out := make([]string, len(c.strs))
	copy(out, c.strs)
	return out, nil
}

// Floats extracts the named float columns into a freshly allocated
// (NumRows × len(names)) dense matrix, in the order given. A frame with
// zero rows yields an empty matrix (Dims() == 0, 0) rather than an error.
func (f *Frame) Floats(names ...string) (*mat.Dense, error) {
	cols := make([]*column, len(names))
	for i, name := range names {
		c, err := f.floatColumn(name)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	if f.rows == 0 || len(names) == 0 {
		return &mat.Dense{}, nil
	}
	m := mat.NewDense(f.rows, len(names), nil)
	for j, c := range cols {
		for i, v := range c.floats {
			m.Set(i, j, v)
		}
	}
	return m, nil
}

// WithFloats returns a new frame in which the named columns are replaced
// by the columns of m (one matrix column per name, in order). Every other
// column is shared with the receiver unchanged, and the column order is
// preserved. The matrix row count must equal NumRows; for an empty frame
// an empty matrix is accepted.
func (f *Frame) WithFloats(m mat.Matrix, names ...string) (*Frame, error) {
	for _, name := range names {
		if _, err := f.floatColumn(name); err != nil {
			return nil, err
		}
	}
	r, c := 0, 0
	if m != nil {
		r, c = m.Dims()
	}
	if r != f.rows || (r > 0 && c != len(names)) {
		return nil, fmt.Errorf("write-back of %v: matrix is %dx%d, frame has %d rows: %w",
			names, r, c, f.rows, ErrLengthMismatch)
	}

	replaced := make(map[string]int, len(names))
	for j, name := range names {
		replaced[name] = j
	}
	out := &Frame{
		names: append([]string(nil), f.names...),
		cols:  make(map[string]*column, len(f.cols)),
		rows:  f.rows,
	}
	for name, col := range f.cols {
		j, ok := replaced[name]
		if !ok {
			out.cols[name] = col
			continue
		}
		vs := make([]float64, f.rows)
		for i := 0; i < f.rows; i++ {
			vs[i] = m.At(i, j)
		}
		out.cols[name] = &column{name: name, floats: vs}
	}
	return out, nil
}

// Equal reports whether two frames have identical column names, order,
// kinds and values. Float comparison is exact; use EqualApprox for a
// tolerance-based comparison.
func Equal(a, b *Frame) bool {
	return EqualApprox(a, b, 0)
}

// EqualApprox is Equal with an absolute tolerance on float columns.
func EqualApprox(a, b *Frame, tol float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.rows != b.rows || len(a.names) != len(b.names) {
		return false
	}
	for i, name := range a.names {
		if b.names[i] != name {
			return false
		}
		ca, cb := a.cols[name], b.cols[name]
		if ca.isFloat() != cb.isFloat() {
			return false
		}
		if ca.isFloat() {
			for k := range ca.floats {
				d := ca.floats[k] - cb.floats[k]
				if d < -tol || d > tol {
					return false
				}
			}
			continue
		}
		for k := range ca.strs {
			if ca.strs[k] != cb.strs[k] {
				return false
			}
		}
	}
	return true
}
