package geom

// Mask is a dense M×N boolean matrix: one row per cuboid, one column per
// point, true where the point is interior to the cuboid.
type Mask struct {
	rows, cols int
	bits       []bool
}

// NewMask returns an all-false mask with the given shape. Either
// dimension may be zero.
func NewMask(rows, cols int) *Mask {
	return &Mask{rows: rows, cols: cols, bits: make([]bool, rows*cols)}
}

// Dims returns the (cuboids, points) shape of the mask.
func (m *Mask) Dims() (rows, cols int) { return m.rows, m.cols }

// At reports whether point j is interior to cuboid i.
func (m *Mask) At(i, j int) bool { return m.bits[i*m.cols+j] }

// Set records whether point j is interior to cuboid i.
func (m *Mask) Set(i, j int, v bool) { m.bits[i*m.cols+j] = v }

// RowIndices returns the point indices marked interior to cuboid i, in
// ascending order. An empty row yields a nil slice.
func (m *Mask) RowIndices(i int) []int {
	var idx []int
	base := i * m.cols
	for j := 0; j < m.cols; j++ {
		if m.bits[base+j] {
			idx = append(idx, j)
		}
	}
	return idx
}

// CountRow returns the number of interior points for cuboid i.
func (m *Mask) CountRow(i int) int {
	count := 0
	base := i * m.cols
	for j := 0; j < m.cols; j++ {
		if m.bits[base+j] {
			count++
		}
	}
	return count
}
