package geom

import "gonum.org/v1/gonum/mat"

// Cuboid row layout for CuboidsToPolygons.
const (
	cuboidCols   = 10 // tx, ty, tz, length, width, height, qw, qx, qy, qz
	polygonCols  = 24 // 8 vertices × xyz
	quatOffset   = 6
	extentOffset = 3
)

// unitCorners enumerates the corners of the axis-aligned unit cube in a
// fixed order. Corner 0 is adjacent to corners 1 (y edge), 3 (z edge)
// and 4 (x edge); the membership test relies on that adjacency.
var unitCorners = [8][3]float64{
	{+1, +1, +1},
	{+1, -1, +1},
	{+1, -1, -1},
	{+1, +1, -1},
	{-1, +1, +1},
	{-1, -1, +1},
	{-1, -1, -1},
	{-1, +1, -1},
}

// CuboidsToPolygons expands (M×10) cuboid rows into (M×24) vertex rows:
// eight xyz corners per cuboid, obtained by scaling the unit-cube corners
// by half the extent, rotating by the orientation quaternion and
// translating by the box centre. The vertex ordering is fixed but
// otherwise carries no meaning; it is deterministic in pose and extent.
func CuboidsToPolygons(cuboids mat.Matrix) *mat.Dense {
	m, _ := cuboids.Dims()
	if m == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(m, polygonCols, nil)
	for i := 0; i < m; i++ {
		tx, ty, tz := cuboids.At(i, 0), cuboids.At(i, 1), cuboids.At(i, 2)
		hl := cuboids.At(i, extentOffset) / 2
		hw := cuboids.At(i, extentOffset+1) / 2
		hh := cuboids.At(i, extentOffset+2) / 2
		q := quatFromRow(cuboids, i, quatOffset)
		for v, corner := range unitCorners {
			x, y, z := rotateVec(q, corner[0]*hl, corner[1]*hw, corner[2]*hh)
			out.Set(i, 3*v, x+tx)
			out.Set(i, 3*v+1, y+ty)
			out.Set(i, 3*v+2, z+tz)
		}
	}
	return out
}

// membershipEps absorbs floating-point error for points that sit exactly
// on a cuboid face, relative to the squared edge length.
const membershipEps = 1e-9

// ComputeInteriorPointsMask tests every point against every cuboid
// polygon. points is (N×3) and polygons is (M×24) as produced by
// CuboidsToPolygons; the result has one row per cuboid and one column
// per point, true where the point lies inside (or on the boundary of)
// the oriented box. The test is a pure function of the geometry and is
// agnostic to point and cuboid ordering.
func ComputeInteriorPointsMask(points, polygons mat.Matrix) *Mask {
	n, _ := points.Dims()
	m, _ := polygons.Dims()
	mask := NewMask(m, n)
	if m == 0 || n == 0 {
		return mask
	}
	for i := 0; i < m; i++ {
		// Reference corner and its three edge vectors. These are mutually
		// orthogonal for a rigid box, so the interior condition is three
		// independent projection range checks: 0 ≤ (p−v0)·e ≤ e·e.
		var v [8][3]float64
		for k := 0; k < 8; k++ {
			v[k] = [3]float64{polygons.At(i, 3*k), polygons.At(i, 3*k+1), polygons.At(i, 3*k+2)}
		}
		v0 := v[0]
		edges := [3][3]float64{
			sub3(v[4], v0), // x extent
			sub3(v[1], v0), // y extent
			sub3(v[3], v0), // z extent
		}
		var sq [3]float64
		for e := range edges {
			sq[e] = dot3(edges[e], edges[e])
		}
		for j := 0; j < n; j++ {
			d := [3]float64{
				points.At(j, 0) - v0[0],
				points.At(j, 1) - v0[1],
				points.At(j, 2) - v0[2],
			}
			inside := true
			for e := range edges {
				proj := dot3(d, edges[e])
				eps := membershipEps * (1 + sq[e])
				if proj < -eps || proj > sq[e]+eps {
					inside = false
					break
				}
			}
			mask.Set(i, j, inside)
		}
	}
	return mask
}

func sub3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot3(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
