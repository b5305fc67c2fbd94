// Package geom provides the geometric primitives consumed by the scene
// augmentation code: axis reflections of rigid poses, cuboid-to-polygon
// expansion, and the oriented-box interior membership test.
//
// Conventions: quaternions are scalar-first (w, x, y, z) and unit-norm;
// cuboid rows are laid out [tx, ty, tz, length, width, height, qw, qx,
// qy, qz] in metres, matching the annotation column ordering.
package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// quatFromRow reads a scalar-first (w,x,y,z) quaternion from row i of a
// matrix whose columns begin at offset.
func quatFromRow(m mat.Matrix, i, offset int) quat.Number {
	return quat.Number{
		Real: m.At(i, offset),
		Imag: m.At(i, offset+1),
		Jmag: m.At(i, offset+2),
		Kmag: m.At(i, offset+3),
	}
}

// rotateVec rotates the vector v by the unit quaternion q (q v q*).
func rotateVec(q quat.Number, x, y, z float64) (float64, float64, float64) {
	p := quat.Number{Imag: x, Jmag: y, Kmag: z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r.Imag, r.Jmag, r.Kmag
}

// QuatNorm returns the norm of the scalar-first quaternion in row i of a
// (M×4) matrix. Exposed for validity checks in callers and tests.
func QuatNorm(m mat.Matrix, i int) float64 {
	w, x, y, z := m.At(i, 0), m.At(i, 1), m.At(i, 2), m.At(i, 3)
	return math.Sqrt(w*w + x*x + y*y + z*z)
}
