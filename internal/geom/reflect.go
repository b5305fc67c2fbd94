package geom

import "gonum.org/v1/gonum/mat"

// The reflection primitives mirror rigid poses across a coordinate axis
// of the sensor frame. Reflecting "across the x-axis" mirrors the scene
// through the xz-plane (y → −y); "across the y-axis" mirrors through the
// yz-plane (x → −x).
//
// For orientations, conjugating a rotation R by the mirror M gives the
// mirrored rigid rotation M·R·M, which is again a proper rotation. In
// quaternion terms:
//
//	across x (y → −y):  (w, x, y, z) → (w, −x, y, −z)
//	across y (x → −x):  (w, x, y, z) → (w, x, −y, −z)
//
// Both are component sign flips, so unit norm is preserved exactly.

// ReflectTranslationX mirrors (M×3) translation vectors across the
// x-axis: the y component is negated, x and z are untouched.
func ReflectTranslationX(t mat.Matrix) *mat.Dense {
	return scaleColumns(t, 1, -1, 1)
}

// ReflectTranslationY mirrors (M×3) translation vectors across the
// y-axis: the x component is negated, y and z are untouched.
func ReflectTranslationY(t mat.Matrix) *mat.Dense {
	return scaleColumns(t, -1, 1, 1)
}

// ReflectOrientationX mirrors (M×4) scalar-first unit quaternions across
// the x-axis. The result is a valid unit quaternion per row.
func ReflectOrientationX(q mat.Matrix) *mat.Dense {
	return scaleColumns(q, 1, -1, 1, -1)
}

// ReflectOrientationY mirrors (M×4) scalar-first unit quaternions across
// the y-axis. The result is a valid unit quaternion per row.
func ReflectOrientationY(q mat.Matrix) *mat.Dense {
	return scaleColumns(q, 1, 1, -1, -1)
}

// scaleColumns returns a copy of m with column j multiplied by signs[j].
// An empty input yields an empty matrix.
func scaleColumns(m mat.Matrix, signs ...float64) *mat.Dense {
	r, c := m.Dims()
	if r == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, m.At(i, j)*signs[j])
		}
	}
	return out
}
