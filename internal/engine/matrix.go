package engine

// Matrix2D is an affine transform stored as [a, b, c, d, e, f]:
//
//	| a  c  e |
//	| b  d  f |
//	| 0  0  1 |
//
// The viewport only builds axis-aligned matrices (scale, then translate),
// so b and c stay zero in practice.
type Matrix2D [6]float64

var identity = Matrix2D{1, 0, 0, 1, 0, 0}

// ScaleTranslate returns the matrix that scales by (sx, sy) and then
// translates by (tx, ty).
func ScaleTranslate(sx, sy, tx, ty float64) Matrix2D {
	return Matrix2D{sx, 0, 0, sy, tx, ty}
}

// TransformPoint maps a point.
func (m Matrix2D) TransformPoint(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// TransformVector maps a delta; translation does not apply.
func (m Matrix2D) TransformVector(dx, dy float64) (float64, float64) {
	return m[0]*dx + m[2]*dy, m[1]*dx + m[3]*dy
}

// TransformRect maps r by its two opposite corners and normalizes the
// result.
func (m Matrix2D) TransformRect(r Rect) Rect {
	x0, y0 := m.TransformPoint(r.X, r.Y)
	x1, y1 := m.TransformPoint(r.Right(), r.Bottom())
	return RectFromPoints(x0, y0, x1, y1)
}

// Invert returns the inverse of m. A singular matrix, such as the one of a
// zero-sized viewport, inverts to the identity.
func (m Matrix2D) Invert() Matrix2D {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 {
		return identity
	}
	inv := 1 / det
	return Matrix2D{
		m[3] * inv,
		-m[1] * inv,
		-m[2] * inv,
		m[0] * inv,
		(m[2]*m[5] - m[3]*m[4]) * inv,
		(m[1]*m[4] - m[0]*m[5]) * inv,
	}
}
