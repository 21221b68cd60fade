package geom

import "github.com/chewxy/math32"

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * 180 / math32.Pi
}

// Identity returns the identity matrix.
func Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// RotX returns a rotation of rad radians about the X axis.
func RotX(rad float32) Mat3 {
	s, c := math32.Sincos(rad)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a rotation of rad radians about the Y axis.
func RotY(rad float32) Mat3 {
	s, c := math32.Sincos(rad)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotZ returns a rotation of rad radians about the Z axis.
func RotZ(rad float32) Mat3 {
	s, c := math32.Sincos(rad)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// AxisAngle returns a rotation of rad radians about axis.
// A zero axis yields the identity.
func AxisAngle(axis Vec3, rad float32) Mat3 {
	if Len(axis) == 0 {
		return Identity()
	}
	a := Normalize(axis)
	x, y, z := a[0], a[1], a[2]
	s, c := math32.Sincos(rad)
	t := 1 - c
	return Mat3{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c,
	}
}

// Mul returns the matrix product a·b.
func Mul(a, b Mat3) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[3*r+c] = a[3*r]*b[c] + a[3*r+1]*b[3+c] + a[3*r+2]*b[6+c]
		}
	}
	return m
}

// MulVec returns m·v.
func MulVec(m Mat3, v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Transpose returns mᵀ, which for a rotation is its inverse.
func Transpose(m Mat3) Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// ToAxisAngle decomposes a rotation matrix into a unit axis and an angle
// in radians. The identity yields axis (0, 0, 1) and angle 0.
func ToAxisAngle(m Mat3) (Vec3, float32) {
	cos := (m[0] + m[4] + m[8] - 1) / 2
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	angle := math32.Acos(cos)
	if angle < 1e-6 {
		return Vec3{0, 0, 1}, 0
	}
	axis := Vec3{m[7] - m[5], m[2] - m[6], m[3] - m[1]}
	if Len(axis) < 1e-6 {
		// angle ≈ π: take the largest diagonal column of (m + I)/2
		xx := (m[0] + 1) / 2
		yy := (m[4] + 1) / 2
		zz := (m[8] + 1) / 2
		switch {
		case xx >= yy && xx >= zz:
			x := math32.Sqrt(xx)
			axis = Vec3{x, m[1] / (2 * x), m[2] / (2 * x)}
		case yy >= zz:
			y := math32.Sqrt(yy)
			axis = Vec3{m[1] / (2 * y), y, m[5] / (2 * y)}
		default:
			z := math32.Sqrt(zz)
			axis = Vec3{m[2] / (2 * z), m[5] / (2 * z), z}
		}
	}
	return Normalize(axis), angle
}
