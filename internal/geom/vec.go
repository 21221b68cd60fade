// Package geom provides the small amount of 3-D vector and matrix math
// used by the navigation camera and the path animator.
//
// Vectors and matrices are the float32 types from golang.org/x/image/math/f32
// so they can be handed to renderers without conversion. Matrices are row
// major: m[3*r+c] is row r, column c.
package geom

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Vec3 is a 3-component float32 vector.
type Vec3 = f32.Vec3

// Mat3 is a row-major 3x3 float32 matrix.
type Mat3 = f32.Mat3

// V returns the vector (x, y, z).
func V(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Add returns a+b.
func Add(a, b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a-b.
func Sub(a, b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale returns v*s.
func Scale(v Vec3, s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Lerp returns a + (b-a)*f.
func Lerp(a, b Vec3, f float32) Vec3 {
	return Vec3{a[0] + (b[0]-a[0])*f, a[1] + (b[1]-a[1])*f, a[2] + (b[2]-a[2])*f}
}

// Dot returns the dot product of a and b.
func Dot(a, b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross returns the cross product a×b.
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Len returns the Euclidean length of v.
func Len(v Vec3) float32 {
	return math32.Sqrt(Dot(v, v))
}

// Dist returns the distance between a and b.
func Dist(a, b Vec3) float32 {
	return Len(Sub(a, b))
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func Normalize(v Vec3) Vec3 {
	l := Len(v)
	if l == 0 {
		return v
	}
	return Scale(v, 1/l)
}

// Angle returns the angle between a and b in radians, in [0, π].
// Returns 0 if either vector has zero length.
func Angle(a, b Vec3) float32 {
	la, lb := Len(a), Len(b)
	if la == 0 || lb == 0 {
		return 0
	}
	c := Dot(a, b) / (la * lb)
	switch {
	case c > 1:
		c = 1
	case c < -1:
		c = -1
	}
	return math32.Acos(c)
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
