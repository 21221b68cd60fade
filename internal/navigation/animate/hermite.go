package animate

import "github.com/dshills/molnav/internal/geom"

// pathTension scales the Hermite tangents; 8 would be Catmull-Rom.
const pathTension = 7

// hermite writes n+1 points of the cubic Hermite curve from p1 to p2 into
// list starting at index0. The tangent at p1 comes from p0 and p2, the
// tangent at p2 from p1 and p3. The extra last point is the first step of
// the following segment (p2 to p3, tangent there from p4), so consecutive
// segments agree where they overlap.
func hermite(tension float32, p0, p1, p2, p3, p4 geom.Vec3, list []geom.Vec3, index0, n int) {
	nPoints := n + 1
	fn := float32(n - 1)
	a, b := p1, p2
	t1 := geom.Scale(geom.Sub(p2, p0), tension/8)
	t2 := geom.Scale(geom.Sub(p3, p1), tension/8)
	t3 := geom.Scale(geom.Sub(p4, p2), tension/8)

	for i := 0; i < nPoints; i++ {
		s := float32(i) / fn
		if i == nPoints-1 {
			a, b = b, p3
			t1, t2 = t2, t3
			s--
		}
		s2 := s * s
		s3 := s2 * s
		h1 := 2*s3 - 3*s2 + 1
		h2 := -2*s3 + 3*s2
		h3 := s3 - 2*s2 + s
		h4 := s3 - s2
		list[index0+i] = geom.Add(
			geom.Add(geom.Scale(a, h1), geom.Scale(b, h2)),
			geom.Add(geom.Scale(t1, h3), geom.Scale(t2, h4)),
		)
	}
}

// spline samples the path through pts with per segments points each and
// returns segments*per+2 points; the last one extends past the final
// waypoint and is used only as a look-ahead.
func spline(pts []geom.Vec3, per int) []geom.Vec3 {
	nSeg := len(pts) - 1
	out := make([]geom.Vec3, nSeg*per+2)
	for i := 0; i < nSeg; i++ {
		segment(pts, i, per, out[i*per:])
	}
	return out
}

// segment writes the per+2 samples of segment i of the path through pts
// into out. The last two overlap the first two of segment i+1.
func segment(pts []geom.Vec3, i, per int, out []geom.Vec3) {
	nSeg := len(pts) - 1
	prev := max(i-1, 0)
	next := min(i+1, nSeg)
	next2 := min(i+2, nSeg)
	next3 := min(i+3, nSeg)
	hermite(pathTension, pts[prev], pts[i], pts[next], pts[next2], pts[next3], out, 0, per+1)
}
