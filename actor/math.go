package actor

import "github.com/go-gl/mathgl/mgl64"

// Epsilon is the tolerance used by geometric predicates (inside tests, resting contacts, edge lengths).
const Epsilon = 1e-4

// Cross returns the scalar z component of the 3D cross product of two planar vectors.
func Cross(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// CrossSV returns s × v, the velocity of the point v on a body spinning at s rad/s.
func CrossSV(s float64, v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-s * v.Y(), s * v.X()}
}

// CrossVS returns v × s.
func CrossVS(v mgl64.Vec2, s float64) mgl64.Vec2 {
	return mgl64.Vec2{s * v.Y(), -s * v.X()}
}
