package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a pose in 2D space
type Transform struct {
	Position    mgl64.Vec2
	Orientation float64 // radians
}

// NewTransform creates a transform at the given position with no rotation
func NewTransform(position mgl64.Vec2) Transform {
	return Transform{
		Position: position,
	}
}

// Rotation returns the orientation as a rotation matrix
func (t Transform) Rotation() mgl64.Mat2 {
	return mgl64.Rotate2D(t.Orientation)
}

// ToWorld maps a point from the local frame into world space
func (t Transform) ToWorld(local mgl64.Vec2) mgl64.Vec2 {
	return t.Rotation().Mul2x1(local).Add(t.Position)
}
