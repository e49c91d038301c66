// Package collide implements the narrow phase: exact contact generation between
// pairs of circles and convex polygons. Every routine is a pure function of the
// two bodies; nothing is cached between calls.
package collide

import (
	"github.com/akmonengine/impulse/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// MaxContacts is the largest number of contact points a pair can produce
const MaxContacts = 2

// Contact is the geometry of one touching pair
type Contact struct {
	// Normal is a unit vector pointing from body A toward body B
	Normal      mgl64.Vec2
	Penetration float64
	// Points holds Count world-space contact points
	Points [MaxContacts]mgl64.Vec2
	Count  int
}

// Touching reports whether at least one contact point was found
func (c Contact) Touching() bool {
	return c.Count > 0
}

// Collide dispatches on the shape pair. The normal of the result points from a to b.
func Collide(a, b *actor.RigidBody) Contact {
	switch a.Shape.(type) {
	case *actor.Circle:
		switch b.Shape.(type) {
		case *actor.Circle:
			return CircleCircle(a, b)
		case *actor.Polygon:
			return CirclePolygon(a, b)
		}
	case *actor.Polygon:
		switch b.Shape.(type) {
		case *actor.Circle:
			return CirclePolygon(a, b)
		case *actor.Polygon:
			return PolygonPolygon(a, b)
		}
	}

	panic("collide: unsupported shape pair " + a.Shape.Type().String() + "/" + b.Shape.Type().String())
}
