package collide

import (
	"math"

	"github.com/akmonengine/impulse/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// CircleCircle tests two circle bodies
func CircleCircle(a, b *actor.RigidBody) Contact {
	radiusA := a.Shape.(*actor.Circle).Radius
	radiusB := b.Shape.(*actor.Circle).Radius

	normal := b.Transform.Position.Sub(a.Transform.Position)
	distSqr := normal.LenSqr()
	radius := radiusA + radiusB

	if distSqr >= radius*radius {
		return Contact{}
	}

	contact := Contact{Count: 1}

	distance := math.Sqrt(distSqr)
	if distance == 0 {
		// coincident centers: any direction separates them
		contact.Penetration = radiusA
		contact.Normal = mgl64.Vec2{1, 0}
		contact.Points[0] = a.Transform.Position
		return contact
	}

	contact.Penetration = radius - distance
	contact.Normal = normal.Mul(1.0 / distance)
	contact.Points[0] = contact.Normal.Mul(radiusB).Add(a.Transform.Position)

	return contact
}

// CirclePolygon tests a circle against a polygon, in either order.
// The polygon case is always solved circle first; when the polygon is a the
// normal is flipped so it still points from a to b.
func CirclePolygon(a, b *actor.RigidBody) Contact {
	circleFirst := a.Shape.Type() == actor.ShapeTypeCircle

	circleBody, polygonBody := a, b
	if !circleFirst {
		circleBody, polygonBody = b, a
	}

	contact := circleToPolygon(circleBody, polygonBody)
	if !circleFirst {
		contact.Normal = contact.Normal.Mul(-1)
	}

	return contact
}

func circleToPolygon(circleBody, polygonBody *actor.RigidBody) Contact {
	radius := circleBody.Shape.(*actor.Circle).Radius
	polygon := polygonBody.Shape.(*actor.Polygon)
	circlePos := circleBody.Transform.Position

	// Transform circle center to polygon model space
	center := polygon.Orient.Transpose().Mul2x1(circlePos.Sub(polygonBody.Transform.Position))

	// Find edge with minimum penetration
	separation := -math.MaxFloat64
	faceNormal := 0
	for i, n := range polygon.Normals {
		s := n.Dot(center.Sub(polygon.Vertices[i]))
		if s > radius {
			return Contact{}
		}

		if s > separation {
			separation = s
			faceNormal = i
		}
	}

	v1 := polygon.Vertices[faceNormal]
	v2 := polygon.Vertices[(faceNormal+1)%len(polygon.Vertices)]

	// Center within polygon
	if separation < actor.Epsilon {
		normal := polygon.Orient.Mul2x1(polygon.Normals[faceNormal]).Mul(-1)

		contact := Contact{Count: 1, Normal: normal, Penetration: radius}
		contact.Points[0] = normal.Mul(radius).Add(circlePos)
		return contact
	}

	contact := Contact{Penetration: radius - separation}

	// Voronoi region of the edge holding the center
	dot1 := center.Sub(v1).Dot(v2.Sub(v1))
	dot2 := center.Sub(v2).Dot(v1.Sub(v2))

	switch {
	case dot1 <= 0: // closest to v1
		if center.Sub(v1).LenSqr() > radius*radius {
			return Contact{}
		}

		contact.Normal = polygon.Orient.Mul2x1(v1.Sub(center)).Normalize()
		contact.Points[0] = polygonBody.Transform.Position.Add(polygon.Orient.Mul2x1(v1))

	case dot2 <= 0: // closest to v2
		if center.Sub(v2).LenSqr() > radius*radius {
			return Contact{}
		}

		contact.Normal = polygon.Orient.Mul2x1(v2.Sub(center)).Normalize()
		contact.Points[0] = polygonBody.Transform.Position.Add(polygon.Orient.Mul2x1(v2))

	default: // closest to face
		n := polygon.Normals[faceNormal]
		if center.Sub(v1).Dot(n) > radius {
			return Contact{}
		}

		contact.Normal = polygon.Orient.Mul2x1(n).Mul(-1)
		contact.Points[0] = contact.Normal.Mul(radius).Add(circlePos)
	}

	contact.Count = 1
	return contact
}
