package collide

import (
	"math"

	"github.com/akmonengine/impulse/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// PolygonPolygon tests two convex polygons with the separating axis theorem,
// then clips the incident face against the reference face to build the contacts.
func PolygonPolygon(a, b *actor.RigidBody) Contact {
	polygonA := a.Shape.(*actor.Polygon)
	polygonB := b.Shape.(*actor.Polygon)

	// Check for separating axis with A's face planes
	faceA, penetrationA := findAxisLeastPenetration(a, polygonA, b, polygonB)
	if penetrationA >= 0 {
		return Contact{}
	}

	// Check for separating axis with B's face planes
	faceB, penetrationB := findAxisLeastPenetration(b, polygonB, a, polygonA)
	if penetrationB >= 0 {
		return Contact{}
	}

	refBody, refPoly, incBody, incPoly := a, polygonA, b, polygonB
	referenceIndex := faceA
	flip := false // always point from a to b

	if !biasGreaterThan(penetrationA, penetrationB) {
		refBody, refPoly, incBody, incPoly = b, polygonB, a, polygonA
		referenceIndex = faceB
		flip = true
	}

	incidentFace := findIncidentFace(refPoly, incBody, incPoly, referenceIndex)

	// Reference face in world space
	v1 := refPoly.WorldVertex(referenceIndex, refBody.Transform.Position)
	v2 := refPoly.WorldVertex((referenceIndex+1)%len(refPoly.Vertices), refBody.Transform.Position)

	sidePlaneNormal := v2.Sub(v1).Normalize()
	refFaceNormal := mgl64.Vec2{sidePlaneNormal.Y(), -sidePlaneNormal.X()}

	refC := refFaceNormal.Dot(v1)
	negSide := -sidePlaneNormal.Dot(v1)
	posSide := sidePlaneNormal.Dot(v2)

	// Floating point error can leave fewer than two points
	var count int
	if incidentFace, count = clip(sidePlaneNormal.Mul(-1), negSide, incidentFace); count < 2 {
		return Contact{}
	}
	if incidentFace, count = clip(sidePlaneNormal, posSide, incidentFace); count < 2 {
		return Contact{}
	}

	contact := Contact{Normal: refFaceNormal}
	if flip {
		contact.Normal = refFaceNormal.Mul(-1)
	}

	// Keep points behind the reference face
	for _, point := range incidentFace {
		separation := refFaceNormal.Dot(point) - refC
		if separation <= 0 {
			contact.Points[contact.Count] = point
			contact.Penetration += -separation
			contact.Count++
		}
	}

	if contact.Count > 0 {
		contact.Penetration /= float64(contact.Count)
	}

	return contact
}

// findAxisLeastPenetration returns the face of a whose plane is penetrated the least
// by b, with that signed distance (non-negative means separated).
func findAxisLeastPenetration(a *actor.RigidBody, polygonA *actor.Polygon, b *actor.RigidBody, polygonB *actor.Polygon) (int, float64) {
	bestIndex := 0
	bestDistance := -math.MaxFloat64

	buT := polygonB.Orient.Transpose()

	for i, n := range polygonA.Normals {
		// Face normal into B's model space
		normal := buT.Mul2x1(polygonA.Orient.Mul2x1(n))

		support := polygonB.Support(normal.Mul(-1))

		// Face vertex into B's model space
		vertex := buT.Mul2x1(polygonA.WorldVertex(i, a.Transform.Position).Sub(b.Transform.Position))

		distance := normal.Dot(support.Sub(vertex))
		if distance > bestDistance {
			bestDistance = distance
			bestIndex = i
		}
	}

	return bestIndex, bestDistance
}

// findIncidentFace returns, in world space, the face of the incident polygon most
// anti-parallel to the reference face.
func findIncidentFace(refPoly *actor.Polygon, incBody *actor.RigidBody, incPoly *actor.Polygon, referenceIndex int) [2]mgl64.Vec2 {
	// Reference normal in the incident polygon's model space
	refNormal := incPoly.Orient.Transpose().Mul2x1(refPoly.Orient.Mul2x1(refPoly.Normals[referenceIndex]))

	incidentIndex := 0
	minDot := math.MaxFloat64
	for i, n := range incPoly.Normals {
		if dot := refNormal.Dot(n); dot < minDot {
			minDot = dot
			incidentIndex = i
		}
	}

	return [2]mgl64.Vec2{
		incPoly.WorldVertex(incidentIndex, incBody.Transform.Position),
		incPoly.WorldVertex((incidentIndex+1)%len(incPoly.Vertices), incBody.Transform.Position),
	}
}

// clip keeps the part of face behind the plane normal·x = c and returns the
// number of points left.
func clip(normal mgl64.Vec2, c float64, face [2]mgl64.Vec2) ([2]mgl64.Vec2, int) {
	out := face
	sp := 0

	distanceA := normal.Dot(face[0]) - c
	distanceB := normal.Dot(face[1]) - c

	if distanceA <= 0 {
		out[sp] = face[0]
		sp++
	}
	if distanceB <= 0 {
		out[sp] = face[1]
		sp++
	}

	// Endpoints on different sides of the plane: push the intersection point
	if distanceA*distanceB < 0 {
		if sp != 1 {
			panic("collide: clipping a segment produced more than two points")
		}

		alpha := distanceA / (distanceA - distanceB)
		out[sp] = face[0].Add(face[1].Sub(face[0]).Mul(alpha))
		sp++
	}

	return out, sp
}

// biasGreaterThan compares two penetrations with a tolerance in favour of a
func biasGreaterThan(a, b float64) bool {
	const (
		relative = 0.95
		absolute = 0.01
	)
	return a >= b*relative+a*absolute
}
