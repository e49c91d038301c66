package actor

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrInvalidRadius  = errors.New("actor: circle radius must be positive")
	ErrTooFewVertices = errors.New("actor: polygon needs at least 3 vertices")
	ErrDegenerateEdge = errors.New("actor: polygon edge has near-zero length")
	ErrZeroArea       = errors.New("actor: polygon has zero area")
)

// ShapeType represents the type of collision shape
type ShapeType int

const (
	ShapeTypeCircle ShapeType = iota
	ShapeTypePolygon
)

func (t ShapeType) String() string {
	switch t {
	case ShapeTypeCircle:
		return "circle"
	case ShapeTypePolygon:
		return "polygon"
	}
	return fmt.Sprintf("ShapeType(%d)", int(t))
}

// Shape is the closed set of collision shapes: *Circle and *Polygon.
// Narrow phase dispatches on the concrete type, so no other implementation exists.
type Shape interface {
	Type() ShapeType
	// ComputeMass returns the mass data for the shape given a density.
	// It never mutates the shape.
	ComputeMass(density float64) MassData
	// ComputeAABB calculates the axis-aligned bounding box at the given transform
	ComputeAABB(transform Transform) AABB

	setOrientation(radians float64)
	clone() Shape
}

// Circle represents a circular collision shape centered on the body position
type Circle struct {
	Radius float64
}

// NewCircle creates a circle, rejecting non-positive radii
func NewCircle(radius float64) (*Circle, error) {
	if !(radius > 0) || math.IsInf(radius, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}

	return &Circle{Radius: radius}, nil
}

// MustCircle is like NewCircle but panics on invalid input
func MustCircle(radius float64) *Circle {
	c, err := NewCircle(radius)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Circle) Type() ShapeType {
	return ShapeTypeCircle
}

// ComputeMass: m = π·r²·ρ, I = m·r²
func (c *Circle) ComputeMass(density float64) MassData {
	mass := math.Pi * c.Radius * c.Radius * density

	return NewMassData(mass, mass*c.Radius*c.Radius)
}

func (c *Circle) ComputeAABB(transform Transform) AABB {
	radiusVec := mgl64.Vec2{c.Radius, c.Radius}

	return AABB{
		Min: transform.Position.Sub(radiusVec),
		Max: transform.Position.Add(radiusVec),
	}
}

func (c *Circle) setOrientation(float64) {}

func (c *Circle) clone() Shape {
	circle := *c
	return &circle
}

// Polygon represents a convex polygon collision shape.
// Vertices are counter-clockwise and expressed in the local frame, whose origin
// is the center of mass once the polygon has been built by NewPolygon.
// Normals[i] is the outward unit normal of the edge Vertices[i] -> Vertices[i+1].
type Polygon struct {
	Vertices []mgl64.Vec2
	Normals  []mgl64.Vec2
	// Orient rotates local vertices into world orientation; it follows the owning body.
	Orient mgl64.Mat2
}

// NewPolygon builds a polygon from counter-clockwise convex vertices.
// The vertices are copied, their edge normals computed, and the copy is
// re-centered once so that the local origin is the center of mass.
// Convexity and winding are not validated.
func NewPolygon(vertices []mgl64.Vec2) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewVertices, len(vertices))
	}

	p := &Polygon{
		Vertices: append([]mgl64.Vec2(nil), vertices...),
		Orient:   mgl64.Ident2(),
	}
	if err := p.computeNormals(); err != nil {
		return nil, err
	}

	if area, _, _ := p.moments(); math.Abs(area) <= Epsilon*Epsilon {
		return nil, ErrZeroArea
	}
	p.Recenter()

	return p, nil
}

// MustPolygon is like NewPolygon but panics on invalid geometry
func MustPolygon(vertices []mgl64.Vec2) *Polygon {
	p, err := NewPolygon(vertices)
	if err != nil {
		panic(err)
	}
	return p
}

// NewBox creates a rectangle centered on its origin
func NewBox(halfWidth, halfHeight float64) (*Polygon, error) {
	return NewPolygon([]mgl64.Vec2{
		{-halfWidth, -halfHeight},
		{halfWidth, -halfHeight},
		{halfWidth, halfHeight},
		{-halfWidth, halfHeight},
	})
}

// NewRegularPolygon creates a polygon with the given number of sides inscribed in a circle of the given radius
func NewRegularPolygon(radius float64, sides int) (*Polygon, error) {
	if sides < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewVertices, sides)
	}

	vertices := make([]mgl64.Vec2, sides)
	for i := range vertices {
		angle := 2 * math.Pi * float64(i) / float64(sides)
		vertices[i] = mgl64.Vec2{radius * math.Cos(angle), radius * math.Sin(angle)}
	}

	return NewPolygon(vertices)
}

func (p *Polygon) Type() ShapeType {
	return ShapeTypePolygon
}

// computeNormals derives one outward normal per edge, wrapping around
func (p *Polygon) computeNormals() error {
	p.Normals = make([]mgl64.Vec2, len(p.Vertices))

	for i, v1 := range p.Vertices {
		v2 := p.Vertices[(i+1)%len(p.Vertices)]
		face := v2.Sub(v1)
		if face.LenSqr() <= Epsilon*Epsilon {
			return fmt.Errorf("%w: edge %d", ErrDegenerateEdge, i)
		}

		p.Normals[i] = mgl64.Vec2{face.Y(), -face.X()}.Normalize()
	}

	return nil
}

// moments triangulates the polygon from its local origin and returns the signed
// area, the centroid and the second moment of area about the origin.
func (p *Polygon) moments() (area float64, centroid mgl64.Vec2, inertia float64) {
	const inv3 = 1.0 / 3.0

	for i, p1 := range p.Vertices {
		p2 := p.Vertices[(i+1)%len(p.Vertices)]

		d := Cross(p1, p2)
		triangleArea := 0.5 * d
		area += triangleArea

		centroid = centroid.Add(p1.Add(p2).Mul(triangleArea * inv3))

		intX2 := p1.X()*p1.X() + p2.X()*p1.X() + p2.X()*p2.X()
		intY2 := p1.Y()*p1.Y() + p2.Y()*p1.Y() + p2.Y()*p2.Y()
		inertia += (0.25 * inv3 * d) * (intX2 + intY2)
	}

	if area != 0 {
		centroid = centroid.Mul(1.0 / area)
	}

	return area, centroid, inertia
}

// Centroid returns the center of mass in the local frame
func (p *Polygon) Centroid() mgl64.Vec2 {
	_, c, _ := p.moments()
	return c
}

// Recenter translates the vertices so that the centroid lies on the local origin,
// and returns the offset that was removed. NewPolygon already calls it; a second
// call is a near no-op.
func (p *Polygon) Recenter() mgl64.Vec2 {
	c := p.Centroid()
	for i := range p.Vertices {
		p.Vertices[i] = p.Vertices[i].Sub(c)
	}

	return c
}

// ComputeMass returns mass = ρ·|area| and the rotational inertia about the centroid
func (p *Polygon) ComputeMass(density float64) MassData {
	area, c, inertia := p.moments()

	mass := density * math.Abs(area)
	// parallel axis: second moment was accumulated about the local origin
	i := density*math.Abs(inertia) - mass*c.LenSqr()

	return NewMassData(mass, i)
}

// Support returns the local vertex furthest along direction; ties keep the first one
func (p *Polygon) Support(direction mgl64.Vec2) mgl64.Vec2 {
	bestProjection := -math.MaxFloat64
	var bestVertex mgl64.Vec2

	for _, v := range p.Vertices {
		projection := v.Dot(direction)
		if projection > bestProjection {
			bestProjection = projection
			bestVertex = v
		}
	}

	return bestVertex
}

// WorldVertex returns vertex i in world space for a body positioned at position
func (p *Polygon) WorldVertex(i int, position mgl64.Vec2) mgl64.Vec2 {
	return p.Orient.Mul2x1(p.Vertices[i]).Add(position)
}

func (p *Polygon) ComputeAABB(transform Transform) AABB {
	first := transform.ToWorld(p.Vertices[0])
	box := AABB{Min: first, Max: first}

	for _, local := range p.Vertices[1:] {
		v := transform.ToWorld(local)
		box = box.Union(AABB{Min: v, Max: v})
	}

	return box
}

func (p *Polygon) setOrientation(radians float64) {
	p.Orient = mgl64.Rotate2D(radians)
}

func (p *Polygon) clone() Shape {
	return &Polygon{
		Vertices: slices.Clone(p.Vertices),
		Normals:  slices.Clone(p.Normals),
		Orient:   p.Orient,
	}
}
