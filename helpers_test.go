package impulse

import (
	"math"
	"testing"

	"github.com/akmonengine/impulse/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var testMaterial = actor.Material{
	Density:         1.0,
	Restitution:     0.2,
	DynamicFriction: 0.3,
	StaticFriction:  0.5,
}

func createCircle(t testing.TB, position mgl64.Vec2, radius float64, opts ...actor.Option) *actor.RigidBody {
	t.Helper()

	opts = append([]actor.Option{actor.WithMaterial(testMaterial)}, opts...)
	rb, err := actor.NewRigidBody(actor.MustCircle(radius), actor.NewTransform(position), opts...)
	if err != nil {
		t.Fatalf("NewRigidBody() error = %v", err)
	}
	return rb
}

func createBox(t testing.TB, position mgl64.Vec2, halfWidth, halfHeight float64, opts ...actor.Option) *actor.RigidBody {
	t.Helper()

	box, err := actor.NewBox(halfWidth, halfHeight)
	if err != nil {
		t.Fatalf("NewBox() error = %v", err)
	}

	opts = append([]actor.Option{actor.WithMaterial(testMaterial)}, opts...)
	rb, err := actor.NewRigidBody(box, actor.NewTransform(position), opts...)
	if err != nil {
		t.Fatalf("NewRigidBody() error = %v", err)
	}
	return rb
}

func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func vec2Equal(a, b mgl64.Vec2, tolerance float64) bool {
	return floatEqual(a.X(), b.X(), tolerance) && floatEqual(a.Y(), b.Y(), tolerance)
}
