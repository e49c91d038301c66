// Package scene loads YAML scene descriptions and builds their bodies into a world.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akmonengine/impulse"
	"github.com/akmonengine/impulse/actor"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

const DEFAULT_TIMESTEP = 1.0 / 60.0

var ErrUnknownShape = errors.New("scene: unknown shape type")

// Scene is the root of a scene file
type Scene struct {
	World  WorldConfig  `yaml:"world"`
	Bodies []BodyConfig `yaml:"bodies"`
}

type WorldConfig struct {
	Gravity    *Vec2   `yaml:"gravity,omitempty"`
	Iterations int     `yaml:"iterations,omitempty"`
	TimeStep   float64 `yaml:"timestep,omitempty"`
	// Seed feeds the randomizer of bodies declared with random: true
	Seed uint64 `yaml:"seed,omitempty"`
}

type BodyConfig struct {
	Name        string          `yaml:"name,omitempty"`
	Shape       ShapeConfig     `yaml:"shape"`
	Position    Vec2            `yaml:"position"`
	Orientation float64         `yaml:"orientation,omitempty"`
	Static      bool            `yaml:"static,omitempty"`
	Material    *MaterialConfig `yaml:"material,omitempty"`
	Velocity    *Vec2           `yaml:"velocity,omitempty"`

	AngularVelocity float64 `yaml:"angular_velocity,omitempty"`
	// Random fills the material and kinematics left unset from the scene seed
	Random bool `yaml:"random,omitempty"`
}

type ShapeConfig struct {
	// Type is one of circle, box, polygon, regular
	Type       string  `yaml:"type"`
	Radius     float64 `yaml:"radius,omitempty"`
	HalfWidth  float64 `yaml:"half_width,omitempty"`
	HalfHeight float64 `yaml:"half_height,omitempty"`
	Sides      int     `yaml:"sides,omitempty"`
	Vertices   []Vec2  `yaml:"vertices,omitempty"`
}

type MaterialConfig struct {
	Density         float64 `yaml:"density"`
	Restitution     float64 `yaml:"restitution"`
	DynamicFriction float64 `yaml:"dynamic_friction"`
	StaticFriction  float64 `yaml:"static_friction"`
}

// Load decodes a scene. Unknown keys are rejected.
func Load(r io.Reader) (*Scene, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var s Scene
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}

	return &s, nil
}

// LoadFile decodes the scene stored at path
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// TimeStep returns the scene time step, or DEFAULT_TIMESTEP when unset
func (s *Scene) TimeStep() float64 {
	if s.World.TimeStep > 0 {
		return s.World.TimeStep
	}
	return DEFAULT_TIMESTEP
}

// NewWorld returns a world configured from the world section
func (s *Scene) NewWorld() *impulse.World {
	world := impulse.NewWorld()
	if s.World.Gravity != nil {
		world.Gravity = s.World.Gravity.Vec()
	}
	if s.World.Iterations > 0 {
		world.Iterations = s.World.Iterations
	}

	return world
}

// Build creates every body of the scene and adds it to world, in file order.
// Nothing is added if any body is invalid.
func (s *Scene) Build(world *impulse.World) ([]actor.Handle, error) {
	randomizer := actor.NewRandomizer(s.World.Seed)

	bodies := make([]*actor.RigidBody, 0, len(s.Bodies))
	for i, config := range s.Bodies {
		body, err := config.build(randomizer)
		if err != nil {
			if config.Name != "" {
				return nil, fmt.Errorf("scene: body %d (%s): %w", i, config.Name, err)
			}
			return nil, fmt.Errorf("scene: body %d: %w", i, err)
		}
		bodies = append(bodies, body)
	}

	handles := make([]actor.Handle, len(bodies))
	for i, body := range bodies {
		handles[i] = world.AddBody(body)
	}

	return handles, nil
}

func (c BodyConfig) build(randomizer *actor.Randomizer) (*actor.RigidBody, error) {
	shape, err := c.Shape.build()
	if err != nil {
		return nil, err
	}

	var opts []actor.Option
	if c.Material != nil {
		opts = append(opts, actor.WithMaterial(actor.Material{
			Density:         c.Material.Density,
			Restitution:     c.Material.Restitution,
			DynamicFriction: c.Material.DynamicFriction,
			StaticFriction:  c.Material.StaticFriction,
		}))
	}
	if c.Velocity != nil || c.AngularVelocity != 0 {
		kinematics := actor.Kinematics{AngularVelocity: c.AngularVelocity}
		if c.Velocity != nil {
			kinematics.Velocity = c.Velocity.Vec()
		}
		opts = append(opts, actor.WithKinematics(kinematics))
	}
	if c.Static {
		opts = append(opts, actor.Static())
	}
	if c.Random {
		opts = append(opts, actor.WithRandomDefaults(randomizer))
	}

	transform := actor.Transform{Position: c.Position.Vec(), Orientation: c.Orientation}

	return actor.NewRigidBody(shape, transform, opts...)
}

func (c ShapeConfig) build() (actor.Shape, error) {
	switch strings.ToLower(c.Type) {
	case "circle":
		return actor.NewCircle(c.Radius)
	case "box":
		return actor.NewBox(c.HalfWidth, c.HalfHeight)
	case "regular":
		return actor.NewRegularPolygon(c.Radius, c.Sides)
	case "polygon":
		vertices := make([]mgl64.Vec2, len(c.Vertices))
		for i, v := range c.Vertices {
			vertices[i] = v.Vec()
		}
		return actor.NewPolygon(vertices)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, c.Type)
}
