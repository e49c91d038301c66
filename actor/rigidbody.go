package actor

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrMissingMaterial = errors.New("actor: body needs a material or an explicit randomizer")

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies are affected by forces, gravity, and collisions
	// They have finite mass and can move freely
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies are immovable and have infinite mass
	// They are not affected by forces or gravity (e.g., ground, walls)
	BodyTypeStatic
)

// Material holds the surface and bulk coefficients of a body. It is immutable once the body exists.
type Material struct {
	Density         float64
	Restitution     float64 // 0= no rebound, 1= perfect restitution
	DynamicFriction float64
	StaticFriction  float64
}

// Kinematics is the motion state carried across steps
type Kinematics struct {
	Velocity        mgl64.Vec2 // m/s
	AngularVelocity float64    // rad/s
	Torque          float64    // accumulated, cleared every step
}

// RigidBody represents a rigid body in the physics simulation
type RigidBody struct {
	Transform  Transform
	Kinematics Kinematics

	Material Material
	MassData MassData
	BodyType BodyType

	// Collision shape
	Shape Shape

	accumulatedForce mgl64.Vec2
}

type bodyConfig struct {
	material   *Material
	massData   *MassData
	kinematics *Kinematics
	static     bool
	randomizer *Randomizer
}

// Option configures NewRigidBody
type Option func(*bodyConfig)

// WithMaterial sets the body material; density drives the computed mass
func WithMaterial(material Material) Option {
	return func(c *bodyConfig) { c.material = &material }
}

// WithMassData overrides the mass computed from the shape. Static takes precedence.
func WithMassData(massData MassData) Option {
	return func(c *bodyConfig) { c.massData = &massData }
}

// WithKinematics sets the initial velocities. Bodies start at rest otherwise.
func WithKinematics(kinematics Kinematics) Option {
	return func(c *bodyConfig) { c.kinematics = &kinematics }
}

// Static gives the body infinite mass
func Static() Option {
	return func(c *bodyConfig) { c.static = true }
}

// WithRandomDefaults fills the material and kinematics that were not supplied from r
func WithRandomDefaults(r *Randomizer) Option {
	return func(c *bodyConfig) { c.randomizer = r }
}

// NewRigidBody creates a body from a shape and a pose.
// The body owns a copy of shape, so one shape value may seed several bodies.
// A material is required, either through WithMaterial or WithRandomDefaults.
// Mass data is computed from the shape and the material density unless the
// body is Static or the mass data is given.
// A body without inverse mass is static and never rotates either.
func NewRigidBody(shape Shape, transform Transform, opts ...Option) (*RigidBody, error) {
	var cfg bodyConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	rb := &RigidBody{
		Transform: transform,
		Shape:     shape.clone(),
	}

	switch {
	case cfg.material != nil:
		rb.Material = *cfg.material
	case cfg.randomizer != nil:
		rb.Material = cfg.randomizer.Material()
	default:
		return nil, ErrMissingMaterial
	}

	switch {
	case cfg.static:
		rb.MassData = StaticMassData()
	case cfg.massData != nil:
		rb.MassData = *cfg.massData
	default:
		rb.MassData = shape.ComputeMass(rb.Material.Density)
	}

	switch {
	case cfg.kinematics != nil:
		rb.Kinematics = *cfg.kinematics
	case cfg.randomizer != nil:
		rb.Kinematics = cfg.randomizer.Kinematics()
	}

	if rb.MassData.InverseMass == 0 {
		rb.BodyType = BodyTypeStatic
		rb.MassData.InverseInertia = 0
	}
	rb.SetOrientation(transform.Orientation)

	return rb, nil
}

// IsStatic reports whether the body has infinite mass
func (rb *RigidBody) IsStatic() bool {
	return rb.BodyType == BodyTypeStatic
}

// SetOrientation rotates the body and its shape
func (rb *RigidBody) SetOrientation(radians float64) {
	rb.Transform.Orientation = radians
	rb.Shape.setOrientation(radians)
}

// AddForce accumulates a force (N) applied at the center of mass until the end of the step
func (rb *RigidBody) AddForce(force mgl64.Vec2) {
	if rb.IsStatic() {
		return
	}
	rb.accumulatedForce = rb.accumulatedForce.Add(force)
}

// AddTorque accumulates a torque (N⋅m) until the end of the step
func (rb *RigidBody) AddTorque(torque float64) {
	if rb.IsStatic() {
		return
	}
	rb.Kinematics.Torque += torque
}

// Force returns the force accumulated during the current step
func (rb *RigidBody) Force() mgl64.Vec2 {
	return rb.accumulatedForce
}

// ClearForces resets the step-local force and torque
func (rb *RigidBody) ClearForces() {
	rb.accumulatedForce = mgl64.Vec2{}
	rb.Kinematics.Torque = 0
}

// ApplyImpulse changes the velocities by an impulse applied at contactVector from the center of mass
func (rb *RigidBody) ApplyImpulse(impulse, contactVector mgl64.Vec2) {
	if rb.IsStatic() {
		return
	}
	rb.Kinematics.Velocity = rb.Kinematics.Velocity.Add(impulse.Mul(rb.MassData.InverseMass))
	rb.Kinematics.AngularVelocity += rb.MassData.InverseInertia * Cross(contactVector, impulse)
}

// VelocityAt returns the world velocity of the point at offset r from the center of mass
func (rb *RigidBody) VelocityAt(r mgl64.Vec2) mgl64.Vec2 {
	return rb.Kinematics.Velocity.Add(CrossSV(rb.Kinematics.AngularVelocity, r))
}

// IntegrateForces applies half a step of gravity, force and torque to the velocities
func (rb *RigidBody) IntegrateForces(dt float64, gravity mgl64.Vec2) {
	if rb.IsStatic() {
		return
	}

	h := dt / 2.0
	acceleration := rb.accumulatedForce.Mul(rb.MassData.InverseMass).Add(gravity)
	rb.Kinematics.Velocity = rb.Kinematics.Velocity.Add(acceleration.Mul(h))
	rb.Kinematics.AngularVelocity += rb.Kinematics.Torque * rb.MassData.InverseInertia * h
}

// IntegrateVelocity moves the body along its velocities, then applies the second force half-step
func (rb *RigidBody) IntegrateVelocity(dt float64, gravity mgl64.Vec2) {
	if rb.IsStatic() {
		return
	}

	rb.Transform.Position = rb.Transform.Position.Add(rb.Kinematics.Velocity.Mul(dt))
	rb.SetOrientation(rb.Transform.Orientation + rb.Kinematics.AngularVelocity*dt)

	rb.IntegrateForces(dt, gravity)
}

// AABB returns the current world bounds of the body
func (rb *RigidBody) AABB() AABB {
	return rb.Shape.ComputeAABB(rb.Transform)
}
