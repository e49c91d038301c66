package impulse

import (
	"slices"

	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

const DEFAULT_ITERATIONS = 10

// DEFAULT_GRAVITY is the acceleration (m/s²) applied by NewWorld
var DEFAULT_GRAVITY = mgl64.Vec2{0, -9.8}

// World owns the bodies and steps them at a fixed interval.
// It is not safe for concurrent use.
type World struct {
	// Gravity acceleration (m/s², or N/kg)
	Gravity mgl64.Vec2
	// Iterations is the number of sequential impulse passes per step, DEFAULT_ITERATIONS when not positive
	Iterations int

	Events Events

	bodies   actor.Arena
	contacts []*constraint.Manifold
}

// NewWorld returns an empty world with the default gravity and solver iterations
func NewWorld() *World {
	return &World{
		Gravity:    DEFAULT_GRAVITY,
		Iterations: DEFAULT_ITERATIONS,
		Events:     NewEvents(),
	}
}

// AddBody adds a rigid body to the world and returns its handle
func (w *World) AddBody(body *actor.RigidBody) actor.Handle {
	return w.bodies.Insert(body)
}

// RemoveBody removes a rigid body from the world. It returns false if the handle is stale.
func (w *World) RemoveBody(h actor.Handle) bool {
	if !w.bodies.Remove(h) {
		return false
	}

	w.contacts = slices.DeleteFunc(w.contacts, func(m *constraint.Manifold) bool {
		return m.BodyA == h || m.BodyB == h
	})
	w.Events.forget(h)

	return true
}

// Body returns the body behind h
func (w *World) Body(h actor.Handle) (*actor.RigidBody, bool) {
	return w.bodies.Get(h)
}

// Bodies returns the handles of every live body, in insertion slot order
func (w *World) Bodies() []actor.Handle {
	return w.bodies.Handles()
}

// Len returns the number of bodies in the world
func (w *World) Len() int {
	return w.bodies.Len()
}

// Each calls fn for every body in slot order
func (w *World) Each(fn func(h actor.Handle, body *actor.RigidBody)) {
	w.bodies.Each(fn)
}

// Contacts returns the manifolds of the last step, in pair order.
// The slice is replaced, not reused, by the next step.
func (w *World) Contacts() []*constraint.Manifold {
	return w.contacts
}

// Step advances the simulation by dt seconds. dt must be positive and should stay constant.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		panic("impulse: Step requires a positive time step")
	}
	iterations := w.Iterations
	if iterations <= 0 {
		iterations = DEFAULT_ITERATIONS
	}

	// Phase 1: Collision pair finding, brute-force broad phase then narrow phase
	w.contacts = w.detectCollision()

	// Phase 2: first half of the force integration
	w.integrateForces(dt)

	// Phase 3: Solver
	for _, m := range w.contacts {
		m.Initialize(&w.bodies, dt, w.Gravity)
	}
	for range iterations {
		for _, m := range w.contacts {
			m.ApplyImpulse(&w.bodies)
		}
	}

	// Phase 4: Update Position & Velocity
	w.integrateVelocities(dt)

	// Phase 5: Position
	for _, m := range w.contacts {
		m.PositionalCorrection(&w.bodies)
	}

	w.clearForces()

	w.Events.recordCollisions(w.contacts)
	w.Events.flush()
}

func (w *World) detectCollision() []*constraint.Manifold {
	return NarrowPhase(&w.bodies, BroadPhase(&w.bodies))
}

func (w *World) integrateForces(dt float64) {
	w.bodies.Each(func(_ actor.Handle, body *actor.RigidBody) {
		body.IntegrateForces(dt, w.Gravity)
	})
}

func (w *World) integrateVelocities(dt float64) {
	w.bodies.Each(func(_ actor.Handle, body *actor.RigidBody) {
		body.IntegrateVelocity(dt, w.Gravity)
	})
}

func (w *World) clearForces() {
	w.bodies.Each(func(_ actor.Handle, body *actor.RigidBody) {
		body.ClearForces()
	})
}
