package constraint

import (
	"math"

	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/collide"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// PenetrationAllowance is the depth left uncorrected, to keep resting contacts quiet
	PenetrationAllowance = 0.05
	// CorrectionPercent is the share of the remaining depth removed per step
	CorrectionPercent = 0.4
)

// ManifoldState tracks how far a manifold went through the step
type ManifoldState int

const (
	ManifoldDetected ManifoldState = iota
	ManifoldInitialized
	ManifoldSolved
	ManifoldCorrected
)

func (s ManifoldState) String() string {
	switch s {
	case ManifoldDetected:
		return "detected"
	case ManifoldInitialized:
		return "initialized"
	case ManifoldSolved:
		return "solved"
	case ManifoldCorrected:
		return "corrected"
	}
	return "unknown"
}

// Manifold is the contact between two bodies for one step.
// It refers to the bodies by handle and looks them up on every access.
type Manifold struct {
	BodyA actor.Handle
	BodyB actor.Handle

	collide.Contact

	// Coefficients mixed from both materials by Initialize
	Restitution     float64
	DynamicFriction float64
	StaticFriction  float64

	State ManifoldState
}

// NewManifold wraps a narrow phase result for the pair (a, b)
func NewManifold(a, b actor.Handle, contact collide.Contact) *Manifold {
	return &Manifold{
		BodyA:   a,
		BodyB:   b,
		Contact: contact,
		State:   ManifoldDetected,
	}
}

// Initialize mixes the materials. Restitution drops to 0 when every contact moves
// no faster than gravity alone accelerates it in one step.
func (m *Manifold) Initialize(bodies *actor.Arena, dt float64, gravity mgl64.Vec2) {
	bodyA, bodyB := bodies.Pair(m.BodyA, m.BodyB)

	m.Restitution = MixRestitution(bodyA.Material, bodyB.Material)
	m.StaticFriction = MixStaticFriction(bodyA.Material, bodyB.Material)
	m.DynamicFriction = MixDynamicFriction(bodyA.Material, bodyB.Material)

	restingSpeedSqr := gravity.Mul(dt).LenSqr() + actor.Epsilon

	for i := 0; i < m.Count; i++ {
		rA := m.Points[i].Sub(bodyA.Transform.Position)
		rB := m.Points[i].Sub(bodyB.Transform.Position)

		relativeVel := bodyB.VelocityAt(rB).Sub(bodyA.VelocityAt(rA))
		if relativeVel.LenSqr() < restingSpeedSqr {
			m.Restitution = 0
		}
	}

	m.State = ManifoldInitialized
}

// ApplyImpulse runs one sequential impulse pass over the contact points.
// The pass stops at the first contact whose bodies are already separating.
func (m *Manifold) ApplyImpulse(bodies *actor.Arena) {
	bodyA, bodyB := bodies.Pair(m.BodyA, m.BodyB)
	defer func() { m.State = ManifoldSolved }()

	if bodyA.IsStatic() && bodyB.IsStatic() {
		bodyA.Kinematics.Velocity = mgl64.Vec2{}
		bodyB.Kinematics.Velocity = mgl64.Vec2{}
		return
	}

	invMassA := bodyA.MassData.InverseMass
	invMassB := bodyB.MassData.InverseMass
	invInertiaA := bodyA.MassData.InverseInertia
	invInertiaB := bodyB.MassData.InverseInertia

	for i := 0; i < m.Count; i++ {
		rA := m.Points[i].Sub(bodyA.Transform.Position)
		rB := m.Points[i].Sub(bodyB.Transform.Position)

		relativeVel := bodyB.VelocityAt(rB).Sub(bodyA.VelocityAt(rA))
		normalVel := relativeVel.Dot(m.Normal)

		if normalVel > 0 {
			return
		}

		rACrossN := actor.Cross(rA, m.Normal)
		rBCrossN := actor.Cross(rB, m.Normal)
		invMassSum := invMassA + invMassB +
			rACrossN*rACrossN*invInertiaA +
			rBCrossN*rBCrossN*invInertiaB

		j := -(1.0 + m.Restitution) * normalVel
		j /= invMassSum
		j /= float64(m.Count)

		impulse := m.Normal.Mul(j)
		bodyA.ApplyImpulse(impulse.Mul(-1), rA)
		bodyB.ApplyImpulse(impulse, rB)
	}
}

// PositionalCorrection pushes the bodies apart along the normal, in proportion to
// their inverse masses, by CorrectionPercent of the depth beyond PenetrationAllowance.
func (m *Manifold) PositionalCorrection(bodies *actor.Arena) {
	bodyA, bodyB := bodies.Pair(m.BodyA, m.BodyB)
	defer func() { m.State = ManifoldCorrected }()

	invMassA := bodyA.MassData.InverseMass
	invMassB := bodyB.MassData.InverseMass
	if invMassA+invMassB == 0 {
		return
	}

	depth := math.Max(m.Penetration-PenetrationAllowance, 0) / (invMassA + invMassB) * CorrectionPercent
	correction := m.Normal.Mul(depth)

	bodyA.Transform.Position = bodyA.Transform.Position.Sub(correction.Mul(invMassA))
	bodyB.Transform.Position = bodyB.Transform.Position.Add(correction.Mul(invMassB))
}
