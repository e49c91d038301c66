package constraint

import (
	"math"

	"github.com/akmonengine/impulse/actor"
)

// Constraint is a per-step velocity and position constraint between bodies of an arena
type Constraint interface {
	ApplyImpulse(bodies *actor.Arena)
	PositionalCorrection(bodies *actor.Arena)
}

// MixRestitution keeps the least bouncy of the two materials
func MixRestitution(matA, matB actor.Material) float64 {
	return math.Min(matA.Restitution, matB.Restitution)
}

func MixStaticFriction(matA, matB actor.Material) float64 {
	// geometric mean, so a frictionless surface wins
	return math.Sqrt(matA.StaticFriction * matB.StaticFriction)
}

func MixDynamicFriction(matA, matB actor.Material) float64 {
	return math.Sqrt(matA.DynamicFriction * matB.DynamicFriction)
}
