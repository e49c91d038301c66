package actor

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Randomizer generates fixture materials and kinematics from a caller-seeded source,
// so a given seed always produces the same scene.
type Randomizer struct {
	rng *rand.Rand
}

// NewRandomizer creates a Randomizer seeded with seed
func NewRandomizer(seed uint64) *Randomizer {
	return &Randomizer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *Randomizer) uniform(lo, hi float64) float64 {
	return lo + r.rng.Float64()*(hi-lo)
}

// Material returns density in [0.1, 10) and coefficients in [0, 1)
func (r *Randomizer) Material() Material {
	return Material{
		Density:         r.uniform(0.1, 10),
		Restitution:     r.rng.Float64(),
		DynamicFriction: r.rng.Float64(),
		StaticFriction:  r.rng.Float64(),
	}
}

// Kinematics returns velocity components in [-10, 10), angular velocity and torque in [-1, 1)
func (r *Randomizer) Kinematics() Kinematics {
	return Kinematics{
		Velocity:        mgl64.Vec2{r.uniform(-10, 10), r.uniform(-10, 10)},
		AngularVelocity: r.uniform(-1, 1),
		Torque:          r.uniform(-1, 1),
	}
}
