package actor

import "math"

// MassData stores mass and inertia together with their inverses, which the solver uses.
// An inverse is 0 whenever its forward value is 0 or infinite.
type MassData struct {
	Mass           float64
	InverseMass    float64
	Inertia        float64
	InverseInertia float64
}

// NewMassData derives the inverse fields from mass and rotational inertia
func NewMassData(mass, inertia float64) MassData {
	return MassData{
		Mass:           mass,
		InverseMass:    inverse(mass),
		Inertia:        inertia,
		InverseInertia: inverse(inertia),
	}
}

// StaticMassData is the mass data of an immovable body
func StaticMassData() MassData {
	return NewMassData(math.Inf(1), math.Inf(1))
}

// IsInfinite reports whether the mass is infinite
func (m MassData) IsInfinite() bool {
	return math.IsInf(m.Mass, 1)
}

func inverse(v float64) float64 {
	if v == 0 || math.IsInf(v, 0) {
		return 0
	}
	return 1.0 / v
}
