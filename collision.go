package impulse

import (
	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/collide"
	"github.com/akmonengine/impulse/constraint"
)

// Pair represents two bodies that the narrow phase has to test
type Pair struct {
	BodyA actor.Handle
	BodyB actor.Handle
}

// BroadPhase returns every unordered pair of live bodies, in slot order.
// Pairs of two static bodies are skipped: they never collide.
// This is an O(n²) brute-force pass with no spatial culling.
func BroadPhase(bodies *actor.Arena) []Pair {
	handles := bodies.Handles()
	pairs := make([]Pair, 0, len(handles)*(len(handles)-1)/2)

	for i := 0; i < len(handles); i++ {
		bodyA := bodies.MustGet(handles[i])

		for j := i + 1; j < len(handles); j++ {
			bodyB := bodies.MustGet(handles[j])
			if bodyA.IsStatic() && bodyB.IsStatic() {
				continue
			}

			pairs = append(pairs, Pair{BodyA: handles[i], BodyB: handles[j]})
		}
	}

	return pairs
}

// NarrowPhase runs the exact shape test on each pair and keeps a manifold for
// every pair with at least one contact point, preserving pair order.
func NarrowPhase(bodies *actor.Arena, pairs []Pair) []*constraint.Manifold {
	manifolds := make([]*constraint.Manifold, 0, len(pairs))

	for _, pair := range pairs {
		bodyA, bodyB := bodies.Pair(pair.BodyA, pair.BodyB)

		contact := collide.Collide(bodyA, bodyB)
		if !contact.Touching() {
			continue
		}

		manifolds = append(manifolds, constraint.NewManifold(pair.BodyA, pair.BodyB, contact))
	}

	return manifolds
}
