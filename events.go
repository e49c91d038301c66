package impulse

import (
	"cmp"
	"slices"

	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/constraint"
)

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
)

type pairKey struct {
	bodyA actor.Handle
	bodyB actor.Handle
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(bodyA, bodyB actor.Handle) pairKey {
	if bodyB.Index() < bodyA.Index() {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

func comparePairKeys(a, b pairKey) int {
	if c := cmp.Compare(a.bodyA.Index(), b.bodyA.Index()); c != 0 {
		return c
	}
	return cmp.Compare(a.bodyB.Index(), b.bodyB.Index())
}

type EventType uint8

func (t EventType) String() string {
	switch t {
	case COLLISION_ENTER:
		return "collision_enter"
	case COLLISION_STAY:
		return "collision_stay"
	case COLLISION_EXIT:
		return "collision_exit"
	}
	return "unknown"
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
	Bodies() (actor.Handle, actor.Handle)
}

type CollisionEnterEvent struct {
	BodyA actor.Handle
	BodyB actor.Handle
}

func (e CollisionEnterEvent) Type() EventType                      { return COLLISION_ENTER }
func (e CollisionEnterEvent) Bodies() (actor.Handle, actor.Handle) { return e.BodyA, e.BodyB }

type CollisionStayEvent struct {
	BodyA actor.Handle
	BodyB actor.Handle
}

func (e CollisionStayEvent) Type() EventType                      { return COLLISION_STAY }
func (e CollisionStayEvent) Bodies() (actor.Handle, actor.Handle) { return e.BodyA, e.BodyB }

type CollisionExitEvent struct {
	BodyA actor.Handle
	BodyB actor.Handle
}

func (e CollisionExitEvent) Type() EventType                      { return COLLISION_EXIT }
func (e CollisionExitEvent) Bodies() (actor.Handle, actor.Handle) { return e.BodyA, e.BodyB }

// EventListener - callback for events
type EventListener func(event Event)

// Events dispatches collision enter/stay/exit events after every step.
// The zero value is ready to use.
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Collision tracking for Enter/Stay/Exit detection
	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 256),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

func (e *Events) init() {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	if e.previousActivePairs == nil {
		e.previousActivePairs = make(map[pairKey]bool)
	}
	if e.currentActivePairs == nil {
		e.currentActivePairs = make(map[pairKey]bool)
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.init()
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordCollisions marks the pairs of this step's manifolds as active
func (e *Events) recordCollisions(manifolds []*constraint.Manifold) {
	e.init()
	for _, m := range manifolds {
		e.currentActivePairs[makePairKey(m.BodyA, m.BodyB)] = true
	}
}

// forget drops every tracked pair involving h, so a removed body never emits an exit event
func (e *Events) forget(h actor.Handle) {
	for pair := range e.previousActivePairs {
		if pair.bodyA == h || pair.bodyB == h {
			delete(e.previousActivePairs, pair)
		}
	}
	for pair := range e.currentActivePairs {
		if pair.bodyA == h || pair.bodyB == h {
			delete(e.currentActivePairs, pair)
		}
	}
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit.
// Events are buffered in pair order.
func (e *Events) processCollisionEvents() {
	for _, pair := range sortedPairs(e.currentActivePairs) {
		if e.previousActivePairs[pair] {
			e.buffer = append(e.buffer, CollisionStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, CollisionEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	for _, pair := range sortedPairs(e.previousActivePairs) {
		if !e.currentActivePairs[pair] {
			e.buffer = append(e.buffer, CollisionExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	// Swap for next step and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

func sortedPairs(pairs map[pairKey]bool) []pairKey {
	keys := make([]pairKey, 0, len(pairs))
	for pair := range pairs {
		keys = append(keys, pair)
	}
	slices.SortFunc(keys, comparePairKeys)

	return keys
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.init()
	e.processCollisionEvents()

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
