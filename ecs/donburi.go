package ecs

import (
	"github.com/akmonengine/impulse"
	"github.com/akmonengine/impulse/actor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Body links an entity to a physics body
type Body struct {
	Handle actor.Handle
}

// BodyComponent stores the physics handle of an entity
var BodyComponent = donburi.NewComponentType[Body]()

// CollisionEvent is a physics collision event as seen from the ECS world.
// Entities are donburi.Null for bodies that were never spawned through the bridge.
type CollisionEvent struct {
	Type    impulse.EventType
	BodyA   actor.Handle
	BodyB   actor.Handle
	EntityA donburi.Entity
	EntityB donburi.Entity
}

// CollisionEventType is the Donburi event type for impulse collision events.
// Subscribe to this in your ECS systems to receive enter, stay and exit events.
var CollisionEventType = events.NewEventType[CollisionEvent]()

// Bridge publishes physics events into a Donburi world
type Bridge struct {
	world    donburi.World
	entities map[actor.Handle]donburi.Entity
}

// NewBridge creates a bridge publishing into world
func NewBridge(world donburi.World) *Bridge {
	return &Bridge{
		world:    world,
		entities: make(map[actor.Handle]donburi.Entity),
	}
}

// Attach subscribes the bridge to every collision event type
func (b *Bridge) Attach(physicsEvents *impulse.Events) {
	for _, eventType := range []impulse.EventType{impulse.COLLISION_ENTER, impulse.COLLISION_STAY, impulse.COLLISION_EXIT} {
		physicsEvents.Subscribe(eventType, b.Emit)
	}
}

// Spawn creates an entity bound to the body behind h
func (b *Bridge) Spawn(h actor.Handle) donburi.Entity {
	entity := b.world.Create(BodyComponent)
	BodyComponent.SetValue(b.world.Entry(entity), Body{Handle: h})
	b.entities[h] = entity

	return entity
}

// Despawn removes the entity bound to h, if any
func (b *Bridge) Despawn(h actor.Handle) {
	entity, ok := b.entities[h]
	if !ok {
		return
	}

	delete(b.entities, h)
	if b.world.Valid(entity) {
		b.world.Remove(entity)
	}
}

// Entity returns the entity bound to h, or donburi.Null
func (b *Bridge) Entity(h actor.Handle) donburi.Entity {
	if entity, ok := b.entities[h]; ok {
		return entity
	}
	return donburi.Null
}

// Emit queues a physics event in the Donburi world
func (b *Bridge) Emit(event impulse.Event) {
	bodyA, bodyB := event.Bodies()

	CollisionEventType.Publish(b.world, CollisionEvent{
		Type:    event.Type(),
		BodyA:   bodyA,
		BodyB:   bodyB,
		EntityA: b.Entity(bodyA),
		EntityB: b.Entity(bodyB),
	})
}
