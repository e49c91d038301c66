// Package ecs provides ECS adapters for impulse.
//
// The adapter is [NewBridge], which forwards the collision events of an
// [impulse.World] into a [Donburi] world as typed events. Bodies are bound to
// entities carrying a [BodyComponent], and every [CollisionEvent] names both the
// physics handles and the entities.
//
// Usage:
//
//	bridge := ecs.NewBridge(ecsWorld)
//	bridge.Attach(&physicsWorld.Events)
//	entity := bridge.Spawn(handle)
//	...
//	physicsWorld.Step(dt)
//	ecs.CollisionEventType.ProcessEvents(ecsWorld)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
