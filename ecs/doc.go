// Package ecs provides ECS adapters for dragkit's lifecycle notifications.
//
// [NewDonburiStore] bridges every controller notification into a [Donburi]
// world as a typed event. [TrackSessions] additionally keeps one entity per
// session with a [SessionRecord] component, so systems can query sessions
// like any other component data.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	ctrl.SetEventSink(store)
//	ecs.TrackSessions(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
