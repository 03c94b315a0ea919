// Package ecs provides ECS adapters for aster's window event sink.
//
// The primary adapter is [Bind], which bridges window events (resize,
// open/close, pointer, buttons, scroll) from an [aster.Events] sink into a
// [Donburi] world as typed events. Subscribe to [WindowEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	handles := ecs.Bind(world, scene.Events())
//	defer handles.ReleaseAll()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
