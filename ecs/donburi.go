package ecs

import (
	"github.com/brightseed/aster"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// WindowEventType is the Donburi event type for aster window events.
// Subscribe to this in your ECS systems to receive resize, open/close,
// pointer, button, and scroll events.
var WindowEventType = events.NewEventType[aster.WindowEvent]()

// Bind subscribes to every observable of the sink and publishes each
// change to WindowEventType in the given world. Events are queued by
// Donburi; call ProcessEvents (or events.ProcessAllEvents) to deliver
// them. The returned handle set removes the subscriptions.
func Bind(world donburi.World, sink *aster.Events) *aster.HandleSet {
	handles := &aster.HandleSet{}
	sink.OnWindowEvent(handles, func(e aster.WindowEvent) {
		WindowEventType.Publish(world, e)
	})
	return handles
}
