package aster

import "errors"

// ErrUnsupported is returned by a Screen that does not implement an
// optional operation. The scene graph downgrades it to a logged no-op;
// other errors are logged as warnings. Neither aborts the enclosing
// attach, detach, or teardown.
var ErrUnsupported = errors.New("aster: operation not supported by backend")

// Screen is the contract a display backend implements to render scenes.
// A scene may be shown on zero or more screens simultaneously; the scene
// graph invokes each hook exactly once per logical attach/detach, and
// teardown does not return until every screen's removal hook has run.
//
// Implementations that render on their own goroutine must treat these
// calls as happening-before their next read of the affected state.
type Screen interface {
	// InsertPlot registers the plot's render resources for the scene.
	// Duplicate calls for the same (scene, plot) pair must not corrupt
	// internal state.
	InsertPlot(scene *Scene, plot *Plot) error

	// DeletePlot releases the plot's render resources.
	// Return ErrUnsupported if incremental deletion is not available.
	DeletePlot(scene *Scene, plot *Plot) error

	// DeleteScene releases all backend-side state for the scene.
	// Return ErrUnsupported if not available.
	DeleteScene(scene *Scene) error
}
