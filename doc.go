// Package aster is an observable scene graph for real-time plot rendering.
//
// Aster manages a tree of scenes — each holding plots, a camera, lights,
// and display state — with reactive propagation of geometry and camera
// updates, multi-backend render-resource registration, and deterministic,
// explicit teardown. It does not rasterize anything itself: display
// backends implement [Screen] and react to the state machine.
//
// # Quick start
//
//	win := aster.NewWindow("demo", 800, 600)
//	scene, err := aster.NewScene(aster.SceneConfig{
//		Events:   win.Events(),
//		Controls: aster.NewCamera2D(aster.Rect{X: -1, Y: -1, W: 2, H: 2}),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene.Attach(aster.NewPlot(aster.PlotScatter, "points"))
//	win.Display(scene)
//	if err := win.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Observables
//
// Every piece of display state is an [Observable]: a typed cell that
// notifies listeners synchronously, in priority order, when its value
// changes. Listeners registered through a [HandleSet] owner are released
// en masse when that owner is torn down, so no callback outlives the
// scene or plot that created it.
//
// # Scenes
//
// [NewScene] builds a root scene from a [SceneConfig] merged with theme
// defaults; [Scene.NewChild] derives a child whose pixel area, theme,
// and transformation follow the parent. [Scene.Push] rewires an existing
// scene to mirror another scene's camera. [Scene.Teardown] destroys a
// scene bottom-up: children first, then plots, then backend state, then
// every remaining listener. Teardown is explicit and idempotent; nothing
// is released by garbage collection.
//
// # Backends
//
// A backend implements [Screen] and receives exactly one insertion or
// deletion hook per logical attach/detach. [Window] is a reference
// backend on [Ebitengine]; the ecs submodule bridges the event sink to
// [Donburi] worlds.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package aster
