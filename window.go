package aster

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
)

// plotBuffers holds reusable vertex/index buffers for one attached plot.
// Geometry is rebuilt every frame from the plot's observables (small plot
// counts make retraversal cheaper than fine-grained invalidation).
type plotBuffers struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

// sceneState is the per-scene backend state: which plots are registered
// and their buffers.
type sceneState struct {
	plots map[*Plot]*plotBuffers
}

// Window is a reference Screen backend on Ebitengine. It implements
// ebiten.Game, feeds the shared event sink from real input, and draws
// attached scenes into their pixel-area viewports.
type Window struct {
	title         string
	width, height int

	events *Events
	scenes []*Scene // display order
	states map[*Scene]*sceneState

	white       *ebiten.Image // lazily created 1x1 white source image
	prevButtons MouseButtons
}

// NewWindow creates a window backend with its own event sink. Pass
// Window.Events() as SceneConfig.Events so root scenes bind their pixel
// area to this window.
func NewWindow(title string, width, height int) *Window {
	return &Window{
		title:  title,
		width:  width,
		height: height,
		events: NewEvents(),
		states: map[*Scene]*sceneState{},
	}
}

// Events returns the window's event sink.
func (w *Window) Events() *Events { return w.events }

// Display attaches a scene and all of its current descendants to the
// window: the window registers itself on each scene and inserts every
// already-attached plot. Scenes are recorded in pre-order so a parent
// draws (and clears its viewport) before its children composite on top.
func (w *Window) Display(scene *Scene) {
	scene.AttachScreen(w)
	w.ensureState(scene)
	w.scenes = append(w.scenes, scene)
	for _, p := range scene.Plots() {
		if err := w.InsertPlot(scene, p); err != nil {
			warnf("display: %v", err)
		}
	}
	for _, child := range scene.Children() {
		w.Display(child)
	}
}

func (w *Window) ensureState(scene *Scene) *sceneState {
	st := w.states[scene]
	if st == nil {
		st = &sceneState{plots: map[*Plot]*plotBuffers{}}
		w.states[scene] = st
	}
	return st
}

// InsertPlot implements Screen. Composite plots register their sub-plots;
// a duplicate insert resets the plot's buffers and is otherwise harmless.
func (w *Window) InsertPlot(scene *Scene, plot *Plot) error {
	st := w.ensureState(scene)
	if plot.Kind == PlotCombined {
		for _, sub := range plot.Subplots() {
			if err := w.InsertPlot(scene, sub); err != nil {
				return err
			}
		}
		return nil
	}
	st.plots[plot] = &plotBuffers{}
	return nil
}

// DeletePlot implements Screen. Composite plots release their sub-plots
// recursively, mirroring InsertPlot.
func (w *Window) DeletePlot(scene *Scene, plot *Plot) error {
	st := w.states[scene]
	if st == nil {
		return nil
	}
	if plot.Kind == PlotCombined {
		for _, sub := range plot.Subplots() {
			if err := w.DeletePlot(scene, sub); err != nil {
				return err
			}
		}
		return nil
	}
	delete(st.plots, plot)
	return nil
}

// DeleteScene implements Screen.
func (w *Window) DeleteScene(scene *Scene) error {
	delete(w.states, scene)
	for i, s := range w.scenes {
		if s == scene {
			copy(w.scenes[i:], w.scenes[i+1:])
			w.scenes[len(w.scenes)-1] = nil
			w.scenes = w.scenes[:len(w.scenes)-1]
			break
		}
	}
	return nil
}

// Run opens the window and blocks in the game loop until it closes.
func (w *Window) Run() error {
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w.events.WindowOpen.Set(true)
	err := ebiten.RunGame(w)
	w.events.WindowOpen.Set(false)
	return err
}

// Update implements ebiten.Game: it polls input into the event sink and
// advances one tick.
func (w *Window) Update() error {
	cx, cy := ebiten.CursorPosition()
	w.events.MousePosition.Set(Vec2{float32(cx), float32(cy)})

	var buttons MouseButtons
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		buttons |= ButtonMaskLeft
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		buttons |= ButtonMaskRight
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		buttons |= ButtonMaskMiddle
	}
	if buttons != w.prevButtons {
		w.prevButtons = buttons
		w.events.MouseDown.Set(buttons)
	}

	if sx, sy := ebiten.Wheel(); sx != 0 || sy != 0 {
		w.events.Scroll.Set(Vec2{float32(sx), float32(sy)})
	}

	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	w.events.Modifiers.Set(mods)

	w.events.Tick.Set(float32(1) / float32(ebiten.TPS()))
	return nil
}

// Layout implements ebiten.Game: the window area observable follows the
// outside size, which drives root-scene pixel areas.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	w.events.WindowArea.Set(Rect{0, 0, float32(outsideWidth), float32(outsideHeight)})
	return outsideWidth, outsideHeight
}

// Draw implements ebiten.Game: every displayed scene renders into its
// pixel-area viewport in display order.
func (w *Window) Draw(screen *ebiten.Image) {
	for _, s := range w.scenes {
		w.drawScene(screen, s)
	}
}

func (w *Window) drawScene(screen *ebiten.Image, s *Scene) {
	if !s.Visible.Get() {
		return
	}
	st := w.states[s]
	if st == nil {
		return
	}
	vp := s.PixelArea.Get()
	if vp.Empty() {
		return
	}
	target := screen.SubImage(image.Rect(
		int(vp.X), int(vp.Y),
		int(vp.X+vp.W), int(vp.Y+vp.H),
	)).(*ebiten.Image)

	if s.ClearFlag.Get() {
		bg := s.BackgroundColor.Get()
		target.Fill(color.RGBA{
			R: uint8(bg.R * bg.A * 255),
			G: uint8(bg.G * bg.A * 255),
			B: uint8(bg.B * bg.A * 255),
			A: uint8(bg.A * 255),
		})
	}

	pv := s.Camera.ProjectionView.Get()
	model := s.Transformation.Model.Get()
	for _, p := range s.Plots() {
		w.drawPlot(target, st, s, p, pv.Mul(model), vp)
	}
}

func (w *Window) drawPlot(target *ebiten.Image, st *sceneState, s *Scene, p *Plot, clipFromWorld Mat4, vp Rect) {
	if p.Kind == PlotCombined {
		for _, sub := range p.Subplots() {
			w.drawPlot(target, st, s, sub, clipFromWorld, vp)
		}
		return
	}
	buf := st.plots[p]
	if buf == nil || !p.Visible.Get() {
		return
	}
	positions := p.Positions.Get()
	if len(positions) == 0 {
		return
	}

	m := clipFromWorld.Mul(p.Transformation.Model.Get())
	tf := p.Transformation.TransformFunc.Get()
	c := p.Color.Get()

	buf.vertices = buf.vertices[:0]
	buf.indices = buf.indices[:0]

	// Project each data point to viewport pixels.
	project := func(pt Vec3) Vec2 {
		if tf != nil {
			pt = tf(pt)
		}
		clip := m.TransformPoint(pt)
		return Vec2{
			vp.X + (clip.X+1)/2*vp.W,
			vp.Y + (1-(clip.Y+1)/2)*vp.H,
		}
	}

	switch p.Kind {
	case PlotScatter:
		size := p.Attributes.Float("markersize", 8) / 2
		for _, pt := range positions {
			px := project(pt)
			buf.quad(px.X-size, px.Y-size, size*2, size*2, c)
		}
	case PlotLines:
		width := p.Attributes.Float("linewidth", 1)
		for i := 0; i+1 < len(positions); i++ {
			a := project(positions[i])
			b := project(positions[i+1])
			buf.segment(a, b, width, c)
		}
	case PlotMesh:
		for i := 0; i+2 < len(positions); i += 3 {
			buf.triangle(project(positions[i]), project(positions[i+1]), project(positions[i+2]), c)
		}
	case PlotImage:
		if len(positions) >= 2 {
			a := project(positions[0])
			b := project(positions[1])
			buf.quad(min32(a.X, b.X), min32(a.Y, b.Y), abs32(b.X-a.X), abs32(b.Y-a.Y), c)
		}
	}

	if len(buf.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	target.DrawTriangles(buf.vertices, buf.indices, w.whitePixel(), op)
}

// whitePixel returns the shared 1x1 white source image, created on first
// use so importing the package never touches the GPU.
func (w *Window) whitePixel() *ebiten.Image {
	if w.white == nil {
		w.white = ebiten.NewImage(1, 1)
		w.white.Fill(color.White)
	}
	return w.white
}

// --- vertex emission helpers ---

func (b *plotBuffers) vertex(x, y float32, c Color) {
	b.vertices = append(b.vertices, ebiten.Vertex{
		DstX: x, DstY: y,
		SrcX: 0.5, SrcY: 0.5,
		ColorR: c.R, ColorG: c.G, ColorB: c.B, ColorA: c.A,
	})
}

func (b *plotBuffers) quad(x, y, w, h float32, c Color) {
	base := uint16(len(b.vertices))
	b.vertex(x, y, c)
	b.vertex(x+w, y, c)
	b.vertex(x+w, y+h, c)
	b.vertex(x, y+h, c)
	b.indices = append(b.indices, base, base+1, base+2, base, base+2, base+3)
}

func (b *plotBuffers) triangle(p0, p1, p2 Vec2, c Color) {
	base := uint16(len(b.vertices))
	b.vertex(p0.X, p0.Y, c)
	b.vertex(p1.X, p1.Y, c)
	b.vertex(p2.X, p2.Y, c)
	b.indices = append(b.indices, base, base+1, base+2)
}

// segment emits a quad spanning p0-p1 with the given pixel width.
func (b *plotBuffers) segment(p0, p1 Vec2, width float32, c Color) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	length := dx*dx + dy*dy
	if length == 0 {
		return
	}
	length = math32.Sqrt(length)
	// Unit normal scaled to half width.
	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	base := uint16(len(b.vertices))
	b.vertex(p0.X+nx, p0.Y+ny, c)
	b.vertex(p1.X+nx, p1.Y+ny, c)
	b.vertex(p1.X-nx, p1.Y-ny, c)
	b.vertex(p0.X-nx, p0.Y-ny, c)
	b.indices = append(b.indices, base, base+1, base+2, base, base+2, base+3)
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
