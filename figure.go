package aster

// GridLayout divides a figure's pixel area into a rows x cols grid of
// cells with uniform gaps. It is deliberately thin: axis placement and
// nested layouts live outside this core.
type GridLayout struct {
	Rows, Cols int
	Gap        float32
}

// NewGridLayout creates a layout with the given dimensions. Rows and cols
// below 1 are clamped to 1.
func NewGridLayout(rows, cols int) *GridLayout {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return &GridLayout{Rows: rows, Cols: cols}
}

// Cell returns the pixel rectangle of cell (row, col) within area.
// Row 0 is the top row.
func (g *GridLayout) Cell(row, col int, area Rect) Rect {
	cw := (area.W - g.Gap*float32(g.Cols-1)) / float32(g.Cols)
	ch := (area.H - g.Gap*float32(g.Rows-1)) / float32(g.Rows)
	return Rect{
		X: area.X + float32(col)*(cw+g.Gap),
		Y: area.Y + float32(row)*(ch+g.Gap),
		W: cw,
		H: ch,
	}
}

// Figure is the user-facing handle binding a root scene to a layout and a
// registry of content (axes, legends, colorbars created by higher layers).
// Constructing a figure registers it as the process-wide current figure.
type Figure struct {
	Scene  *Scene
	Layout *GridLayout

	content     []any
	currentAxis any
}

// currentFigure is the process-wide current figure, superseded by each
// NewFigure call. No teardown rule applies beyond replacement.
var currentFigure *Figure

// CurrentFigure returns the most recently constructed figure, or nil.
func CurrentFigure() *Figure { return currentFigure }

// NewFigure constructs a figure owning a fresh root scene built from cfg
// and a single-cell layout, and registers it as the current figure.
func NewFigure(cfg SceneConfig) (*Figure, error) {
	scene, err := NewScene(cfg)
	if err != nil {
		return nil, err
	}
	f := &Figure{
		Scene:  scene,
		Layout: NewGridLayout(1, 1),
	}
	currentFigure = f
	return f, nil
}

// Register appends content (an axis, legend, or similar) to the figure's
// registry and makes it the current axis.
func (f *Figure) Register(content any) {
	f.content = append(f.content, content)
	f.currentAxis = content
}

// Content returns the registered content in insertion order. The returned
// slice must not be mutated.
func (f *Figure) Content() []any { return f.content }

// CurrentAxis returns the active axis reference, or nil.
func (f *Figure) CurrentAxis() any { return f.currentAxis }

// SetCurrentAxis sets the active axis reference.
func (f *Figure) SetCurrentAxis(axis any) { f.currentAxis = axis }

// Teardown tears down the figure's scene and clears the registry. If this
// figure is the current figure, the slot is left pointing at it (a husk)
// until the next construction, matching the process-wide replacement rule.
func (f *Figure) Teardown() {
	f.Scene.Teardown()
	f.content = nil
	f.currentAxis = nil
}
