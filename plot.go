package aster

import (
	"errors"
	"fmt"
)

// PlotKind distinguishes drawing behavior for a Plot. Atomic kinds carry
// their own geometry; PlotCombined groups sub-plots and draws nothing
// itself.
type PlotKind uint8

const (
	PlotScatter  PlotKind = iota // point markers at Positions
	PlotLines                    // polyline through Positions
	PlotMesh                     // filled triangles over Positions
	PlotImage                    // textured quad
	PlotCombined                 // composite grouping sub-plots
)

// String returns the kind name for log messages.
func (k PlotKind) String() string {
	switch k {
	case PlotScatter:
		return "scatter"
	case PlotLines:
		return "lines"
	case PlotMesh:
		return "mesh"
	case PlotImage:
		return "image"
	case PlotCombined:
		return "combined"
	default:
		return "unknown"
	}
}

// Plot is a drawable attached to a scene. A single flat struct is used for
// all kinds; composite plots hold sub-plots and manage their registration
// themselves. A plot owns its attributes, listeners, and transformation;
// the scene back-reference is non-owning.
type Plot struct {
	Kind PlotKind
	Name string

	// Attributes is the plot's own hierarchical attribute store.
	Attributes *Theme
	// Transformation is the plot's local transform; backends compose it
	// with the owning scene's model matrix at draw time.
	Transformation *Transformation

	Visible   *Observable[bool]
	Color     *Observable[Color]
	Positions *Observable[[]Vec3]

	parent   *Scene // non-owning; set at attach
	subplots []*Plot
	handles  HandleSet
	freed    bool
}

// NewPlot creates an atomic plot of the given kind.
func NewPlot(kind PlotKind, name string) *Plot {
	return &Plot{
		Kind:           kind,
		Name:           name,
		Attributes:     NewTheme(),
		Transformation: NewTransformation(nil),
		Visible:        NewObservable(true),
		Color:          NewObservable(ColorBlack),
		Positions:      NewObservableFunc[[]Vec3](nil, nil),
	}
}

// NewCombined creates a composite plot grouping the given sub-plots.
func NewCombined(name string, subplots ...*Plot) *Plot {
	p := NewPlot(PlotCombined, name)
	p.subplots = subplots
	return p
}

// Scene returns the scene this plot is attached to, or nil.
func (p *Plot) Scene() *Scene { return p.parent }

// Subplots returns the sub-plot list of a composite plot. The returned
// slice must not be mutated.
func (p *Plot) Subplots() []*Plot { return p.subplots }

// Handles returns the plot's listener handle set. Listeners registered
// through it are released when the plot is detached and freed.
func (p *Plot) Handles() *HandleSet { return &p.handles }

// IsFreed reports whether the plot has been freed by a detach.
func (p *Plot) IsFreed() bool { return p.freed }

// register sets the scene back-reference on a composite plot and all of
// its sub-plots. Atomic plots get their back-reference from Attach
// directly; composites manage their own.
func (p *Plot) register(s *Scene) {
	p.parent = s
	for _, sub := range p.subplots {
		sub.register(s)
	}
}

// free releases the plot's listener handles, recursively frees sub-plots,
// clears the attribute store, and frees the transformation. Idempotent.
func (p *Plot) free() {
	if p.freed {
		return
	}
	p.freed = true
	p.handles.ReleaseAll()
	for _, sub := range p.subplots {
		sub.free()
	}
	p.subplots = nil
	p.Attributes.Clear()
	p.Transformation.Free()
	p.Visible.Clear()
	p.Color.Clear()
	p.Positions.Clear()
	p.parent = nil
}

// ErrPlotNotFound reports a detach of a plot that is not a member of the
// scene's plot list. The scene is left unchanged.
var ErrPlotNotFound = errors.New("aster: plot not attached to scene")

// Attach appends the plot to the scene and registers its render resources
// with every attached backend. Composite plots register themselves and
// their sub-plots; atomic plots get their back-reference set here.
func (s *Scene) Attach(p *Plot) {
	if globalDebug {
		debugCheckFreedPlot(p, "Attach")
	}
	s.plots = append(s.plots, p)
	if p.Kind == PlotCombined {
		p.register(s)
	} else {
		p.parent = s
	}
	for _, scr := range s.screens {
		insertPlot(scr, s, p)
	}
}

// Detach removes the plot from the scene, releases its render resources on
// every attached backend, and frees the plot (its listeners, sub-plots,
// attributes, and transformation). Returns ErrPlotNotFound when the plot
// was not a member; no partial detach occurs in that case.
func (s *Scene) Detach(p *Plot) error {
	before := len(s.plots)
	kept := s.plots[:0]
	for _, q := range s.plots {
		if q != p {
			kept = append(kept, q)
		}
	}
	for i := len(kept); i < before; i++ {
		s.plots[i] = nil
	}
	s.plots = kept
	if len(s.plots) == before {
		return fmt.Errorf("%w: %q", ErrPlotNotFound, p.Name)
	}

	for _, scr := range s.screens {
		deletePlot(scr, s, p)
	}
	p.free()
	return nil
}

// insertPlot invokes a backend's insertion hook. Backend failures are
// absorbed locally so one backend's limitation cannot block others.
func insertPlot(scr Screen, s *Scene, p *Plot) {
	if err := scr.InsertPlot(s, p); err != nil {
		if errors.Is(err, ErrUnsupported) {
			notef("backend %T does not support plot insertion; skipping %q", scr, p.Name)
			return
		}
		warnf("backend %T failed to insert plot %q: %v", scr, p.Name, err)
	}
}

// deletePlot invokes a backend's deletion hook with the same absorption
// policy as insertPlot.
func deletePlot(scr Screen, s *Scene, p *Plot) {
	if err := scr.DeletePlot(s, p); err != nil {
		if errors.Is(err, ErrUnsupported) {
			notef("backend %T does not support incremental deletion; skipping %q", scr, p.Name)
			return
		}
		warnf("backend %T failed to delete plot %q: %v", scr, p.Name, err)
	}
}
