package aster

import (
	"errors"
	"testing"
)

// recordScreen is an in-memory Screen that records every hook invocation.
type recordScreen struct {
	inserted     []*Plot
	deleted      []*Plot
	sceneDeletes int

	unsupportedInsert      bool
	unsupportedDelete      bool
	unsupportedSceneDelete bool
}

func (r *recordScreen) InsertPlot(s *Scene, p *Plot) error {
	if r.unsupportedInsert {
		return ErrUnsupported
	}
	r.inserted = append(r.inserted, p)
	return nil
}

func (r *recordScreen) DeletePlot(s *Scene, p *Plot) error {
	if r.unsupportedDelete {
		return ErrUnsupported
	}
	r.deleted = append(r.deleted, p)
	return nil
}

func (r *recordScreen) DeleteScene(s *Scene) error {
	if r.unsupportedSceneDelete {
		return ErrUnsupported
	}
	r.sceneDeletes++
	return nil
}

func testScene(t *testing.T) *Scene {
	t.Helper()
	s, err := NewScene(SceneConfig{})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestAttachSetsBackReference(t *testing.T) {
	s := testScene(t)
	p := NewPlot(PlotScatter, "pts")

	s.Attach(p)

	if p.Scene() != s {
		t.Error("plot back-reference not set")
	}
	if len(s.Plots()) != 1 || s.Plots()[0] != p {
		t.Errorf("Plots() = %v, want [p]", s.Plots())
	}
}

func TestAttachCombinedRegistersSubplots(t *testing.T) {
	s := testScene(t)
	sub1 := NewPlot(PlotLines, "l")
	sub2 := NewPlot(PlotScatter, "s")
	combined := NewCombined("group", sub1, sub2)

	s.Attach(combined)

	if combined.Scene() != s {
		t.Error("combined plot did not register itself")
	}
	if sub1.Scene() != s || sub2.Scene() != s {
		t.Error("sub-plots did not get the scene back-reference")
	}
	if len(s.Plots()) != 1 {
		t.Errorf("len(Plots()) = %d, want 1 (sub-plots are owned by the composite)", len(s.Plots()))
	}
}

func TestAttachDetachRoundTrip(t *testing.T) {
	s := testScene(t)
	a := NewPlot(PlotScatter, "a")
	b := NewPlot(PlotLines, "b")
	c := NewPlot(PlotMesh, "c")
	s.Attach(a)
	s.Attach(b)

	s.Attach(c)
	if err := s.Detach(c); err != nil {
		t.Fatalf("Detach: %v", err)
	}

	plots := s.Plots()
	if len(plots) != 2 || plots[0] != a || plots[1] != b {
		t.Errorf("Plots() = %v, want [a b] in original order", plots)
	}
}

func TestDetachMissingFails(t *testing.T) {
	s := testScene(t)
	s.Attach(NewPlot(PlotScatter, "present"))
	missing := NewPlot(PlotLines, "missing")

	err := s.Detach(missing)
	if !errors.Is(err, ErrPlotNotFound) {
		t.Errorf("err = %v, want ErrPlotNotFound", err)
	}
	if len(s.Plots()) != 1 {
		t.Errorf("len(Plots()) = %d after failed detach, want 1 (no partial detach)", len(s.Plots()))
	}
	if missing.IsFreed() {
		t.Error("missing plot was freed by a failed detach")
	}
}

func TestAttachDetachFanOut(t *testing.T) {
	scr1 := &recordScreen{}
	scr2 := &recordScreen{}
	s, err := NewScene(SceneConfig{Screens: []Screen{scr1, scr2}})
	if err != nil {
		t.Fatal(err)
	}
	p := NewPlot(PlotScatter, "pts")

	s.Attach(p)
	if len(scr1.inserted) != 1 || len(scr2.inserted) != 1 {
		t.Fatalf("insert fan-out: %d and %d, want 1 and 1", len(scr1.inserted), len(scr2.inserted))
	}

	if err := s.Detach(p); err != nil {
		t.Fatal(err)
	}
	if len(scr1.deleted) != 1 || len(scr2.deleted) != 1 {
		t.Errorf("delete fan-out: %d and %d, want 1 and 1", len(scr1.deleted), len(scr2.deleted))
	}
}

func TestUnsupportedBackendDoesNotBlockOthers(t *testing.T) {
	limited := &recordScreen{unsupportedInsert: true, unsupportedDelete: true}
	full := &recordScreen{}
	s, err := NewScene(SceneConfig{Screens: []Screen{limited, full}})
	if err != nil {
		t.Fatal(err)
	}
	p := NewPlot(PlotScatter, "pts")

	s.Attach(p)
	if err := s.Detach(p); err != nil {
		t.Fatalf("Detach aborted by unsupported backend: %v", err)
	}

	if len(full.inserted) != 1 || len(full.deleted) != 1 {
		t.Errorf("full backend hooks: %d inserts, %d deletes, want 1 and 1",
			len(full.inserted), len(full.deleted))
	}
}

func TestDetachFreesPlot(t *testing.T) {
	s := testScene(t)
	sub := NewPlot(PlotLines, "sub")
	p := NewCombined("group", sub)
	s.Attach(p)

	// A listener registered on behalf of the plot must die with it.
	src := NewObservable(0)
	calls := 0
	src.On(p.Handles(), func(int) { calls++ })
	p.Attributes.Set("markersize", float32(4))

	if err := s.Detach(p); err != nil {
		t.Fatal(err)
	}

	if !p.IsFreed() || !sub.IsFreed() {
		t.Error("plot or sub-plot not freed after detach")
	}
	src.Set(1)
	if calls != 0 {
		t.Error("plot listener fired after detach")
	}
	if p.Attributes.Len() != 0 {
		t.Error("attributes not cleared after detach")
	}
	if p.Scene() != nil {
		t.Error("scene back-reference not cleared")
	}
}

func TestPlotKindString(t *testing.T) {
	tests := []struct {
		kind PlotKind
		want string
	}{
		{PlotScatter, "scatter"},
		{PlotLines, "lines"},
		{PlotMesh, "mesh"},
		{PlotImage, "image"},
		{PlotCombined, "combined"},
		{PlotKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
