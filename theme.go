package aster

// Theme is a hierarchical attribute store: string keys map to typed leaf
// values or to nested groups. Scenes inherit a snapshot copy of their
// parent's theme at creation time; later edits to the parent do not affect
// an already-created child.
type Theme struct {
	attrs map[string]any // leaf value or *Theme group
}

// NewTheme creates an empty theme.
func NewTheme() *Theme {
	return &Theme{attrs: map[string]any{}}
}

// Set stores a leaf value or nested group under key.
func (t *Theme) Set(key string, v any) {
	if t.attrs == nil {
		t.attrs = map[string]any{}
	}
	t.attrs[key] = v
}

// Get returns the raw value stored under key.
func (t *Theme) Get(key string) (any, bool) {
	v, ok := t.attrs[key]
	return v, ok
}

// Group returns the nested group stored under key, or nil if the key is
// absent or holds a leaf value.
func (t *Theme) Group(key string) *Theme {
	if g, ok := t.attrs[key].(*Theme); ok {
		return g
	}
	return nil
}

// Len returns the number of entries at this level.
func (t *Theme) Len() int {
	return len(t.attrs)
}

// Merge deep-merges over into t: nested groups merge recursively, leaf
// values from over overwrite values in t. A group in over replaces a leaf
// of the same key in t (and vice versa).
func (t *Theme) Merge(over *Theme) {
	if over == nil {
		return
	}
	if t.attrs == nil {
		t.attrs = map[string]any{}
	}
	for key, v := range over.attrs {
		og, overIsGroup := v.(*Theme)
		tg, baseIsGroup := t.attrs[key].(*Theme)
		if overIsGroup && baseIsGroup {
			tg.Merge(og)
			continue
		}
		if overIsGroup {
			t.attrs[key] = og.Copy()
			continue
		}
		t.attrs[key] = v
	}
}

// Copy returns a deep copy of the theme. Nested groups are copied
// recursively; leaf values are copied by assignment.
func (t *Theme) Copy() *Theme {
	out := NewTheme()
	for key, v := range t.attrs {
		if g, ok := v.(*Theme); ok {
			out.attrs[key] = g.Copy()
			continue
		}
		out.attrs[key] = v
	}
	return out
}

// Clear removes every entry.
func (t *Theme) Clear() {
	t.attrs = map[string]any{}
}

// Float returns the float32 stored under key, or def if absent or of a
// different type.
func (t *Theme) Float(key string, def float32) float32 {
	if v, ok := t.attrs[key].(float32); ok {
		return v
	}
	return def
}

// Bool returns the bool stored under key, or def.
func (t *Theme) Bool(key string, def bool) bool {
	if v, ok := t.attrs[key].(bool); ok {
		return v
	}
	return def
}

// Color returns the Color stored under key, or def.
func (t *Theme) Color(key string, def Color) Color {
	if v, ok := t.attrs[key].(Color); ok {
		return v
	}
	return def
}

// Vec2 returns the Vec2 stored under key, or def.
func (t *Theme) Vec2(key string, def Vec2) Vec2 {
	if v, ok := t.attrs[key].(Vec2); ok {
		return v
	}
	return def
}

// Theme keys consumed by scene construction.
const (
	themeResolution      = "resolution"
	themeBackgroundColor = "backgroundcolor"
	themeClear           = "clear"
	themeVisible         = "visible"
	themeLightPosition   = "lightposition"
	themeAmbient         = "ambient"
	themeSSAO            = "ssao"
	themeSSAORadius      = "radius"
	themeSSAOBias        = "bias"
	themeSSAOBlur        = "blur"
)

// DefaultTheme returns the baseline theme every root scene starts from.
func DefaultTheme() *Theme {
	ssao := NewTheme()
	ssao.Set(themeSSAORadius, float32(0.5))
	ssao.Set(themeSSAOBias, float32(0.025))
	ssao.Set(themeSSAOBlur, float32(2))

	t := NewTheme()
	t.Set(themeResolution, Vec2{800, 600})
	t.Set(themeBackgroundColor, ColorWhite)
	t.Set(themeVisible, true)
	t.Set(themeLightPosition, LightPositionEye)
	t.Set(themeAmbient, Color{0.55, 0.55, 0.55, 1})
	t.Set(themeSSAO, ssao)
	return t
}
