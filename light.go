package aster

import (
	"errors"
	"fmt"
)

// LightKind tags the closed core set of light variants.
type LightKind uint8

const (
	LightPoint       LightKind = iota // positional light with falloff
	LightAmbient                      // uniform non-directional fill
	LightEnvironment                  // image-based environment lighting
)

// String returns the kind name for log messages.
func (k LightKind) String() string {
	switch k {
	case LightPoint:
		return "point"
	case LightAmbient:
		return "ambient"
	case LightEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

// Light is a shading input consumed by backends. The core set is
// PointLight, AmbientLight, and EnvironmentLight; user code may add
// variants by implementing this interface.
type Light interface {
	Kind() LightKind
}

// PointLight is a positional light.
type PointLight struct {
	Position *Observable[Vec3]
	Color    *Observable[Color]
}

// NewPointLight creates a point light at the given position.
func NewPointLight(position Vec3, color Color) *PointLight {
	return &PointLight{
		Position: NewObservable(position),
		Color:    NewObservable(color),
	}
}

// Kind implements Light.
func (*PointLight) Kind() LightKind { return LightPoint }

// AmbientLight is a uniform fill light.
type AmbientLight struct {
	Color *Observable[Color]
}

// NewAmbientLight creates an ambient light with the given color.
func NewAmbientLight(color Color) *AmbientLight {
	return &AmbientLight{Color: NewObservable(color)}
}

// Kind implements Light.
func (*AmbientLight) Kind() LightKind { return LightAmbient }

// EnvironmentLight is image-based lighting with an intensity multiplier.
type EnvironmentLight struct {
	Intensity *Observable[float32]
}

// NewEnvironmentLight creates an environment light.
func NewEnvironmentLight(intensity float32) *EnvironmentLight {
	return &EnvironmentLight{Intensity: NewObservable(intensity)}
}

// Kind implements Light.
func (*EnvironmentLight) Kind() LightKind { return LightEnvironment }

// Symbolic lightposition theme keywords.
const (
	// LightPositionEye places the point light at the camera eye position
	// and keeps it there as the camera moves.
	LightPositionEye = "eyeposition"
	// LightPositionCenter places the point light at the scene origin.
	LightPositionCenter = "center"
)

// ErrBadLightPosition reports a lightposition theme value that is neither a
// recognized keyword nor a 3-vector. This is a configuration error: scene
// construction aborts.
var ErrBadLightPosition = errors.New("aster: invalid lightposition theme value")

// lightsFromTheme derives the default light list from a merged theme: one
// point light placed per the lightposition attribute plus one ambient light
// if the theme provides an ambient color. A point light whose position is
// the eyeposition keyword is linked to the camera's eye; the link handle is
// recorded in owner.
func lightsFromTheme(theme *Theme, cam *Camera, owner *HandleSet) ([]Light, error) {
	var lights []Light

	if raw, ok := theme.Get(themeLightPosition); ok {
		switch v := raw.(type) {
		case string:
			switch v {
			case LightPositionEye:
				pl := NewPointLight(cam.EyePosition.Get(), ColorWhite)
				Link(owner, cam.EyePosition, pl.Position)
				lights = append(lights, pl)
			case LightPositionCenter:
				lights = append(lights, NewPointLight(Vec3{}, ColorWhite))
			default:
				return nil, fmt.Errorf("%w: unknown keyword %q", ErrBadLightPosition, v)
			}
		case Vec3:
			lights = append(lights, NewPointLight(v, ColorWhite))
		default:
			return nil, fmt.Errorf("%w: %T", ErrBadLightPosition, raw)
		}
	}

	if ambient, ok := theme.Get(themeAmbient); ok {
		c, isColor := ambient.(Color)
		if !isColor {
			return nil, fmt.Errorf("aster: invalid ambient theme value: %T", ambient)
		}
		lights = append(lights, NewAmbientLight(c))
	}

	return lights, nil
}

// GetOneLight returns the first light of the given kind, in insertion
// order. When more than one matches, a multiplicity warning is logged and
// the first match is used. Returns false when no light of the kind exists.
func (s *Scene) GetOneLight(kind LightKind) (Light, bool) {
	var found Light
	count := 0
	for _, l := range s.lights {
		if l.Kind() != kind {
			continue
		}
		if found == nil {
			found = l
		}
		count++
	}
	if count > 1 {
		warnf("scene has %d %s lights, only one is supported; using the first", count, kind)
	}
	return found, found != nil
}
