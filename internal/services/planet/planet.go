// Package planet holds a visitor's planet design preferences.
package planet

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
)

// Surface is the material painted on a planet.
type Surface string

const (
	SurfaceClay     Surface = "clay"
	SurfaceMoss     Surface = "moss"
	SurfaceSand     Surface = "sand"
	SurfaceLavender Surface = "lavender"
)

// Surfaces lists every surface in picker order.
var Surfaces = []Surface{SurfaceClay, SurfaceMoss, SurfaceSand, SurfaceLavender}

// Valid reports whether s is a known surface.
func (s Surface) Valid() bool {
	switch s {
	case SurfaceClay, SurfaceMoss, SurfaceSand, SurfaceLavender:
		return true
	default:
		return false
	}
}

// Swatch is a named palette color.
type Swatch struct {
	Name string
	Hex  string
}

// Palette lists the picker colors. The first entry is the fallback design.
var Palette = []Swatch{
	{Name: "Peach", Hex: "#FFB7B2"},
	{Name: "Lavender", Hex: "#B28DFF"},
	{Name: "Mint", Hex: "#B2F2BB"},
	{Name: "Sunny", Hex: "#FFEEAD"},
	{Name: "Sky", Hex: "#AEC6CF"},
}

const (
	// MaxRotationLevel is the fastest spin a planet accepts.
	MaxRotationLevel = 10
	// MaxDescriptionLength is counted in runes.
	MaxDescriptionLength = 500
	// MinLaunchDescriptionLength is the shortest description a planet can
	// launch with, in runes after trimming.
	MinLaunchDescriptionLength = 10
)

var (
	ErrInvalidSurface      = apperrors.E(apperrors.KindInvalidInput, "Invalid surface", "Surface must be one of clay, moss, sand or lavender")
	ErrInvalidColor        = apperrors.E(apperrors.KindInvalidInput, "Invalid color", "Color must be a hex value like #FFB7B2")
	ErrInvalidRotation     = apperrors.E(apperrors.KindInvalidInput, "Invalid rotation level", fmt.Sprintf("Rotation level must be between 0 and %d", MaxRotationLevel))
	ErrInvalidBobbing      = apperrors.E(apperrors.KindInvalidInput, "Invalid bobbing intensity", "Bobbing intensity must not be negative")
	ErrDescriptionTooLong  = apperrors.E(apperrors.KindInvalidInput, "Description too long", fmt.Sprintf("Description must be at most %d characters", MaxDescriptionLength))
	ErrDescriptionTooShort = apperrors.E(apperrors.KindInvalidInput, "Description too short", fmt.Sprintf("Description must be at least %d characters", MinLaunchDescriptionLength))
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// State is the planet design shared by the customizer, the galaxy view and
// the community pages.
type State struct {
	Color            string  `json:"color"`
	SurfaceType      Surface `json:"surfaceType"`
	HasRings         bool    `json:"hasRings"`
	HasMoons         bool    `json:"hasMoons"`
	IsPulsing        bool    `json:"isPulsing"`
	BobbingIntensity float64 `json:"bobbingIntensity"`
	RotationLevel    int     `json:"rotationLevel"`
	Description      string  `json:"description"`
}

// Default returns a fresh planet.
func Default() State {
	return State{
		Color:            Palette[0].Hex,
		SurfaceType:      SurfaceClay,
		IsPulsing:        true,
		BobbingIntensity: 1,
		RotationLevel:    2,
	}
}

// SetColor sets a #RRGGBB color.
func (s *State) SetColor(color string) error {
	color = strings.TrimSpace(color)
	if !hexColor.MatchString(color) {
		return ErrInvalidColor
	}
	s.Color = strings.ToUpper(color)
	return nil
}

// SetSurface sets the surface material.
func (s *State) SetSurface(surface Surface) error {
	surface = Surface(strings.ToLower(strings.TrimSpace(string(surface))))
	if !surface.Valid() {
		return ErrInvalidSurface
	}
	s.SurfaceType = surface
	return nil
}

// SetRotationLevel sets the spin speed.
func (s *State) SetRotationLevel(level int) error {
	if level < 0 || level > MaxRotationLevel {
		return ErrInvalidRotation
	}
	s.RotationLevel = level
	return nil
}

// SetBobbingIntensity sets how far the planet floats.
func (s *State) SetBobbingIntensity(intensity float64) error {
	if intensity < 0 || math.IsNaN(intensity) || math.IsInf(intensity, 0) {
		return ErrInvalidBobbing
	}
	s.BobbingIntensity = intensity
	return nil
}

// SetDescription stores the trimmed description.
func (s *State) SetDescription(description string) error {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	s.Description = description
	return nil
}

// SetLaunchDescription stores the description a planet launches with.
// Unlike SetDescription it refuses short or blank text.
func (s *State) SetLaunchDescription(description string) error {
	if utf8.RuneCountInString(strings.TrimSpace(description)) < MinLaunchDescriptionLength {
		return ErrDescriptionTooShort
	}
	return s.SetDescription(description)
}

// ToggleRings flips ring visibility.
func (s *State) ToggleRings() { s.HasRings = !s.HasRings }

// ToggleMoons flips moon visibility.
func (s *State) ToggleMoons() { s.HasMoons = !s.HasMoons }

// DesignKey names the prebuilt design for this state.
func (s State) DesignKey() string {
	return DesignKey(s.Color, s.SurfaceType)
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Color            *string  `json:"color,omitempty"`
	SurfaceType      *Surface `json:"surfaceType,omitempty"`
	HasRings         *bool    `json:"hasRings,omitempty"`
	HasMoons         *bool    `json:"hasMoons,omitempty"`
	IsPulsing        *bool    `json:"isPulsing,omitempty"`
	BobbingIntensity *float64 `json:"bobbingIntensity,omitempty"`
	RotationLevel    *int     `json:"rotationLevel,omitempty"`
	Description      *string  `json:"description,omitempty"`
}

// Apply returns s with p applied. On error s is returned unchanged.
func (s State) Apply(p Patch) (State, error) {
	next := s
	if p.Color != nil {
		if err := next.SetColor(*p.Color); err != nil {
			return s, err
		}
	}
	if p.SurfaceType != nil {
		if err := next.SetSurface(*p.SurfaceType); err != nil {
			return s, err
		}
	}
	if p.RotationLevel != nil {
		if err := next.SetRotationLevel(*p.RotationLevel); err != nil {
			return s, err
		}
	}
	if p.BobbingIntensity != nil {
		if err := next.SetBobbingIntensity(*p.BobbingIntensity); err != nil {
			return s, err
		}
	}
	if p.Description != nil {
		if err := next.SetDescription(*p.Description); err != nil {
			return s, err
		}
	}
	if p.HasRings != nil {
		next.HasRings = *p.HasRings
	}
	if p.HasMoons != nil {
		next.HasMoons = *p.HasMoons
	}
	if p.IsPulsing != nil {
		next.IsPulsing = *p.IsPulsing
	}
	return next, nil
}

// Validate checks a state loaded from outside, such as a stored row.
func (s State) Validate() error {
	_, err := Default().Apply(Patch{
		Color:            &s.Color,
		SurfaceType:      &s.SurfaceType,
		RotationLevel:    &s.RotationLevel,
		BobbingIntensity: &s.BobbingIntensity,
		Description:      &s.Description,
	})
	return err
}

// SwatchName returns the palette name for color, or the first palette
// entry's name when color is not in the palette.
func SwatchName(color string) string {
	color = strings.TrimSpace(color)
	for _, swatch := range Palette {
		if strings.EqualFold(swatch.Hex, color) {
			return swatch.Name
		}
	}
	return Palette[0].Name
}

// DesignKey combines palette and surface names, for example "SkyMoss".
// Unknown surfaces fall back to clay.
func DesignKey(color string, surface Surface) string {
	if !surface.Valid() {
		surface = SurfaceClay
	}
	name := string(surface)
	return SwatchName(color) + strings.ToUpper(name[:1]) + name[1:]
}
