package templates

import (
	"fmt"
	"regexp"

	"github.com/a-h/templ"
)

// CommunityCard summarizes a planet in lists.
type CommunityCard struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	Color       string
	Members     int
	Interests   []string
}

// LandingView feeds the landing page.
type LandingView struct {
	Joined   *CommunityCard
	Featured []CommunityCard
}

// GalaxyView feeds the galaxy list page.
type GalaxyView struct {
	Query       string
	Communities []CommunityCard
	// Notice replaces the list, for example when a search has no matches.
	Notice string
	// MyPlanet links the visitor's own planet ahead of the catalog.
	MyPlanet *CommunityCard
}

// CommunityView feeds the community detail page.
type CommunityView struct {
	ID          string
	Name        string
	Location    string
	Tags        []string
	Members     int
	Description string
	Color       string
	DesignKey   string
	IsMine      bool
}

// Swatch is a selectable planet color.
type Swatch struct {
	Name string
	Hex  string
}

// CreateView feeds the planet customizer.
type CreateView struct {
	Color         string
	Surface       string
	HasRings      bool
	HasMoons      bool
	IsPulsing     bool
	RotationLevel int
	MaxRotation   int
	Description   string
	MaxDescLength int
	DesignKey     string
	Swatches      []Swatch
	Surfaces      []string
	CanSuggest    bool
	Error         string
}

// LaunchView feeds the last customizer step.
type LaunchView struct {
	Color       string
	DesignKey   string
	Description string
	MinLength   int
	MaxLength   int
	Error       string
}

// Bubble is one comment on the wall.
type Bubble struct {
	ID        string
	Kind      string
	Author    string
	Preview   string
	Content   string
	TimeLabel string
	Accent    string
	Likes     int
	XPct      float64
	YPct      float64
	FloatDur  float64
	Drift     float64
	Wobble    float64
}

// WallView feeds the comment wall.
type WallView struct {
	Bubbles          []Bubble
	Error            string
	MaxContentLength int
}

// cssValuePattern admits colors and plain tokens only, so stored values
// cannot close the declaration.
var cssValuePattern = regexp.MustCompile(`^[#A-Za-z0-9.%-]+$`)

// cssVar renders one custom property. Unsafe values render nothing.
func cssVar(name, value string) templ.SafeCSS {
	if !cssValuePattern.MatchString(value) {
		return ""
	}
	return templ.SafeCSS(name + ":" + value)
}

func bubbleStyle(b Bubble) templ.SafeCSS {
	style := fmt.Sprintf("left:%.2f%%;top:%.2f%%;--float:%.2fs;--drift:%.1fpx;--wobble:%.2fdeg",
		b.XPct, b.YPct, b.FloatDur, b.Drift, b.Wobble)
	if accent := cssVar("--accent", b.Accent); accent != "" {
		style += ";" + string(accent)
	}
	return templ.SafeCSS(style)
}

func galaxyHeading(query string) string {
	if query == "" {
		return "The Galaxy"
	}
	return "Planets matching “" + query + "”"
}
