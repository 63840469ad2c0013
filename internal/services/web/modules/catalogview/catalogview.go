// Package catalogview maps catalog and planet state onto page views shared
// by several modules.
package catalogview

import (
	"strings"

	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/search"
	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
	"github.com/louisbranch/cozy.galaxy/internal/services/web/templates"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Copy for the visitor's own planet.
const (
	MyPlanetName        = "My New Colony"
	MyPlanetLocation    = "Unknown Nebula"
	MyPlanetDescription = "A brand-new world waiting for its first citizens."
	MyPlanetMembers     = 1
)

// MyPlanetTags label the visitor's planet.
var MyPlanetTags = []string{"New", "Custom"}

// Card maps a catalog community onto a list card.
func Card(c storage.Community) templates.CommunityCard {
	return templates.CommunityCard{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		Color:       c.Color,
		Members:     c.Members,
		Interests:   c.Interests,
	}
}

// Cards maps communities in order.
func Cards(communities []storage.Community) []templates.CommunityCard {
	cards := make([]templates.CommunityCard, 0, len(communities))
	for _, c := range communities {
		cards = append(cards, Card(c))
	}
	return cards
}

// ResultCards maps search results, which carry no member counts.
func ResultCards(results []search.Result) []templates.CommunityCard {
	cards := make([]templates.CommunityCard, 0, len(results))
	for _, r := range results {
		cards = append(cards, templates.CommunityCard{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			ImageURL:    r.ImageURL,
		})
	}
	return cards
}

// MyPlanetCard maps the visitor's planet onto a list card.
func MyPlanetCard(state planet.State) templates.CommunityCard {
	return templates.CommunityCard{
		ID:          routepath.MyPlanetID,
		Name:        MyPlanetName,
		Description: myPlanetDescription(state),
		Color:       state.Color,
		Members:     MyPlanetMembers,
	}
}

// Community maps a catalog community onto its detail view. Interests become
// title-cased tags.
func Community(c storage.Community) templates.CommunityView {
	title := cases.Title(language.English)
	tags := make([]string, 0, len(c.Interests))
	for _, interest := range c.Interests {
		tags = append(tags, title.String(interest))
	}
	return templates.CommunityView{
		ID:          c.ID,
		Name:        c.Name,
		Location:    c.Location,
		Tags:        tags,
		Members:     c.Members,
		Description: c.Description,
		Color:       c.Color,
	}
}

// MyPlanet maps the visitor's planet onto a detail view.
func MyPlanet(state planet.State) templates.CommunityView {
	return templates.CommunityView{
		ID:          routepath.MyPlanetID,
		Name:        MyPlanetName,
		Location:    MyPlanetLocation,
		Tags:        append([]string(nil), MyPlanetTags...),
		Members:     MyPlanetMembers,
		Description: myPlanetDescription(state),
		Color:       state.Color,
		DesignKey:   state.DesignKey(),
		IsMine:      true,
	}
}

func myPlanetDescription(state planet.State) string {
	if description := strings.TrimSpace(state.Description); description != "" {
		return description
	}
	return MyPlanetDescription
}
