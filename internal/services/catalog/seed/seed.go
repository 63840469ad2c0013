// Package seed provides the default galaxy catalog and loaders for operator
// supplied catalogs.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/cozy.galaxy/internal/services/catalog/storage"
	"gopkg.in/yaml.v3"
)

// Default returns the built-in catalog in display order.
func Default() []storage.Community {
	return []storage.Community{
		{ID: "urban-oasis", Name: "Urban Oasis", Description: "Rooftop Gardening", Interests: []string{"gardening", "urban", "plants", "sustainability", "green"}, Members: 342, Color: "#FFB7B2"},
		{ID: "midnight-echo", Name: "Midnight Echo", Description: "Night Coding", Interests: []string{"coding", "programming", "development", "tech", "night"}, Members: 567, Color: "#B2B7FF"},
		{ID: "analog-soul", Name: "Analog Soul", Description: "Film Photography", Interests: []string{"photography", "film", "analog", "art", "camera"}, Members: 234, Color: "#FFEEAD"},
		{ID: "nomad-pulse", Name: "Nomad Pulse", Description: "Digital Nomad", Interests: []string{"travel", "remote work", "nomad", "adventure", "digital"}, Members: 456, Color: "#96E6B3"},
		{ID: "kindness-core", Name: "Kindness Core", Description: "Neighborhood Help", Interests: []string{"community", "help", "kindness", "volunteering", "neighborhood"}, Members: 789, Color: "#FFD8BE"},
		{ID: "neon-valley", Name: "Neon Valley", Description: "Cyberpunk Art", Interests: []string{"art", "cyberpunk", "digital art", "neon", "design"}, Members: 423, Color: "#B2E2F2"},
		{ID: "silent-peak", Name: "Silent Peak", Description: "Zen Meditation", Interests: []string{"meditation", "zen", "mindfulness", "peace", "wellness"}, Members: 298, Color: "#A1887F"},
		{ID: "cloud-seven", Name: "Cloud Seven", Description: "Dream Journaling", Interests: []string{"journaling", "dreams", "writing", "creativity", "self-reflection"}, Members: 512, Color: "#D4A373"},
		{ID: "bicycle-riders", Name: "Bicycle Riders", Description: "Cycling & Adventure", Interests: []string{"bicycle", "cycling", "sports", "outdoor", "fitness"}, Members: 621, Color: "#B2F2BB", Location: "Singapore, East Coast"},
		{ID: "book-worms", Name: "Book Worms", Description: "Reading & Literature", Interests: []string{"books", "reading", "literature", "stories", "learning"}, Members: 834, Color: "#B28DFF"},
		{ID: "music-makers", Name: "Music Makers", Description: "Music Creation & Production", Interests: []string{"music", "production", "instruments", "audio", "creativity"}, Members: 445, Color: "#FFB6E6"},
		{ID: "game-forge", Name: "Game Forge", Description: "Game Development", Interests: []string{"games", "gamedev", "development", "programming", "design"}, Members: 723, Color: "#AEC6CF"},
	}
}

type catalogFile struct {
	Communities []communityEntry `yaml:"communities"`
}

type communityEntry struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Interests   []string `yaml:"interests"`
	ImageURL    string   `yaml:"imageUrl"`
	Members     int      `yaml:"members"`
	Color       string   `yaml:"color"`
	Location    string   `yaml:"location"`
}

// LoadYAML decodes and validates a catalog file. Ids must be unique.
func LoadYAML(r io.Reader) ([]storage.Community, error) {
	if r == nil {
		return nil, errors.New("catalog reader is required")
	}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file catalogFile
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog is empty")
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(file.Communities) == 0 {
		return nil, errors.New("catalog has no communities")
	}

	seen := make(map[string]struct{}, len(file.Communities))
	communities := make([]storage.Community, 0, len(file.Communities))
	for i, entry := range file.Communities {
		community, err := storage.Normalize(storage.Community{
			ID:          entry.ID,
			Name:        entry.Name,
			Description: entry.Description,
			Interests:   entry.Interests,
			ImageURL:    entry.ImageURL,
			Members:     entry.Members,
			Color:       entry.Color,
			Location:    entry.Location,
		})
		if err != nil {
			return nil, fmt.Errorf("community %d: %w", i+1, err)
		}
		if _, ok := seen[community.ID]; ok {
			return nil, fmt.Errorf("community %d: duplicate id %q", i+1, community.ID)
		}
		seen[community.ID] = struct{}{}
		communities = append(communities, community)
	}
	return communities, nil
}

// Apply upserts communities into store in order.
func Apply(ctx context.Context, store storage.CommunityStore, communities []storage.Community) error {
	if store == nil {
		return errors.New("community store is required")
	}
	for _, community := range communities {
		if err := store.PutCommunity(ctx, community); err != nil {
			return fmt.Errorf("seed community %s: %w", strings.TrimSpace(community.ID), err)
		}
	}
	return nil
}
