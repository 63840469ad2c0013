// Package storage defines persistence contracts for the community catalog.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

var (
	// ErrNotFound indicates a requested community is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a community with the same id already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Community is one planet in the galaxy catalog.
type Community struct {
	ID          string
	Name        string
	Description string
	Interests   []string
	ImageURL    string
	Members     int
	Color       string
	Location    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CommunityPage stores one page of communities ordered by id.
type CommunityPage struct {
	Communities   []Community
	NextPageToken string
}

// CommunityStore persists catalog communities.
//
// AllCommunities returns communities in catalog order, the order in which
// they were first stored. Search ranking relies on it for stable ties.
type CommunityStore interface {
	CreateCommunity(ctx context.Context, community Community) error
	PutCommunity(ctx context.Context, community Community) error
	GetCommunity(ctx context.Context, id string) (Community, error)
	ListCommunities(ctx context.Context, pageSize int, pageToken string) (CommunityPage, error)
	AllCommunities(ctx context.Context) ([]Community, error)
	AddMembers(ctx context.Context, id string, delta int) (Community, error)
}

// Normalize trims text fields, lower-cases and de-duplicates interests and
// fills the default image path. It validates the result.
func Normalize(community Community) (Community, error) {
	community.ID = strings.TrimSpace(community.ID)
	community.Name = strings.TrimSpace(community.Name)
	community.Description = strings.TrimSpace(community.Description)
	community.ImageURL = strings.TrimSpace(community.ImageURL)
	community.Color = strings.ToUpper(strings.TrimSpace(community.Color))
	community.Location = strings.TrimSpace(community.Location)

	interests := make([]string, 0, len(community.Interests))
	for _, interest := range community.Interests {
		interest = strings.ToLower(strings.TrimSpace(interest))
		if interest == "" || slices.Contains(interests, interest) {
			continue
		}
		interests = append(interests, interest)
	}
	community.Interests = interests

	if community.ID == "" {
		return Community{}, fmt.Errorf("community id is required")
	}
	if strings.ContainsAny(community.ID, " /?#") {
		return Community{}, fmt.Errorf("community id %q must be a slug", community.ID)
	}
	if community.Name == "" {
		return Community{}, fmt.Errorf("community name is required")
	}
	if community.Members < 0 {
		return Community{}, fmt.Errorf("community members must not be negative")
	}
	if community.Color != "" && !colorPattern.MatchString(community.Color) {
		return Community{}, fmt.Errorf("community color %q must be #RRGGBB", community.Color)
	}
	if community.ImageURL == "" {
		community.ImageURL = "/planets/" + community.ID + ".png"
	}
	return community, nil
}

// Stamp fills missing timestamps, keeping whichever one was provided.
func Stamp(community Community, now time.Time) Community {
	createdAt := community.CreatedAt.UTC()
	updatedAt := community.UpdatedAt.UTC()
	switch {
	case createdAt.IsZero() && updatedAt.IsZero():
		createdAt = now.UTC()
		updatedAt = createdAt
	case createdAt.IsZero():
		createdAt = updatedAt
	case updatedAt.IsZero():
		updatedAt = createdAt
	}
	community.CreatedAt = createdAt
	community.UpdatedAt = updatedAt
	return community
}
