package storage

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeCleansFields(t *testing.T) {
	t.Parallel()

	got, err := Normalize(Community{
		ID:          " bicycle-riders ",
		Name:        " Bicycle Riders ",
		Description: "Cycling & Adventure ",
		Interests:   []string{"Bicycle", " cycling", "bicycle", ""},
		Color:       "#b2f2bb",
		Members:     621,
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	want := Community{
		ID:          "bicycle-riders",
		Name:        "Bicycle Riders",
		Description: "Cycling & Adventure",
		Interests:   []string{"bicycle", "cycling"},
		ImageURL:    "/planets/bicycle-riders.png",
		Members:     621,
		Color:       "#B2F2BB",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeRejectsInvalidCommunities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		community Community
	}{
		{name: "missing id", community: Community{Name: "Nameless"}},
		{name: "id with spaces", community: Community{ID: "two words", Name: "X"}},
		{name: "missing name", community: Community{ID: "x"}},
		{name: "negative members", community: Community{ID: "x", Name: "X", Members: -1}},
		{name: "bad color", community: Community{ID: "x", Name: "X", Color: "peach"}},
	}
	for _, tc := range tests {
		if _, err := Normalize(tc.community); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestStampFillsTimestamps(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	got := Stamp(Community{}, now)
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("Stamp() = %v/%v, want %v", got.CreatedAt, got.UpdatedAt, now)
	}

	earlier := now.Add(-time.Hour)
	got = Stamp(Community{CreatedAt: earlier}, now)
	if !got.UpdatedAt.Equal(earlier) {
		t.Fatalf("updated_at = %v, want %v", got.UpdatedAt, earlier)
	}
}
