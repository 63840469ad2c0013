// Package comments keeps the galaxy comment wall: floating bubbles visitors
// can post, like and drag around.
package comments

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
)

// Kind separates announcements from visitor posts.
type Kind string

const (
	KindSystem Kind = "SYSTEM"
	KindUser   Kind = "USER"
)

const (
	// MaxContentLength is counted in runes.
	MaxContentLength = 280
	// MaxComments bounds the wall; the oldest visitor posts go first.
	MaxComments = 200

	// PostAuthor and PostAccent label bubbles posted through the wall.
	PostAuthor = "You"
	PostAccent = "#FFB7B2"
)

var (
	ErrEmptyContent    = apperrors.E(apperrors.KindInvalidInput, "Comment is empty", "Write something before sending")
	ErrContentTooLong  = apperrors.E(apperrors.KindInvalidInput, "Comment too long", fmt.Sprintf("Comments must be at most %d characters", MaxContentLength))
	ErrInvalidPosition = apperrors.E(apperrors.KindInvalidInput, "Invalid position", "Positions must be finite percentages")
	ErrNotFound        = apperrors.E(apperrors.KindNotFound, "Comment not found", "That bubble has drifted away")
)

// Comment is one bubble. Positions are percentages of the wall.
type Comment struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"type"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Accent    string    `json:"accent"`
	Likes     int       `json:"likes"`
	XPct      float64   `json:"xPct"`
	YPct      float64   `json:"yPct"`
	FloatDur  float64   `json:"floatDur"`
	Drift     float64   `json:"drift"`
	Wobble    float64   `json:"wobble"`
	CreatedAt time.Time `json:"createdAt"`
}

// Preview returns the collapsed bubble text.
func (c Comment) Preview() string {
	if c.Kind == KindSystem {
		return Shorten(c.Content, 90)
	}
	return Shorten(c.Content, 74)
}

// Shorten trims s and cuts it to max runes, the last being an ellipsis.
func Shorten(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// TimeLabel renders a relative age such as "just now" or "22m ago".
func TimeLabel(createdAt, now time.Time) string {
	age := now.Sub(createdAt)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age/time.Minute))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(age/(24*time.Hour)))
	}
}

// ClampPosition keeps a dragged bubble inside the wall.
func ClampPosition(xPct, yPct float64) (float64, float64) {
	return clamp(xPct, 6, 94), clamp(yPct, 10, 90)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Option configures a Wall.
type Option func(*Wall)

// WithRand sets the randomness used for bubble placement.
func WithRand(r *rand.Rand) Option {
	return func(w *Wall) {
		if r != nil {
			w.rand = r
		}
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(w *Wall) {
		if now != nil {
			w.now = now
		}
	}
}

// WithIDs sets the id generator.
func WithIDs(newID func() string) Option {
	return func(w *Wall) {
		if newID != nil {
			w.newID = newID
		}
	}
}

// WithoutSeed starts the wall empty.
func WithoutSeed() Option {
	return func(w *Wall) { w.seeded = false }
}

// Wall is a concurrency-safe set of bubbles in posting order.
type Wall struct {
	mu       sync.RWMutex
	comments []Comment
	rand     *rand.Rand
	now      func() time.Time
	newID    func() string
	seeded   bool
}

// NewWall returns a wall holding the welcome bubbles.
func NewWall(opts ...Option) *Wall {
	w := &Wall{
		rand:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:    time.Now,
		newID:  uuid.NewString,
		seeded: true,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.seeded {
		now := w.now()
		for _, s := range welcome {
			w.comments = append(w.comments, w.spawn(Comment{
				Kind:      s.kind,
				Author:    s.author,
				Content:   s.content,
				Accent:    s.accent,
				Likes:     s.likes,
				CreatedAt: now.Add(-s.age),
			}))
		}
	}
	return w
}

var welcome = []struct {
	kind    Kind
	author  string
	content string
	accent  string
	likes   int
	age     time.Duration
}{
	{KindSystem, "System", "✨ “Food & Café” planet was founded. A cozy place for late-night suppers.", "#FFD682", 24, 0},
	{KindUser, "Nova_27", "This is such a nice place. I felt less lonely after joining.", "#FFB6E6", 18, 3 * time.Minute},
	{KindSystem, "System", "🚀 “Outdoor Activities” welcomed 30 new stars today. Say hi to someone new!", "#7EB8E8", 11, 10 * time.Minute},
	{KindUser, "StudyLamp", "Anyone up for a Pomodoro circle later? Quiet company helps a lot.", "#B19CD9", 9, 22 * time.Minute},
	{KindUser, "MochiTrail", "I joined for hiking but stayed for the wholesome vibes 🌙", "#E0BBE4", 14, 45 * time.Minute},
}

// spawn places a new bubble and picks its motion. Callers hold mu or own w.
func (w *Wall) spawn(c Comment) Comment {
	c.ID = w.newID()
	c.XPct = clamp(10+w.rand.Float64()*80, 8, 92)
	c.YPct = clamp(18+w.rand.Float64()*62, 16, 86)
	c.FloatDur = 7 + w.rand.Float64()*8
	c.Drift = 22 + w.rand.Float64()*28
	c.Wobble = 2 + w.rand.Float64()*3.5
	return c
}

// Now returns the wall clock, for rendering time labels.
func (w *Wall) Now() time.Time {
	return w.now()
}

// List returns every bubble in posting order.
func (w *Wall) List() []Comment {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.comments)
}

// Get returns one bubble.
func (w *Wall) Get(id string) (Comment, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	i := w.indexLocked(id)
	if i < 0 {
		return Comment{}, ErrNotFound
	}
	return w.comments[i], nil
}

// Post adds a visitor bubble.
func (w *Wall) Post(content string) (Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Comment{}, ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return Comment{}, ErrContentTooLong
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	c := w.spawn(Comment{
		Kind:      KindUser,
		Author:    PostAuthor,
		Content:   content,
		Accent:    PostAccent,
		CreatedAt: w.now(),
	})
	w.comments = append(w.comments, c)
	w.trimLocked()
	return c, nil
}

// Like adds one like.
func (w *Wall) Like(id string) (Comment, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.indexLocked(id)
	if i < 0 {
		return Comment{}, ErrNotFound
	}
	w.comments[i].Likes++
	return w.comments[i], nil
}

// Move commits a drag, clamping the position into the wall.
func (w *Wall) Move(id string, xPct, yPct float64) (Comment, error) {
	if !finite(xPct) || !finite(yPct) {
		return Comment{}, ErrInvalidPosition
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.indexLocked(id)
	if i < 0 {
		return Comment{}, ErrNotFound
	}
	w.comments[i].XPct, w.comments[i].YPct = ClampPosition(xPct, yPct)
	return w.comments[i], nil
}

func (w *Wall) indexLocked(id string) int {
	id = strings.TrimSpace(id)
	return slices.IndexFunc(w.comments, func(c Comment) bool { return c.ID == id })
}

func (w *Wall) trimLocked() {
	for len(w.comments) > MaxComments {
		i := slices.IndexFunc(w.comments, func(c Comment) bool { return c.Kind == KindUser })
		if i < 0 {
			i = 0
		}
		w.comments = slices.Delete(w.comments, i, i+1)
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
