// Package designgen suggests planet descriptions with a generative model.
package designgen

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "github.com/louisbranch/cozy.galaxy/internal/platform/errors"
	"github.com/louisbranch/cozy.galaxy/internal/platform/timeouts"
	"github.com/louisbranch/cozy.galaxy/internal/services/planet"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

const temperature float32 = 0.7

// ErrUnavailable reports that no generator is configured.
var ErrUnavailable = apperrors.E(apperrors.KindUnavailable, "Description suggestions are unavailable", "The galaxy has no muse configured right now. Try writing your own description.")

var errEmptySuggestion = errors.New("model returned an empty suggestion")

// Request describes the planet to write about.
type Request struct {
	Color    string
	Surface  planet.Surface
	HasRings bool
	HasMoons bool
	// Hint is optional free text from the visitor.
	Hint string
}

// RequestFromState builds a request from a saved planet.
func RequestFromState(state planet.State, hint string) Request {
	return Request{
		Color:    state.Color,
		Surface:  state.SurfaceType,
		HasRings: state.HasRings,
		HasMoons: state.HasMoons,
		Hint:     hint,
	}
}

// Generator suggests a description for a planet.
type Generator interface {
	Suggest(ctx context.Context, req Request) (string, error)
}

// Unavailable is the generator used when no API key is configured.
type Unavailable struct{}

// Suggest always fails with ErrUnavailable.
func (Unavailable) Suggest(context.Context, Request) (string, error) {
	return "", ErrUnavailable
}

// Config selects the model backend.
type Config struct {
	APIKey string `env:"GENAI_API_KEY"`
	Model  string `env:"GENAI_MODEL" envDefault:"gemini-2.5-flash"`
}

// New returns a GenAI generator, or Unavailable when cfg has no API key.
func New(ctx context.Context, cfg Config) (Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return Unavailable{}, nil
	}
	return NewGenAI(ctx, cfg)
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAI generates descriptions with the Gemini API.
type GenAI struct {
	models contentGenerator
	model  string
}

// NewGenAI creates a Gemini-backed generator.
func NewGenAI(ctx context.Context, cfg Config) (*GenAI, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrUnavailable
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGenAI(client.Models, cfg.Model), nil
}

func newGenAI(models contentGenerator, model string) *GenAI {
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	return &GenAI{models: models, model: model}
}

// Model returns the configured model name.
func (g *GenAI) Model() string {
	return g.model
}

// Suggest asks the model for a short description.
func (g *GenAI) Suggest(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Generation)
	defer cancel()

	result, err := g.models.GenerateContent(ctx, g.model, genai.Text(Prompt(req)), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindUnavailable, "Description suggestions are unavailable", "The muse is quiet right now. Please try again in a moment.", fmt.Errorf("generate content: %w", err))
	}
	text := Clean(result.Text())
	if text == "" {
		return "", apperrors.Wrap(apperrors.KindUnavailable, "Description suggestions are unavailable", "The muse is quiet right now. Please try again in a moment.", errEmptySuggestion)
	}
	return text, nil
}

// Prompt renders the model prompt for req.
func Prompt(req Request) string {
	surface := req.Surface
	if !surface.Valid() {
		surface = planet.SurfaceClay
	}
	var extras []string
	if req.HasRings {
		extras = append(extras, "soft rings")
	}
	if req.HasMoons {
		extras = append(extras, "little moons")
	}

	var b strings.Builder
	b.WriteString("Write a warm, inviting description for a \"Cozy Cosmic\" community planet.\n")
	fmt.Fprintf(&b, "- Design: %s\n", planet.DesignKey(req.Color, surface))
	fmt.Fprintf(&b, "- Color: %s (%s)\n", planet.SwatchName(req.Color), strings.ToUpper(strings.TrimSpace(req.Color)))
	fmt.Fprintf(&b, "- Surface: %s\n", surface)
	if len(extras) > 0 {
		fmt.Fprintf(&b, "- Features: %s\n", strings.Join(extras, " and "))
	}
	if hint := strings.TrimSpace(req.Hint); hint != "" {
		fmt.Fprintf(&b, "- The founder says: %s\n", hint)
	}
	b.WriteString("- Aesthetics: handmade, soft, tactile, friendly.\n")
	fmt.Fprintf(&b, "Use at most two sentences and %d characters. Return only the description. No markdown, no quotes.\n", planet.MaxDescriptionLength)
	return b.String()
}

var fencePattern = regexp.MustCompile("```[a-zA-Z]*")

// Clean strips markdown fences, surrounding quotes and whitespace, and cuts
// the text to the planet description limit.
func Clean(text string) string {
	text = fencePattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "\"“”")
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > planet.MaxDescriptionLength {
		runes := []rune(text)
		text = strings.TrimSpace(string(runes[:planet.MaxDescriptionLength]))
	}
	return text
}
