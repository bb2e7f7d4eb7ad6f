package extract

import (
	"context"
	"fmt"

	"github.com/Archit-bit/voice-diary-app/internal/journal"
)

type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// Extractor turns transcript text into a structured payload via one
// schema-constrained generation call.
type Extractor interface {
	Extract(ctx context.Context, transcript string) (*journal.ExtractedPayload, error)
}

// ExtractionError is returned for any non-success upstream response,
// carrying the response body verbatim.
type ExtractionError struct {
	StatusCode int
	Body       string
}

func (e *ExtractionError) Error() string {
	return "extraction failed: " + e.Body
}

func New(cfg Config) (Extractor, error) {
	switch cfg.Provider {
	case "openai":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}

		model := cfg.Model
		if model == "" {
			model = "gpt-4o-mini"
		}

		return newOpenAI(cfg.APIKey, baseURL, model), nil
	case "gemini":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "https://generativelanguage.googleapis.com"
		}

		model := cfg.Model
		if model == "" {
			model = "gemini-2.0-flash"
		}

		return newGemini(cfg.APIKey, baseURL, model), nil
	case "claude":
		return newClaude(cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown extractor provider: %s", cfg.Provider)
	}
}
