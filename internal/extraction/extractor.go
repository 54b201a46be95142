// Package extraction turns raw caller utterances into structured field
// updates using Gemini with a constrained JSON response schema.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/genai"

	"prequal_backend/internal/intake/domain"
	"prequal_backend/internal/intake/ports"
	"prequal_backend/platform/config"
	"prequal_backend/platform/logger"
)

const (
	defaultModel   = "gemini-2.0-flash"
	requestTimeout = 10 * time.Second
)

const systemInstruction = `You extract structured data from one utterance in a phone call about manufactured home financing.
Return only values the caller actually stated. Never guess, never fill in defaults.
Keep values verbatim as spoken; do not normalize numbers or ranges.`

type Extractor struct {
	client *genai.Client
	model  string
	log    *logger.Logger
}

// New builds a Gemini backed extractor. Returns nil without error when no
// API key is configured; the engine treats a nil extractor as disabled.
func New(ctx context.Context, cfg config.ExtractionConfig, log *logger.Logger) (*Extractor, error) {
	if !cfg.GetExtractionEnabled() {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GetGeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := cfg.GetGeminiModel()
	if model == "" {
		model = defaultModel
	}
	return &Extractor{client: client, model: model, log: log}, nil
}

type extractionResult struct {
	Fields       map[string]string `json:"fields"`
	Confirmation string            `json:"confirmation"`
}

// Extract asks the model for field values present in the utterance. The
// current phase is passed as a hint so short answers like "yes" resolve
// against the right question.
func (e *Extractor) Extract(ctx context.Context, utterance string, phase domain.Phase) (ports.Extraction, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	prompt := fmt.Sprintf("Conversation phase: %s\nCaller said: %q", phase, utterance)
	resp, err := e.client.Models.GenerateContent(ctx, e.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    extractionSchema,
			Temperature:       genai.Ptr[float32](0),
		},
	)
	if err != nil {
		return ports.Extraction{}, fmt.Errorf("generate content: %w", err)
	}

	var result extractionResult
	if err := json.Unmarshal([]byte(resp.Text()), &result); err != nil {
		return ports.Extraction{}, fmt.Errorf("decode extraction: %w", err)
	}

	out := ports.Extraction{Fields: result.Fields}
	switch result.Confirmation {
	case "yes":
		out.Confirmation = genai.Ptr(true)
	case "no":
		out.Confirmation = genai.Ptr(false)
	}
	return out, nil
}

var _ ports.Extractor = (*Extractor)(nil)
