package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"codeberg.org/snonux/leveltext/internal/level"
)

const defaultGeminiModel = "gemini-2.5-flash"

type geminiAdapter struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func newGemini(ctx context.Context, cfg *Config) (*geminiAdapter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiAdapter{client: client, model: model, timeout: cfg.Timeout}, nil
}

func (g *geminiAdapter) Name() string { return ProviderGemini }

func (g *geminiAdapter) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &ServiceError{Provider: ProviderGemini, Cause: causeFromStatus(apiErr.Code), Err: err}
		}
		return "", wrapTransport(ProviderGemini, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", malformed(ProviderGemini, "blank completion")
	}
	return text, nil
}

func (g *geminiAdapter) Simplify(ctx context.Context, text string, target level.Level, contextText string) (string, error) {
	return g.generate(ctx, simplifyPrompt(text, target, contextText))
}

func (g *geminiAdapter) Translate(ctx context.Context, lemma, contextSentence, targetLanguage string) (string, error) {
	return g.generate(ctx, translatePrompt(lemma, contextSentence, targetLanguage))
}

func (g *geminiAdapter) TranslateBatch(ctx context.Context, lemmas []string, targetLanguage string) (map[string]string, error) {
	response, err := g.generate(ctx, batchTranslatePrompt(lemmas, targetLanguage))
	if err != nil {
		return nil, err
	}
	return parseBatchResponse(lemmas, response), nil
}
