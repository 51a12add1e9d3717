package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"codeberg.org/snonux/leveltext/internal/level"
)

const defaultClaudeModel = "claude-sonnet-4-0"

type claudeAdapter struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
}

func newClaude(cfg *Config) *claudeAdapter {
	model := cfg.Model
	if model == "" {
		model = defaultClaudeModel
	}
	return &claudeAdapter{
		client:  anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:   model,
		timeout: cfg.Timeout,
	}
}

func (c *claudeAdapter) Name() string { return ProviderClaude }

func (c *claudeAdapter) message(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &ServiceError{Provider: ProviderClaude, Cause: causeFromStatus(apiErr.StatusCode), Err: err}
		}
		return "", wrapTransport(ProviderClaude, err)
	}
	if len(msg.Content) == 0 {
		return "", malformed(ProviderClaude, "empty response")
	}
	text := strings.TrimSpace(msg.Content[0].Text)
	if text == "" {
		return "", malformed(ProviderClaude, "blank completion")
	}
	return text, nil
}

func (c *claudeAdapter) Simplify(ctx context.Context, text string, target level.Level, contextText string) (string, error) {
	return c.message(ctx, simplifyPrompt(text, target, contextText), 1000)
}

func (c *claudeAdapter) Translate(ctx context.Context, lemma, contextSentence, targetLanguage string) (string, error) {
	return c.message(ctx, translatePrompt(lemma, contextSentence, targetLanguage), 50)
}

func (c *claudeAdapter) TranslateBatch(ctx context.Context, lemmas []string, targetLanguage string) (map[string]string, error) {
	response, err := c.message(ctx, batchTranslatePrompt(lemmas, targetLanguage), 500)
	if err != nil {
		return nil, err
	}
	return parseBatchResponse(lemmas, response), nil
}
