package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/leveltext/internal/level"
)

type openaiAdapter struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func newOpenAI(cfg *Config) *openaiAdapter {
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &openaiAdapter{
		client:  openai.NewClient(cfg.APIKey),
		model:   model,
		timeout: cfg.Timeout,
	}
}

func (o *openaiAdapter) Name() string { return ProviderOpenAI }

func (o *openaiAdapter) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, cancel := withTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &ServiceError{Provider: ProviderOpenAI, Cause: causeFromStatus(apiErr.HTTPStatusCode), Err: err}
		}
		return "", wrapTransport(ProviderOpenAI, err)
	}
	if len(resp.Choices) == 0 {
		return "", malformed(ProviderOpenAI, "no choices returned")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", malformed(ProviderOpenAI, "blank completion")
	}
	return text, nil
}

func (o *openaiAdapter) Simplify(ctx context.Context, text string, target level.Level, contextText string) (string, error) {
	return o.complete(ctx, simplifyPrompt(text, target, contextText), 1000)
}

func (o *openaiAdapter) Translate(ctx context.Context, lemma, contextSentence, targetLanguage string) (string, error) {
	return o.complete(ctx, translatePrompt(lemma, contextSentence, targetLanguage), 50)
}

func (o *openaiAdapter) TranslateBatch(ctx context.Context, lemmas []string, targetLanguage string) (map[string]string, error) {
	response, err := o.complete(ctx, batchTranslatePrompt(lemmas, targetLanguage), 500)
	if err != nil {
		return nil, err
	}
	return parseBatchResponse(lemmas, response), nil
}
