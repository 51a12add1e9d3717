package ai

import (
	"context"
	"log/slog"
	"time"

	retry "github.com/avast/retry-go/v4"

	"codeberg.org/snonux/leveltext/internal/level"
)

// RetryPolicy bounds retries of transient provider failures. The base delay
// doubles per attempt up to MaxDelay.
type RetryPolicy struct {
	Attempts  uint
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// DefaultRetryPolicy matches a few quick retries before surfacing the error.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, BaseDelay: 500 * time.Millisecond, MaxDelay: 8 * time.Second}
}

type retryAdapter struct {
	next   Adapter
	policy RetryPolicy
	log    *slog.Logger
}

// WithRetry decorates an adapter with bounded exponential backoff for
// transient failures. Auth and malformed-response errors propagate
// immediately.
func WithRetry(next Adapter, policy RetryPolicy) Adapter {
	if policy.Attempts == 0 {
		policy = DefaultRetryPolicy()
	}
	return &retryAdapter{next: next, policy: policy, log: slog.Default()}
}

func (r *retryAdapter) Name() string { return r.next.Name() }

func (r *retryAdapter) options(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(r.policy.Attempts),
		retry.Delay(r.policy.BaseDelay),
		retry.MaxDelay(r.policy.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(IsRetryable),
		retry.OnRetry(func(attempt uint, err error) {
			r.log.Warn("retrying AI call", "provider", r.next.Name(), "attempt", attempt+1, "error", err)
		}),
	}
}

func (r *retryAdapter) Simplify(ctx context.Context, text string, target level.Level, contextText string) (string, error) {
	var result string
	err := retry.Do(func() error {
		var err error
		result, err = r.next.Simplify(ctx, text, target, contextText)
		return err
	}, r.options(ctx)...)
	return result, err
}

func (r *retryAdapter) Translate(ctx context.Context, lemma, contextSentence, targetLanguage string) (string, error) {
	var result string
	err := retry.Do(func() error {
		var err error
		result, err = r.next.Translate(ctx, lemma, contextSentence, targetLanguage)
		return err
	}, r.options(ctx)...)
	return result, err
}

func (r *retryAdapter) TranslateBatch(ctx context.Context, lemmas []string, targetLanguage string) (map[string]string, error) {
	var result map[string]string
	err := retry.Do(func() error {
		var err error
		result, err = r.next.TranslateBatch(ctx, lemmas, targetLanguage)
		return err
	}, r.options(ctx)...)
	return result, err
}
