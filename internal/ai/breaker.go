package ai

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/leveltext/internal/level"
)

type breakerAdapter struct {
	next Adapter
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker decorates an adapter with a circuit breaker so a provider that
// keeps failing stops receiving billed calls for a cool-down period instead
// of burning through a whole batch.
func WithBreaker(next Adapter) Adapter {
	settings := gobreaker.Settings{
		Name:    next.Name(),
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Non-retryable failures (auth, malformed response) are the caller's
		// problem, not a sign of provider outage.
		IsSuccessful: func(err error) bool {
			return err == nil || !IsRetryable(err)
		},
	}
	return &breakerAdapter{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *breakerAdapter) Name() string { return b.next.Name() }

func (b *breakerAdapter) execute(op func() (any, error)) (any, error) {
	result, err := b.cb.Execute(op)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &ServiceError{Provider: b.next.Name(), Cause: CauseRateLimit, Err: err}
	}
	return result, err
}

func (b *breakerAdapter) Simplify(ctx context.Context, text string, target level.Level, contextText string) (string, error) {
	result, err := b.execute(func() (any, error) {
		return b.next.Simplify(ctx, text, target, contextText)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (b *breakerAdapter) Translate(ctx context.Context, lemma, contextSentence, targetLanguage string) (string, error) {
	result, err := b.execute(func() (any, error) {
		return b.next.Translate(ctx, lemma, contextSentence, targetLanguage)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (b *breakerAdapter) TranslateBatch(ctx context.Context, lemmas []string, targetLanguage string) (map[string]string, error) {
	result, err := b.execute(func() (any, error) {
		return b.next.TranslateBatch(ctx, lemmas, targetLanguage)
	})
	if err != nil {
		return nil, err
	}
	return result.(map[string]string), nil
}
