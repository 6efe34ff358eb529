// Package retry wraps fallible producers with bounded
// retry-and-default-on-exhaustion semantics.
package retry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/natctl/natctl/pkg/models"
)

// Producer yields a candidate result. It may block, return an error, or
// panic; the harness absorbs all three.
type Producer[T any] func(ctx context.Context) (T, error)

// Validate judges one candidate. A valid outcome may carry a Normalized
// substitute for the raw result.
type Validate[T any] func(result T) models.ValidationOutcome

// Do invokes producer up to maxAttempts times, strictly sequentially, running
// validate on each result. The first valid result wins: the outcome's
// Normalized value when it is a T, the raw result otherwise. Producer errors
// and panics count as failed attempts and are not propagated.
//
// After maxAttempts failures Do returns defaultValue with a single aggregated
// log line; exhaustion is terminal but non-fatal. The only error Do returns
// is the context's, so cancellation propagates instead of masquerading as a
// transient failure.
func Do[T any](
	ctx context.Context,
	logger *slog.Logger,
	producer Producer[T],
	validate Validate[T],
	maxAttempts int,
	defaultValue T,
) (T, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastFailure string

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return defaultValue, err
		}

		result, failure := produce(ctx, producer)
		if failure != "" {
			lastFailure = failure

			continue
		}

		if err := ctx.Err(); err != nil {
			return defaultValue, err
		}

		outcome := validate(result)
		if !outcome.IsValid {
			lastFailure = outcome.Reason

			continue
		}

		if normalized, ok := outcome.Normalized.(T); ok {
			return normalized, nil
		}

		return result, nil
	}

	logger.Warn("Producer attempts exhausted, falling back to default",
		"attempts", maxAttempts,
		"last_failure", lastFailure,
	)

	return defaultValue, nil
}

// produce runs one attempt, converting errors and panics into a failure
// description.
func produce[T any](ctx context.Context, producer Producer[T]) (result T, failure string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			failure = fmt.Sprintf("producer panic: %v", recovered)
		}
	}()

	result, err := producer(ctx)
	if err != nil {
		return result, fmt.Sprintf("producer error: %v", err)
	}

	return result, ""
}
