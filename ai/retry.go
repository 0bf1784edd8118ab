// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ai

import (
	"context"
	"log/slog"
	"time"
)

// RetryWithBackoff retries an operation with exponential backoff.
// maxAttempts: maximum number of attempts (must be > 0)
// baseDelay: base delay between retries (doubles on each retry)
// Returns the error from the last attempt if all attempts fail.
func RetryWithBackoff(ctx context.Context, operation func() error, maxAttempts int, baseDelay time.Duration) error {
	if maxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				slog.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		slog.Debug("operation failed, will retry", "attempt", attempt, "maxAttempts", maxAttempts, "error", lastErr)

		// Don't sleep after the last attempt
		if attempt == maxAttempts {
			break
		}

		delay := baseDelay << (attempt - 1)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}

// retryingEmbedder retries failed embedding calls with exponential backoff.
type retryingEmbedder struct {
	inner       Embedder
	maxAttempts int
	baseDelay   time.Duration
}

// NewRetryingEmbedder wraps inner so each call is attempted up to maxAttempts
// times. Vectors from the last successful attempt are returned unchanged.
func NewRetryingEmbedder(inner Embedder, maxAttempts int, baseDelay time.Duration) (Embedder, error) {
	if maxAttempts <= 0 {
		return nil, ErrInvalidMaxAttempts
	}
	if maxAttempts == 1 {
		return inner, nil
	}
	return &retryingEmbedder{
		inner:       inner,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
	}, nil
}

func (r *retryingEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	var out []float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		out, err = r.inner.EmbedText(ctx, text)
		return err
	}, r.maxAttempts, r.baseDelay)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *retryingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	var out [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		out, err = r.inner.EmbedTexts(ctx, texts)
		return err
	}, r.maxAttempts, r.baseDelay)
	if err != nil {
		return nil, err
	}
	return out, nil
}
