package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/robbyriverside/dialogen/logs"
	"github.com/sethvargo/go-retry"
)

// RetryPolicy bounds the attempts made for one request.
type RetryPolicy struct {
	// MaxAttempts is the total number of calls, first one included. Values below 1 mean 1.
	MaxAttempts int
	// Delay is the fixed wait between attempts.
	Delay time.Duration
}

// Retrying calls the wrapped Completer until it succeeds or the policy is exhausted.
type Retrying struct {
	next   Completer
	policy RetryPolicy
}

// WithRetry wraps next with a fixed-delay, bounded-attempt retry loop.
func WithRetry(next Completer, policy RetryPolicy) *Retrying {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.Delay < 0 {
		policy.Delay = 0
	}
	return &Retrying{next: next, policy: policy}
}

func (r *Retrying) Policy() RetryPolicy { return r.policy }

func (r *Retrying) Complete(ctx context.Context, req Request) (string, error) {
	var (
		text    string
		attempt int
	)
	err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		attempt++
		out, err := r.next.Complete(ctx, req)
		if err == nil {
			text = out
			return nil
		}
		logs.Warnf("API call attempt %d failed: %v", attempt, err)
		if ctx.Err() != nil {
			return err
		}
		return retry.RetryableError(err)
	})
	if err != nil {
		return "", fmt.Errorf("%s request failed after %d attempt(s): %w", stageName(req.Stage), attempt, err)
	}
	return text, nil
}

func (r *Retrying) backoff() retry.Backoff {
	delay := r.policy.Delay
	constant := retry.BackoffFunc(func() (time.Duration, bool) {
		return delay, false
	})
	return retry.WithMaxRetries(uint64(r.policy.MaxAttempts-1), constant)
}

func stageName(stage string) string {
	if stage == "" {
		return "completion"
	}
	return stage
}
