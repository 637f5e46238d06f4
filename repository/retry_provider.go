package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"tax-agent/domain"
)

// RetryingBracketProvider retries an inner provider with exponential
// backoff. Only transport failures are retried; an unknown year or an
// invalid schedule will not improve on retry and fails immediately.
type RetryingBracketProvider struct {
	next            BracketProvider
	maxRetries      uint64
	initialInterval time.Duration
}

type RetryOption func(*RetryingBracketProvider)

// WithInitialInterval overrides the first backoff interval.
func WithInitialInterval(d time.Duration) RetryOption {
	return func(p *RetryingBracketProvider) { p.initialInterval = d }
}

// NewRetryingBracketProvider wraps next with up to maxRetries retries after
// the first attempt.
func NewRetryingBracketProvider(
	next BracketProvider,
	maxRetries uint64,
	opts ...RetryOption,
) *RetryingBracketProvider {
	p := &RetryingBracketProvider{
		next:            next,
		maxRetries:      maxRetries,
		initialInterval: backoff.DefaultInitialInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *RetryingBracketProvider) FetchBrackets(
	ctx context.Context,
	year int,
) (domain.BracketSchedule, error) {

	var schedule domain.BracketSchedule

	operation := func() error {
		s, err := p.next.FetchBrackets(ctx, year)
		if err != nil {
			if errors.Is(err, domain.ErrProviderUnavailable) {
				return err
			}
			return backoff.Permanent(err)
		}
		schedule = s
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = p.initialInterval

	policy := backoff.WithContext(backoff.WithMaxRetries(expo, p.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return domain.BracketSchedule{}, err
	}
	return schedule, nil
}
