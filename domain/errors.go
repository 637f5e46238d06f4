package domain

import "errors"

// Error kinds surfaced by the tax core. Callers match them with errors.Is to
// tell client-input problems apart from upstream-dependency problems.
var (
	// ErrInvalidIncome marks a negative or non-finite annual income.
	ErrInvalidIncome = errors.New("invalid income")

	// ErrUnknownYear marks a tax year the rate source has no schedule for.
	ErrUnknownYear = errors.New("unknown tax year")

	// ErrInvalidSchedule marks a provider response that violates the
	// bracket schedule invariants. Never repaired by guessing bounds.
	ErrInvalidSchedule = errors.New("invalid bracket schedule")

	// ErrProviderUnavailable marks a network, timeout, or transport
	// failure reaching the rate source. Safe to retry with backoff.
	ErrProviderUnavailable = errors.New("rate provider unavailable")
)
