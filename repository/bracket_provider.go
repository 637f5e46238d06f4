package repository

import (
	"context"

	"tax-agent/domain"
)

// BracketProvider resolves the marginal tax bracket schedule for a tax year.
// On success the returned schedule satisfies every BracketSchedule invariant
// and can be used by the calculator without further checking.
type BracketProvider interface {
	FetchBrackets(ctx context.Context, year int) (domain.BracketSchedule, error)
}
