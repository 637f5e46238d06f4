package domain

import (
	"fmt"
	"math"
)

// TaxBracket is one marginal slice of a schedule: income in [Min, Max) is
// taxed at Rate. A nil Max means the bracket has no upper bound.
type TaxBracket struct {
	Min  float64  `json:"min"`
	Max  *float64 `json:"max,omitempty"`
	Rate float64  `json:"rate"`
}

// BracketSchedule is the ordered set of marginal tax brackets for one tax
// year. It is immutable once validated.
type BracketSchedule struct {
	Year     int          `json:"year"`
	Brackets []TaxBracket `json:"brackets"`
}

// Validate checks every schedule invariant: non-empty, first bracket starts
// at 0, brackets contiguous with no gaps or overlaps, rates within [0,1],
// and exactly the last bracket unbounded. A schedule that fails here must
// never reach the calculator.
func (s BracketSchedule) Validate() error {
	if len(s.Brackets) == 0 {
		return fmt.Errorf("%w: schedule has no brackets", ErrInvalidSchedule)
	}

	for i, b := range s.Brackets {
		if !isFinite(b.Min) {
			return fmt.Errorf("%w: bracket %d has a non-finite min", ErrInvalidSchedule, i)
		}
		if b.Min < 0 {
			return fmt.Errorf("%w: bracket %d has negative min %.2f", ErrInvalidSchedule, i, b.Min)
		}
		if !isFinite(b.Rate) || b.Rate < 0 || b.Rate > 1 {
			return fmt.Errorf("%w: bracket %d rate %v is outside [0,1]", ErrInvalidSchedule, i, b.Rate)
		}
		if b.Max != nil {
			if !isFinite(*b.Max) {
				return fmt.Errorf("%w: bracket %d has a non-finite max", ErrInvalidSchedule, i)
			}
			if *b.Max <= b.Min {
				return fmt.Errorf("%w: bracket %d max %.2f is not above min %.2f",
					ErrInvalidSchedule, i, *b.Max, b.Min)
			}
		}
	}

	if s.Brackets[0].Min != 0 {
		return fmt.Errorf("%w: first bracket starts at %.2f, not 0",
			ErrInvalidSchedule, s.Brackets[0].Min)
	}

	for i := 0; i < len(s.Brackets)-1; i++ {
		b := s.Brackets[i]
		if b.Max == nil {
			return fmt.Errorf("%w: only the last bracket may be unbounded", ErrInvalidSchedule)
		}
		next := s.Brackets[i+1]
		if *b.Max != next.Min {
			return fmt.Errorf("%w: bracket %d ends at %.2f but bracket %d starts at %.2f",
				ErrInvalidSchedule, i, *b.Max, i+1, next.Min)
		}
	}

	if last := s.Brackets[len(s.Brackets)-1]; last.Max != nil {
		return fmt.Errorf("%w: last bracket must be unbounded", ErrInvalidSchedule)
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
