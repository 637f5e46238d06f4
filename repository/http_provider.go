package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tax-agent/domain"
)

// HTTPBracketProvider fetches bracket schedules from the external rate
// source over HTTP. One outbound GET per call, bounded by the client
// timeout and the caller's context.
type HTTPBracketProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPBracketProvider creates a provider for the rate source at baseURL.
// Schedules are requested as GET {baseURL}/{year}.
func NewHTTPBracketProvider(baseURL string, timeout time.Duration) *HTTPBracketProvider {
	return &HTTPBracketProvider{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type bracketsPayload struct {
	TaxBrackets []json.RawMessage `json:"tax_brackets"`
}

type rawBracket struct {
	Min  *float64 `json:"min"`
	Max  *float64 `json:"max"`
	Rate *float64 `json:"rate"`
}

// FetchBrackets requests the schedule for year and converts it into a
// validated BracketSchedule. Parsing and validation are one atomic step: a
// partially-parsed or invariant-violating schedule is never returned.
func (p *HTTPBracketProvider) FetchBrackets(
	ctx context.Context,
	year int,
) (domain.BracketSchedule, error) {

	url := fmt.Sprintf("%s/%d", p.baseURL, year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.BracketSchedule{},
			fmt.Errorf("%w: building request: %v", domain.ErrProviderUnavailable, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domain.BracketSchedule{},
			fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.BracketSchedule{},
			fmt.Errorf("%w: no schedule for year %d", domain.ErrUnknownYear, year)
	case resp.StatusCode != http.StatusOK:
		return domain.BracketSchedule{},
			fmt.Errorf("%w: rate source returned status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload bracketsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.BracketSchedule{},
			fmt.Errorf("%w: malformed payload: %v", domain.ErrProviderUnavailable, err)
	}

	return buildSchedule(year, payload.TaxBrackets)
}

// buildSchedule converts raw rate-source entries into a validated schedule.
// A missing max on a non-final entry is inferred from the next entry's min;
// when present it must agree with it, which Validate enforces.
func buildSchedule(year int, entries []json.RawMessage) (domain.BracketSchedule, error) {
	raw := make([]rawBracket, len(entries))
	for i, entry := range entries {
		if err := json.Unmarshal(entry, &raw[i]); err != nil {
			return domain.BracketSchedule{},
				fmt.Errorf("%w: bracket %d has a non-numeric field: %v", domain.ErrInvalidSchedule, i, err)
		}
		if raw[i].Min == nil {
			return domain.BracketSchedule{},
				fmt.Errorf("%w: bracket %d is missing min", domain.ErrInvalidSchedule, i)
		}
		if raw[i].Rate == nil {
			return domain.BracketSchedule{},
				fmt.Errorf("%w: bracket %d is missing rate", domain.ErrInvalidSchedule, i)
		}
	}

	brackets := make([]domain.TaxBracket, len(raw))
	for i, r := range raw {
		max := r.Max
		if max == nil && i < len(raw)-1 {
			next := *raw[i+1].Min
			max = &next
		}
		brackets[i] = domain.TaxBracket{
			Min:  *r.Min,
			Max:  max,
			Rate: *r.Rate,
		}
	}

	schedule := domain.BracketSchedule{
		Year:     year,
		Brackets: brackets,
	}
	if err := schedule.Validate(); err != nil {
		return domain.BracketSchedule{}, err
	}
	return schedule, nil
}
