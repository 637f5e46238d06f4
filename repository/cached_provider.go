package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"tax-agent/domain"
)

// CachedBracketProvider caches schedules from an inner provider, keyed by
// year. Entries are immutable once inserted; a cached payload that no
// longer deserializes into a valid schedule is ignored and refetched, so a
// corrupted entry can never reach the calculator. Cache failures are never
// surfaced to the caller.
type CachedBracketProvider struct {
	next  BracketProvider
	cache CacheRepository
}

func NewCachedBracketProvider(next BracketProvider, cache CacheRepository) *CachedBracketProvider {
	return &CachedBracketProvider{next: next, cache: cache}
}

func (p *CachedBracketProvider) FetchBrackets(
	ctx context.Context,
	year int,
) (domain.BracketSchedule, error) {

	key := scheduleCacheKey(year)

	if cached, ok := p.cache.Get(ctx, key); ok {
		var schedule domain.BracketSchedule
		if err := json.Unmarshal([]byte(cached), &schedule); err == nil {
			if err := schedule.Validate(); err == nil {
				return schedule, nil
			}
		}
		log.Printf("Warning: discarding unusable cache entry for year %d", year)
	}

	schedule, err := p.next.FetchBrackets(ctx, year)
	if err != nil {
		return domain.BracketSchedule{}, err
	}

	if encoded, err := json.Marshal(schedule); err == nil {
		if err := p.cache.Set(ctx, key, string(encoded)); err != nil {
			log.Printf("Warning: failed to cache schedule for year %d: %v", year, err)
		}
	}

	return schedule, nil
}

func scheduleCacheKey(year int) string {
	return fmt.Sprintf("tax:brackets:%d", year)
}
