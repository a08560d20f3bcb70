package generate

import (
	"math/rand"
	"time"
)

// DefaultHistoricalProbability is the chance a generated transaction date is
// backdated rather than today's.
const DefaultHistoricalProbability = 0.8

// TransactionDate draws a transaction date relative to now: with the given
// probability a date 0-30 days in the past, otherwise now itself. The caller
// supplies now; the generator never reads the wall clock.
func TransactionDate(r *rand.Rand, now time.Time, historicalProbability float64) time.Time {
	if r.Float64() < historicalProbability {
		daysAgo := r.Intn(31)
		return midnight(now.AddDate(0, 0, -daysAgo))
	}

	return midnight(now)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
