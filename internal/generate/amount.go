// Package generate holds the deterministic field generators for GL records.
//
// Every generator is a pure function of the *rand.Rand it is handed plus its
// explicit parameters. None of them touch global randomness or the wall
// clock, which is what keeps a seeded run reproducible: the sequence of
// draws against one source fully determines the output.
package generate

import (
	"math"
	"math/rand"

	"github.com/dakotalabs/glstream/internal/account"
)

// Amount ranges by account classification, in dollars.
const (
	revenueMin = 5000.0
	revenueMax = 50000.0

	capexMin = 10000.0
	capexMax = 200000.0

	opexMin = 500.0
	opexMax = 15000.0
)

// Amount draws a debit/credit pair for the account. Exactly one side is
// non-zero: revenue accounts book a credit, everything else a debit.
func Amount(r *rand.Rand, acct account.Account) (debit, credit float64) {
	switch {
	case acct.IsRevenue():
		return 0, round2(uniform(r, revenueMin, revenueMax))
	case acct.IsCapex():
		return round2(uniform(r, capexMin, capexMax)), 0
	default:
		return round2(uniform(r, opexMin, opexMax)), 0
	}
}

func uniform(r *rand.Rand, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
