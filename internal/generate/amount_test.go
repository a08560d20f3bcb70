package generate_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dakotalabs/glstream/internal/account"
	"github.com/dakotalabs/glstream/internal/generate"
)

func TestAmount_Ranges(t *testing.T) {
	type testCase struct {
		name      string
		acct      account.Account
		wantDebit bool
		wantMin   float64
		wantMax   float64
	}

	tests := []testCase{
		{
			name:      "RevenueCredits",
			acct:      account.Account{Code: "4100", Name: "Crude Oil Sales Revenue", Type: account.ClassRevenue},
			wantDebit: false,
			wantMin:   5000,
			wantMax:   50000,
		},
		{
			name:      "CapexDebits",
			acct:      account.Account{Code: "6100", Name: "Drilling Costs", Type: account.ClassExpense},
			wantDebit: true,
			wantMin:   10000,
			wantMax:   200000,
		},
		{
			name:      "OpexDebits",
			acct:      account.Account{Code: "5100", Name: "Lease Operating Expense", Type: account.ClassExpense},
			wantDebit: true,
			wantMin:   500,
			wantMax:   15000,
		},
		{
			name:      "AdminDebits",
			acct:      account.Account{Code: "7100", Name: "General & Administrative", Type: account.ClassExpense},
			wantDebit: true,
			wantMin:   500,
			wantMax:   15000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rand.New(rand.NewSource(7))

			for i := 0; i < 200; i++ {
				debit, credit := generate.Amount(r, tt.acct)

				amount := credit
				if tt.wantDebit {
					amount = debit
					assert.Zero(t, credit)
				} else {
					assert.Zero(t, debit)
				}

				assert.GreaterOrEqual(t, amount, tt.wantMin)
				assert.Less(t, amount, tt.wantMax)

				// Rounded to cents.
				assert.InDelta(t, amount, math.Round(amount*100)/100, 1e-9)
			}
		})
	}
}

func TestAmount_Deterministic(t *testing.T) {
	acct := account.Account{Code: "4100", Name: "Crude Oil Sales Revenue", Type: account.ClassRevenue}

	r1 := rand.New(rand.NewSource(42))
	r2 := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		d1, c1 := generate.Amount(r1, acct)
		d2, c2 := generate.Amount(r2, acct)

		require.Equal(t, d1, d2)
		require.Equal(t, c1, c2)
	}
}
