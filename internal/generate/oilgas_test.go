package generate_test

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dakotalabs/glstream/internal/generate"
)

func TestIdentifierFormats(t *testing.T) {
	txDate := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name    string
		draw    func(r *rand.Rand) string
		pattern string
	}

	tests := []testCase{
		{
			name:    "WellID",
			draw:    generate.WellID,
			pattern: `^[A-Z ]{4}-[1-9]\d{3}$`,
		},
		{
			name:    "AFENumber",
			draw:    generate.AFENumber,
			pattern: `^AFE-202[0-4]-[1-9]\d{3}$`,
		},
		{
			name:    "LeaseName",
			draw:    generate.LeaseName,
			pattern: `^[A-Z][a-z]+ (Ranch|Field|Unit|Lease|Property|Tract)$`,
		},
		{
			name:    "PropertyID",
			draw:    generate.PropertyID,
			pattern: `^PROP-[A-Z]{2}-[1-9]\d{4}$`,
		},
		{
			name: "JIBNumber",
			draw: func(r *rand.Rand) string {
				return generate.JIBNumber(r, txDate)
			},
			pattern: `^JIB-[A-Z]{2}-[1-9]\d{3}-202511$`,
		},
		{
			name:    "CostCenter",
			draw:    generate.CostCenter,
			pattern: `^CC-(NORTH|SOUTH|EAST|WEST|CENTRAL)-[1-9]$`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := regexp.MustCompile(tt.pattern)
			r := rand.New(rand.NewSource(3))

			for i := 0; i < 200; i++ {
				value := tt.draw(r)
				assert.Regexp(t, re, value)
			}
		})
	}
}

func TestJournalVocabularies(t *testing.T) {
	sources := map[string]bool{"AP": true, "AR": true, "JIB": true, "PA": true, "PROD": true, "MANUAL": true, "ADJ": true}
	types := map[string]bool{"INV": true, "PAY": true, "ADJ": true, "ALLOC": true, "ACCR": true, "REV": true}

	r := rand.New(rand.NewSource(11))

	for i := 0; i < 100; i++ {
		assert.True(t, sources[generate.JournalSource(r)])
		assert.True(t, types[generate.TransactionType(r)])
	}
}

func TestTransactionDate(t *testing.T) {
	now := time.Date(2025, 11, 10, 15, 30, 0, 0, time.UTC)
	r := rand.New(rand.NewSource(5))

	t.Run("AlwaysHistorical", func(t *testing.T) {
		oldest := time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC)

		for i := 0; i < 100; i++ {
			got := generate.TransactionDate(r, now, 1.0)

			assert.False(t, got.After(now))
			assert.False(t, got.Before(oldest))
			assert.Equal(t, 0, got.Hour())
		}
	})

	t.Run("NeverHistorical", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			got := generate.TransactionDate(r, now, 0)
			require.Equal(t, time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC), got)
		}
	})
}

func TestIdentifiers_Deterministic(t *testing.T) {
	r1 := rand.New(rand.NewSource(42))
	r2 := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		require.Equal(t, generate.WellID(r1), generate.WellID(r2))
		require.Equal(t, generate.PropertyID(r1), generate.PropertyID(r2))
		require.Equal(t, generate.CostCenter(r1), generate.CostCenter(r2))
	}
}
