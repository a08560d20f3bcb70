package ledger

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/dakotalabs/glstream/internal/account"
	"github.com/dakotalabs/glstream/internal/generate"
)

// Entries per journal batch; the batch code rolls over every 50 entries.
const batchSize = 50

// JIB numbers appear on roughly this fraction of records, independent of
// account type.
const jibProbability = 0.4

// Synthesizer assembles complete GL records from the account catalog and the
// field generators.
//
// Synthesize consumes draws from the supplied source in a fixed order:
// account-type roll, account choice, well id, AFE (only for capex accounts),
// lease name, property id, JIB gate (one roll always, JIB draws only when it
// fires), cost center, journal source, transaction type, amount pair, state,
// county, basin, creator suffix. That order is part of the determinism
// contract: reordering any draw changes every subsequent record for a given
// seed.
type Synthesizer struct {
	catalog *account.Catalog
}

func NewSynthesizer(catalog *account.Catalog) *Synthesizer {
	return &Synthesizer{catalog: catalog}
}

// selectAccount makes the weighted account draw: 30% revenue, 40% operating
// expense, 20% capex, 10% admin.
func (s *Synthesizer) selectAccount(r *rand.Rand) account.Account {
	roll := r.Float64()

	var kind account.Kind

	switch {
	case roll < 0.3:
		kind = account.KindRevenue
	case roll < 0.7:
		kind = account.KindOperatingExpense
	case roll < 0.9:
		kind = account.KindCapex
	default:
		kind = account.KindAdmin
	}

	accounts := s.catalog.ListByType(kind)

	return accounts[r.Intn(len(accounts))]
}

// Synthesize builds the record for the given entry id. txDate is the
// transaction/posting date; txDateTime stamps the record's creation and
// modification times. The caller owns the random source and the entry id
// sequence.
func (s *Synthesizer) Synthesize(r *rand.Rand, entryID int64, txDate, txDateTime time.Time) Record {
	acct := s.selectAccount(r)

	wellID := generate.WellID(r)

	var afeNumber *string
	if acct.IsCapex() {
		afeNumber = new(generate.AFENumber(r))
	}

	leaseName := generate.LeaseName(r)
	propertyID := generate.PropertyID(r)

	// The gate roll is consumed whether or not a JIB number is drawn.
	var jibNumber *string
	if r.Float64() < jibProbability {
		jibNumber = new(generate.JIBNumber(r, txDate))
	}

	costCenter := generate.CostCenter(r)
	journalSource := generate.JournalSource(r)
	transactionType := generate.TransactionType(r)

	debit, credit := generate.Amount(r, acct)

	state := generate.State(r)
	county := generate.County(r)
	basin := generate.Basin(r)

	createdBy := fmt.Sprintf("USER-%d", 100+r.Intn(900))

	accountType := string(account.ClassExpense)
	if acct.IsRevenue() {
		accountType = string(account.ClassRevenue)
	}

	batchNumber := (entryID + batchSize - 1) / batchSize

	return Record{
		EntryID:          entryID,
		JournalBatch:     fmt.Sprintf("BATCH-%06d", batchNumber),
		JournalEntry:     fmt.Sprintf("JE-%08d", entryID),
		TransactionDate:  txDate,
		PostingDate:      txDate,
		AccountCode:      acct.Code,
		AccountName:      acct.Name,
		AccountType:      accountType,
		DebitAmount:      debit,
		CreditAmount:     credit,
		NetAmount:        math.Round((credit-debit)*100) / 100,
		WellID:           wellID,
		LeaseName:        leaseName,
		PropertyID:       propertyID,
		AFENumber:        afeNumber,
		JIBNumber:        jibNumber,
		CostCenter:       costCenter,
		JournalSource:    journalSource,
		TransactionType:  transactionType,
		Description:      fmt.Sprintf("%s - %s for %s", transactionType, acct.Name, wellID),
		FiscalPeriod:     txDate.Format("2006-01"),
		FiscalYear:       txDate.Year(),
		FiscalMonth:      int(txDate.Month()),
		State:            state,
		County:           county,
		Basin:            basin,
		CreatedTimestamp: txDateTime,
		CreatedBy:        createdBy,
		LastModified:     txDateTime,
	}
}
