package ledger

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record is a single QByte-style general-ledger entry. Records are created
// once by the generation engine and never mutated afterwards.
type Record struct {
	EntryID      int64
	JournalBatch string
	JournalEntry string

	TransactionDate time.Time
	PostingDate     time.Time

	AccountCode string
	AccountName string
	AccountType string

	DebitAmount  float64
	CreditAmount float64
	NetAmount    float64

	WellID     string
	LeaseName  string
	PropertyID string
	AFENumber  *string
	JIBNumber  *string
	CostCenter string

	JournalSource   string
	TransactionType string
	Description     string

	FiscalPeriod string
	FiscalYear   int
	FiscalMonth  int

	State  string
	County string
	Basin  string

	CreatedTimestamp time.Time
	CreatedBy        string
	LastModified     time.Time
}

// wireRecord is the explicit JSON mapping: dates as YYYY-MM-DD, timestamps
// as RFC 3339, absent optionals as null.
type wireRecord struct {
	EntryID          int64   `json:"gl_entry_id"`
	JournalBatch     string  `json:"journal_batch"`
	JournalEntry     string  `json:"journal_entry"`
	TransactionDate  string  `json:"transaction_date"`
	PostingDate      string  `json:"posting_date"`
	AccountCode      string  `json:"account_code"`
	AccountName      string  `json:"account_name"`
	AccountType      string  `json:"account_type"`
	DebitAmount      float64 `json:"debit_amount"`
	CreditAmount     float64 `json:"credit_amount"`
	NetAmount        float64 `json:"net_amount"`
	WellID           string  `json:"well_id"`
	LeaseName        string  `json:"lease_name"`
	PropertyID       string  `json:"property_id"`
	AFENumber        *string `json:"afe_number"`
	JIBNumber        *string `json:"jib_number"`
	CostCenter       string  `json:"cost_center"`
	JournalSource    string  `json:"journal_source"`
	TransactionType  string  `json:"transaction_type"`
	Description      string  `json:"description"`
	FiscalPeriod     string  `json:"fiscal_period"`
	FiscalYear       int     `json:"fiscal_year"`
	FiscalMonth      int     `json:"fiscal_month"`
	State            string  `json:"state"`
	County           string  `json:"county"`
	Basin            string  `json:"basin"`
	CreatedTimestamp string  `json:"created_timestamp"`
	CreatedBy        string  `json:"created_by"`
	LastModified     string  `json:"last_modified"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireRecord{
		EntryID:          r.EntryID,
		JournalBatch:     r.JournalBatch,
		JournalEntry:     r.JournalEntry,
		TransactionDate:  r.TransactionDate.Format(time.DateOnly),
		PostingDate:      r.PostingDate.Format(time.DateOnly),
		AccountCode:      r.AccountCode,
		AccountName:      r.AccountName,
		AccountType:      r.AccountType,
		DebitAmount:      r.DebitAmount,
		CreditAmount:     r.CreditAmount,
		NetAmount:        r.NetAmount,
		WellID:           r.WellID,
		LeaseName:        r.LeaseName,
		PropertyID:       r.PropertyID,
		AFENumber:        r.AFENumber,
		JIBNumber:        r.JIBNumber,
		CostCenter:       r.CostCenter,
		JournalSource:    r.JournalSource,
		TransactionType:  r.TransactionType,
		Description:      r.Description,
		FiscalPeriod:     r.FiscalPeriod,
		FiscalYear:       r.FiscalYear,
		FiscalMonth:      r.FiscalMonth,
		State:            r.State,
		County:           r.County,
		Basin:            r.Basin,
		CreatedTimestamp: r.CreatedTimestamp.UTC().Format(time.RFC3339),
		CreatedBy:        r.CreatedBy,
		LastModified:     r.LastModified.UTC().Format(time.RFC3339),
	})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	txDate, err := time.Parse(time.DateOnly, w.TransactionDate)
	if err != nil {
		return fmt.Errorf("parsing transaction_date %q: %w", w.TransactionDate, err)
	}

	postDate, err := time.Parse(time.DateOnly, w.PostingDate)
	if err != nil {
		return fmt.Errorf("parsing posting_date %q: %w", w.PostingDate, err)
	}

	created, err := time.Parse(time.RFC3339, w.CreatedTimestamp)
	if err != nil {
		return fmt.Errorf("parsing created_timestamp %q: %w", w.CreatedTimestamp, err)
	}

	modified, err := time.Parse(time.RFC3339, w.LastModified)
	if err != nil {
		return fmt.Errorf("parsing last_modified %q: %w", w.LastModified, err)
	}

	*r = Record{
		EntryID:          w.EntryID,
		JournalBatch:     w.JournalBatch,
		JournalEntry:     w.JournalEntry,
		TransactionDate:  txDate,
		PostingDate:      postDate,
		AccountCode:      w.AccountCode,
		AccountName:      w.AccountName,
		AccountType:      w.AccountType,
		DebitAmount:      w.DebitAmount,
		CreditAmount:     w.CreditAmount,
		NetAmount:        w.NetAmount,
		WellID:           w.WellID,
		LeaseName:        w.LeaseName,
		PropertyID:       w.PropertyID,
		AFENumber:        w.AFENumber,
		JIBNumber:        w.JIBNumber,
		CostCenter:       w.CostCenter,
		JournalSource:    w.JournalSource,
		TransactionType:  w.TransactionType,
		Description:      w.Description,
		FiscalPeriod:     w.FiscalPeriod,
		FiscalYear:       w.FiscalYear,
		FiscalMonth:      w.FiscalMonth,
		State:            w.State,
		County:           w.County,
		Basin:            w.Basin,
		CreatedTimestamp: created,
		CreatedBy:        w.CreatedBy,
		LastModified:     modified,
	}

	return nil
}
