package gl

import (
	"time"

	"github.com/dakotalabs/glstream/internal/ledger"
)

// Stream frames. The first frame of a session carries the full snapshot,
// every frame after it exactly one record.
type bufferedFrame struct {
	Type  string          `json:"type"`
	Count int             `json:"count"`
	Data  []ledger.Record `json:"data"`
}

type newRecordFrame struct {
	Type string        `json:"type"`
	Data ledger.Record `json:"data"`
}

type rangeResponse struct {
	Count     int             `json:"count"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Data      []ledger.Record `json:"data"`
}

type batchResponse struct {
	Count int             `json:"count"`
	Data  []ledger.Record `json:"data"`
}

type healthResponse struct {
	Status            string `json:"status"`
	Service           string `json:"service"`
	Version           string `json:"version"`
	HistoricalRecords int    `json:"historical_records"`
	LiveRecords       int    `json:"live_records"`
	TotalRecords      int    `json:"total_records"`
	Timestamp         string `json:"timestamp"`
}

type infoResponse struct {
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Description  string            `json:"description"`
	Endpoints    map[string]string `json:"endpoints"`
	AccountTypes map[string]string `json:"account_types"`
}

type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// nonNull keeps empty result sets serializing as [] rather than null.
func nonNull(recs []ledger.Record) []ledger.Record {
	if recs == nil {
		return []ledger.Record{}
	}

	return recs
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
