package ingest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dakotalabs/glstream/internal/ingest"
	"github.com/dakotalabs/glstream/internal/ledger"
)

func wireBatch(t *testing.T, recs []ledger.Record) []byte {
	t.Helper()

	body, err := json.Marshal(struct {
		Count int             `json:"count"`
		Data  []ledger.Record `json:"data"`
	}{Count: len(recs), Data: recs})
	require.NoError(t, err)

	return body
}

func wireRecords(ids ...int64) []ledger.Record {
	day := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)

	recs := make([]ledger.Record, 0, len(ids))
	for _, id := range ids {
		recs = append(recs, ledger.Record{
			EntryID:          id,
			TransactionDate:  day,
			PostingDate:      day,
			CreatedTimestamp: day,
			LastModified:     day,
		})
	}

	return recs
}

func TestClient_FetchSince(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get-gl-batch", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("since_id"))
		assert.Equal(t, "500", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(wireBatch(t, wireRecords(43, 44)))
	}))
	defer server.Close()

	client := ingest.NewClient(server.URL, 500, time.Second)

	records, err := client.FetchSince(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(43), records[0].EntryID)
	assert.Equal(t, int64(44), records[1].EntryID)
}

func TestClient_FetchWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-11-05", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2025-11-07", r.URL.Query().Get("end_date"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(wireBatch(t, nil))
	}))
	defer server.Close()

	client := ingest.NewClient(server.URL, 500, time.Second)

	records, err := client.FetchWindow(context.Background(),
		time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClient_RejectsNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"bad"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := ingest.NewClient(server.URL, 500, time.Second)

	_, err := client.FetchSince(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code 400")
}
