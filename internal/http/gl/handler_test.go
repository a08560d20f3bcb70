package gl_test

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dakotalabs/glstream/internal/account"
	apihttp "github.com/dakotalabs/glstream/internal/http"
	"github.com/dakotalabs/glstream/internal/http/gl"
	"github.com/dakotalabs/glstream/internal/ledger"
	"github.com/dakotalabs/glstream/internal/stream"
)

const testLookbackDays = 5

func newTestServer(t *testing.T, interval time.Duration) (*httptest.Server, *stream.Engine, *stream.Buffer) {
	t.Helper()

	catalog := account.NewCatalog()
	buf := stream.NewBuffer()
	engine := stream.NewEngine(stream.EngineConfig{
		Seed:           42,
		Epoch:          time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC),
		HistoricalDays: testLookbackDays,
		Interval:       interval,
	}, ledger.NewSynthesizer(catalog), buf)

	handler := gl.NewHandler(buf, engine, catalog, "gl-stream-api", "test", interval)
	server := httptest.NewServer(apihttp.New(handler))
	t.Cleanup(server.Close)

	return server, engine, buf
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))

	return resp.StatusCode
}

func TestHandler_Health(t *testing.T) {
	server, _, _ := newTestServer(t, time.Second)

	var body struct {
		Status            string `json:"status"`
		Service           string `json:"service"`
		HistoricalRecords int    `json:"historical_records"`
		LiveRecords       int    `json:"live_records"`
		TotalRecords      int    `json:"total_records"`
	}

	status := getJSON(t, server.URL+"/health", &body)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "gl-stream-api", body.Service)
	assert.Equal(t, testLookbackDays, body.HistoricalRecords)
	assert.Zero(t, body.LiveRecords)
	assert.Equal(t, testLookbackDays, body.TotalRecords)
}

func TestHandler_RangeQuery(t *testing.T) {
	server, _, _ := newTestServer(t, time.Second)

	var body struct {
		Count     int             `json:"count"`
		StartDate string          `json:"start_date"`
		EndDate   string          `json:"end_date"`
		Data      []ledger.Record `json:"data"`
	}

	status := getJSON(t, server.URL+"/get-gl?start_date=2025-11-06&end_date=2025-11-07", &body)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "2025-11-06", body.StartDate)
	assert.Equal(t, "2025-11-07", body.EndDate)
	require.Len(t, body.Data, 2)
	assert.Equal(t, time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC), body.Data[0].TransactionDate)

	// Empty ranges still answer with data: [].
	status = getJSON(t, server.URL+"/get-gl?start_date=2024-01-01&end_date=2024-01-31", &body)
	require.Equal(t, http.StatusOK, status)
	assert.Zero(t, body.Count)
	assert.NotNil(t, body.Data)
}

func TestHandler_RangeValidation(t *testing.T) {
	server, _, _ := newTestServer(t, time.Second)

	type testCase struct {
		name      string
		query     string
		wantField string
		wantValue string
	}

	tests := []testCase{
		{
			name:      "MissingEndDate",
			query:     "start_date=2025-11-06",
			wantField: "end_date",
			wantValue: "",
		},
		{
			name:      "MissingStartDate",
			query:     "end_date=2025-11-07",
			wantField: "start_date",
			wantValue: "",
		},
		{
			name:      "MalformedStartDate",
			query:     "start_date=11/06/2025&end_date=2025-11-07",
			wantField: "start_date",
			wantValue: "11/06/2025",
		},
		{
			name:      "MalformedEndDate",
			query:     "start_date=2025-11-06&end_date=november",
			wantField: "end_date",
			wantValue: "november",
		},
		{
			name:      "StartAfterEnd",
			query:     "start_date=2025-11-08&end_date=2025-11-06",
			wantField: "start_date",
			wantValue: "2025-11-08",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Error   string            `json:"error"`
				Details map[string]string `json:"details"`
			}

			status := getJSON(t, server.URL+"/get-gl?"+tt.query, &body)

			require.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, body.Error)

			value, ok := body.Details[tt.wantField]
			require.True(t, ok, "details should name the offending field")
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestHandler_Batch(t *testing.T) {
	server, _, _ := newTestServer(t, time.Second)

	var body struct {
		Count int             `json:"count"`
		Data  []ledger.Record `json:"data"`
	}

	t.Run("SinceWatermark", func(t *testing.T) {
		status := getJSON(t, server.URL+"/get-gl-batch?since_id=3", &body)

		require.Equal(t, http.StatusOK, status)
		require.Equal(t, 2, body.Count)
		assert.Equal(t, int64(4), body.Data[0].EntryID)
		assert.Equal(t, int64(5), body.Data[1].EntryID)
	})

	t.Run("Limit", func(t *testing.T) {
		status := getJSON(t, server.URL+"/get-gl-batch?since_id=0&limit=2", &body)

		require.Equal(t, http.StatusOK, status)
		require.Equal(t, 2, body.Count)
		assert.Equal(t, int64(1), body.Data[0].EntryID)
	})

	t.Run("CaughtUp", func(t *testing.T) {
		status := getJSON(t, server.URL+"/get-gl-batch?since_id=5", &body)

		require.Equal(t, http.StatusOK, status)
		assert.Zero(t, body.Count)
		assert.NotNil(t, body.Data)
	})

	t.Run("WindowEndExclusive", func(t *testing.T) {
		status := getJSON(t, server.URL+"/get-gl-batch?start_date=2025-11-05&end_date=2025-11-07", &body)

		require.Equal(t, http.StatusOK, status)
		require.Equal(t, 2, body.Count)
		assert.Equal(t, time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC), body.Data[0].TransactionDate)
		assert.Equal(t, time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC), body.Data[1].TransactionDate)
	})

	t.Run("BadLimit", func(t *testing.T) {
		var errBody struct {
			Error string `json:"error"`
		}

		status := getJSON(t, server.URL+"/get-gl-batch?limit=zero", &errBody)
		require.Equal(t, http.StatusBadRequest, status)
		assert.NotEmpty(t, errBody.Error)

		status = getJSON(t, server.URL+"/get-gl-batch?limit=-1", &errBody)
		require.Equal(t, http.StatusBadRequest, status)
	})
}

func TestHandler_Stream(t *testing.T) {
	server, engine, _ := newTestServer(t, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = engine.Run(ctx) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/get-gl", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	require.True(t, scanner.Scan(), "expected a snapshot frame")

	var snapshot struct {
		Type  string          `json:"type"`
		Count int             `json:"count"`
		Data  []ledger.Record `json:"data"`
	}

	require.NoError(t, json.Unmarshal(scanner.Bytes(), &snapshot))
	assert.Equal(t, "buffered_records", snapshot.Type)
	require.GreaterOrEqual(t, snapshot.Count, testLookbackDays)
	assert.Len(t, snapshot.Data, snapshot.Count)

	// The tail picks up exactly where the snapshot left off.
	nextID := snapshot.Data[len(snapshot.Data)-1].EntryID + 1

	for i := 0; i < 3; i++ {
		require.True(t, scanner.Scan(), "expected a live frame")

		var frame struct {
			Type string        `json:"type"`
			Data ledger.Record `json:"data"`
		}

		require.NoError(t, json.Unmarshal(scanner.Bytes(), &frame))
		assert.Equal(t, "new_record", frame.Type)
		assert.Equal(t, nextID+int64(i), frame.Data.EntryID, fmt.Sprintf("frame %d out of order", i))
	}
}
