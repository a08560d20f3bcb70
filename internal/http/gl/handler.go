package gl

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dakotalabs/glstream/internal/account"
	"github.com/dakotalabs/glstream/internal/stream"
)

const defaultBatchLimit = 1000

const maxBatchLimit = 5000

// Handler serves the GL streaming and query surface.
type Handler struct {
	buf     *stream.Buffer
	engine  *stream.Engine
	catalog *account.Catalog

	service  string
	version  string
	interval time.Duration
}

func NewHandler(buf *stream.Buffer, engine *stream.Engine, catalog *account.Catalog, service, version string, interval time.Duration) *Handler {
	return &Handler{
		buf:      buf,
		engine:   engine,
		catalog:  catalog,
		service:  service,
		version:  version,
		interval: interval,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.root)
	r.Get("/health", h.health)
	r.Get("/get-gl", h.getGL)
	r.Get("/get-gl-batch", h.getGLBatch)
}

// getGL either answers a bounded historical range query or runs a streaming
// session, depending on whether a date range was supplied.
func (h *Handler) getGL(w http.ResponseWriter, r *http.Request) {
	startParam := r.URL.Query().Get("start_date")
	endParam := r.URL.Query().Get("end_date")

	if startParam == "" && endParam == "" {
		h.streamSession(w, r)
		return
	}

	start, end, err := parseRange(startParam, endParam)
	if err != nil {
		writeRangeError(w, err)
		return
	}

	records := h.buf.Range(start, end)

	writeJSON(w, http.StatusOK, rangeResponse{
		Count:     len(records),
		StartDate: formatDate(start),
		EndDate:   formatDate(end),
		Data:      nonNull(records),
	})
}

// streamSession implements snapshot + tail: one buffered_records frame with
// everything generated so far, then one new_record frame per record until
// the client disconnects. Each session holds its own cursor; sessions never
// coordinate with each other or block the writer.
func (h *Handler) streamSession(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported by connection", nil)
		return
	}

	sessionID := uuid.New()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")

	snapshot, cursor := h.buf.SnapshotAndTail()

	enc := json.NewEncoder(w)
	if err := enc.Encode(bufferedFrame{
		Type:  "buffered_records",
		Count: len(snapshot),
		Data:  nonNull(snapshot),
	}); err != nil {
		slog.Error("stream session failed", "session", sessionID, "error", &stream.StreamingError{Err: err})
		return
	}

	flusher.Flush()

	slog.Info("stream session attached", "session", sessionID, "snapshot", len(snapshot))

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			slog.Info("stream session detached", "session", sessionID, "cursor", cursor)
			return
		case <-ticker.C:
			records, next := h.buf.ReadFrom(cursor)
			for _, rec := range records {
				if err := enc.Encode(newRecordFrame{Type: "new_record", Data: rec}); err != nil {
					slog.Error("stream session failed", "session", sessionID, "error", &stream.StreamingError{Err: err})
					return
				}
			}

			if len(records) > 0 {
				flusher.Flush()
			}

			cursor = next
		}
	}
}

// getGLBatch serves the ingestion collaborator: finite pulls by entry-id
// watermark or by a half-open transaction-date window.
func (h *Handler) getGLBatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := defaultBatchLimit

	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer", map[string]string{"limit": raw})
			return
		}

		limit = min(parsed, maxBatchLimit)
	}

	startParam := q.Get("start_date")
	endParam := q.Get("end_date")

	if startParam != "" || endParam != "" {
		start, end, err := parseRange(startParam, endParam)
		if err != nil {
			writeRangeError(w, err)
			return
		}

		// Batch windows are half-open: end_date is exclusive, matching the
		// ingestion collaborator's partition boundaries.
		records := h.buf.Window(start, end, limit)
		writeJSON(w, http.StatusOK, batchResponse{Count: len(records), Data: nonNull(records)})

		return
	}

	var watermark int64

	if raw := q.Get("since_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "since_id must be a non-negative integer", map[string]string{"since_id": raw})
			return
		}

		watermark = parsed
	}

	records := h.buf.After(watermark, limit)
	writeJSON(w, http.StatusOK, batchResponse{Count: len(records), Data: nonNull(records)})
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	stats := h.engine.Stats()

	writeJSON(w, http.StatusOK, healthResponse{
		Status:            "healthy",
		Service:           h.service,
		Version:           h.version,
		HistoricalRecords: stats.HistoricalRecords,
		LiveRecords:       stats.LiveRecords,
		TotalRecords:      stats.TotalRecords,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, infoResponse{
		Service:     h.service,
		Version:     h.version,
		Description: "Streams QByte-style General Ledger data for oil & gas operations",
		Endpoints: map[string]string{
			"/health":       "Health check endpoint",
			"/get-gl":       "Stream GL records (instant buffered records + live tail), or historical range with start_date/end_date",
			"/get-gl-batch": "Bounded batch reads by since_id watermark or date window",
		},
		AccountTypes: h.catalog.TypeInfo(),
	})
}

// parseRange validates the both-or-neither date pair shared by the range and
// window queries.
func parseRange(startParam, endParam string) (start, end time.Time, err error) {
	if startParam == "" || endParam == "" {
		return time.Time{}, time.Time{}, &stream.InvalidRangeError{
			Field:  missingField(startParam),
			Value:  "",
			Reason: "start_date and end_date must be provided together",
		}
	}

	start, err = time.Parse(time.DateOnly, strings.TrimSpace(startParam))
	if err != nil {
		return time.Time{}, time.Time{}, &stream.InvalidRangeError{
			Field:  "start_date",
			Value:  startParam,
			Reason: "expected YYYY-MM-DD",
		}
	}

	end, err = time.Parse(time.DateOnly, strings.TrimSpace(endParam))
	if err != nil {
		return time.Time{}, time.Time{}, &stream.InvalidRangeError{
			Field:  "end_date",
			Value:  endParam,
			Reason: "expected YYYY-MM-DD",
		}
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, &stream.InvalidRangeError{
			Field:  "start_date",
			Value:  startParam,
			Reason: fmt.Sprintf("start_date must not be after end_date %s", endParam),
		}
	}

	return start, end, nil
}

func missingField(startParam string) string {
	if startParam == "" {
		return "start_date"
	}

	return "end_date"
}

func writeRangeError(w http.ResponseWriter, err error) {
	var rangeErr *stream.InvalidRangeError
	if errors.As(err, &rangeErr) {
		writeError(w, http.StatusBadRequest, rangeErr.Reason, map[string]string{rangeErr.Field: rangeErr.Value})
		return
	}

	writeError(w, http.StatusInternalServerError, "internal error", nil)
}

func writeError(w http.ResponseWriter, status int, msg string, details map[string]string) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
