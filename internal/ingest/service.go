package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dakotalabs/glstream/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=ingest

// Source is where records are pulled from, normally the API's batch
// endpoint.
type Source interface {
	// FetchSince returns records with entry id strictly above the watermark.
	FetchSince(ctx context.Context, watermark int64) ([]ledger.Record, error)
	// FetchWindow returns records with start <= transaction date < end.
	FetchWindow(ctx context.Context, start, end time.Time) ([]ledger.Record, error)
}

// Warehouse is the destination store for ingested records.
type Warehouse interface {
	MaxEntryID(ctx context.Context) (int64, error)
	InsertRecords(ctx context.Context, records []ledger.Record) error
	DeleteWindow(ctx context.Context, start, end time.Time) (int64, error)
}

// Result summarizes one ingestion run.
type Result struct {
	Processed int
	Watermark int64
}

// Service loads GL records from a Source into the Warehouse. Retrying a
// failed pull is the scheduler's concern, not the service's: every run is
// safe to repeat.
type Service struct {
	source    Source
	warehouse Warehouse
}

func NewService(source Source, warehouse Warehouse) *Service {
	return &Service{source: source, warehouse: warehouse}
}

// RunIncremental pulls everything above the warehouse's current entry-id
// watermark and appends it. An empty pull is a no-op, not an error.
func (s *Service) RunIncremental(ctx context.Context) (Result, error) {
	watermark, err := s.warehouse.MaxEntryID(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("reading watermark: %w", err)
	}

	records, err := s.source.FetchSince(ctx, watermark)
	if err != nil {
		return Result{}, fmt.Errorf("fetching records above id %d: %w", watermark, err)
	}

	if len(records) == 0 {
		slog.Info("no new records to ingest", "watermark", watermark)
		return Result{Watermark: watermark}, nil
	}

	if err := s.warehouse.InsertRecords(ctx, records); err != nil {
		return Result{}, fmt.Errorf("inserting %d records: %w", len(records), err)
	}

	newWatermark := records[len(records)-1].EntryID
	slog.Info("ingested records", "count", len(records), "watermark", newWatermark)

	return Result{Processed: len(records), Watermark: newWatermark}, nil
}

// RunWindow replaces the warehouse contents for one half-open
// transaction-date window [start, end). Deleting first makes re-running a
// window idempotent.
func (s *Service) RunWindow(ctx context.Context, start, end time.Time) (Result, error) {
	records, err := s.source.FetchWindow(ctx, start, end)
	if err != nil {
		return Result{}, fmt.Errorf("fetching window %s to %s: %w",
			start.Format(time.DateOnly), end.Format(time.DateOnly), err)
	}

	if len(records) == 0 {
		slog.Info("no records in window",
			"start", start.Format(time.DateOnly), "end", end.Format(time.DateOnly))
		return Result{}, nil
	}

	deleted, err := s.warehouse.DeleteWindow(ctx, start, end)
	if err != nil {
		return Result{}, fmt.Errorf("clearing window: %w", err)
	}

	if err := s.warehouse.InsertRecords(ctx, records); err != nil {
		return Result{}, fmt.Errorf("inserting %d records: %w", len(records), err)
	}

	slog.Info("reloaded window",
		"start", start.Format(time.DateOnly), "end", end.Format(time.DateOnly),
		"replaced", deleted, "count", len(records))

	return Result{Processed: len(records), Watermark: records[len(records)-1].EntryID}, nil
}
