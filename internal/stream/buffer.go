package stream

import (
	"sync"
	"time"

	"github.com/dakotalabs/glstream/internal/ledger"
)

// Buffer is the append-only record log shared between the single generation
// engine (writer) and any number of streaming sessions and batch readers.
//
// The lock guards only the copy or append itself and is never held across a
// wait, so a slow or absent reader can never stall the writer. Records
// become visible strictly in append order.
type Buffer struct {
	mu         sync.Mutex
	records    []ledger.Record
	historical int
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds one fully synthesized record. Engine use only.
func (b *Buffer) Append(rec ledger.Record) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = append(b.records, rec)
}

// MarkHistorical freezes the current length as the historical portion of the
// log. Called once by the engine after the historical phase preload; the
// prefix is immutable from then on, which is what makes Range safe to run
// concurrently with live appends.
func (b *Buffer) MarkHistorical() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.historical = len(b.records)
}

// SnapshotAndTail atomically copies everything buffered so far and returns
// the cursor a new session should continue from.
func (b *Buffer) SnapshotAndTail() ([]ledger.Record, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot := make([]ledger.Record, len(b.records))
	copy(snapshot, b.records)

	return snapshot, len(snapshot)
}

// ReadFrom returns every record appended since cursor and the advanced
// cursor. An up-to-date cursor yields an empty slice, not an error.
func (b *Buffer) ReadFrom(cursor int) ([]ledger.Record, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cursor >= len(b.records) {
		return nil, cursor
	}

	fresh := make([]ledger.Record, len(b.records)-cursor)
	copy(fresh, b.records[cursor:])

	return fresh, len(b.records)
}

// Range filters the historical portion by transaction date, inclusive on
// both ends. A range matching nothing returns an empty slice.
func (b *Buffer) Range(start, end time.Time) []ledger.Record {
	b.mu.Lock()
	historical := b.records[:b.historical]
	b.mu.Unlock()

	// The historical prefix never changes after MarkHistorical, so the
	// filter can run outside the lock.
	var matched []ledger.Record

	for _, rec := range historical {
		if !rec.TransactionDate.Before(start) && !rec.TransactionDate.After(end) {
			matched = append(matched, rec)
		}
	}

	return matched
}

// After returns up to limit records with entry id strictly above the
// watermark, in append order. Reads the whole log, historical and live.
func (b *Buffer) After(watermark int64, limit int) []ledger.Record {
	b.mu.Lock()
	defer b.mu.Unlock()

	var matched []ledger.Record

	for _, rec := range b.records {
		if rec.EntryID <= watermark {
			continue
		}

		matched = append(matched, rec)
		if limit > 0 && len(matched) >= limit {
			break
		}
	}

	return matched
}

// Window returns up to limit records with start <= transaction date < end,
// across the whole log.
func (b *Buffer) Window(start, end time.Time, limit int) []ledger.Record {
	b.mu.Lock()
	defer b.mu.Unlock()

	var matched []ledger.Record

	for _, rec := range b.records {
		if rec.TransactionDate.Before(start) || !rec.TransactionDate.Before(end) {
			continue
		}

		matched = append(matched, rec)
		if limit > 0 && len(matched) >= limit {
			break
		}
	}

	return matched
}

// Len is the total number of buffered records.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.records)
}

// HistoricalLen is the size of the frozen historical portion.
func (b *Buffer) HistoricalLen() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.historical
}
