package stream

import (
	"context"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/dakotalabs/glstream/internal/ledger"
)

// EngineConfig fixes the parameters the record sequence is derived from.
// Identical Seed, Epoch and HistoricalDays always reproduce the identical
// sequence.
type EngineConfig struct {
	// Seed for the engine's single random source.
	Seed int64
	// Epoch anchors generation: the historical phase ends the day before
	// it, the live phase's simulated clock starts at its midnight.
	Epoch time.Time
	// HistoricalDays is the lookback window, one record per day.
	HistoricalDays int
	// Interval is the wall-clock tick of the live phase. It is decoupled
	// from the simulated one-second timestamp increment, so playback speed
	// never affects the data itself.
	Interval time.Duration
}

// Engine owns the process's one seeded random source and drives both
// generation phases against it. Nothing else may touch the source; field
// generation receives it only as an explicit parameter, never ambiently.
type Engine struct {
	cfg   EngineConfig
	rng   *rand.Rand
	synth *ledger.Synthesizer
	buf   *Buffer

	nextID    int64
	simClock  time.Time
	liveCount atomic.Int64
}

// Stats is a point-in-time view of the engine's counters.
type Stats struct {
	HistoricalRecords int
	LiveRecords       int
	TotalRecords      int
}

// NewEngine builds the engine and synchronously runs the historical phase:
// one record per calendar day for the lookback window, ending the day
// before the epoch, preloaded into the buffer before any consumer can
// attach.
func NewEngine(cfg EngineConfig, synth *ledger.Synthesizer, buf *Buffer) *Engine {
	e := &Engine{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		synth:    synth,
		buf:      buf,
		simClock: midnightUTC(cfg.Epoch),
	}

	day := midnightUTC(cfg.Epoch).AddDate(0, 0, -cfg.HistoricalDays)
	for i := 0; i < cfg.HistoricalDays; i++ {
		e.nextID++
		rec := e.synth.Synthesize(e.rng, e.nextID, day, day)
		e.buf.Append(rec)
		day = day.AddDate(0, 0, 1)
	}

	e.buf.MarkHistorical()

	return e
}

// Run is the live phase: one record per tick, each with a simulated
// timestamp one second after the previous, starting at the epoch. It only
// returns when ctx is cancelled. A record is appended only once fully
// synthesized, so readers never observe partial state.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	slog.Info("live generation started",
		"interval", e.cfg.Interval,
		"historical_records", e.buf.HistoricalLen())

	for {
		select {
		case <-ctx.Done():
			slog.Info("live generation stopped", "live_records", e.liveCount.Load())
			return ctx.Err()
		case <-ticker.C:
			e.nextID++
			txDate := midnightUTC(e.simClock)
			rec := e.synth.Synthesize(e.rng, e.nextID, txDate, e.simClock)
			e.buf.Append(rec)

			e.liveCount.Add(1)
			e.simClock = e.simClock.Add(time.Second)
		}
	}
}

// Stats returns the current record counts.
func (e *Engine) Stats() Stats {
	total := e.buf.Len()
	historical := e.buf.HistoricalLen()

	return Stats{
		HistoricalRecords: historical,
		LiveRecords:       total - historical,
		TotalRecords:      total,
	}
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
