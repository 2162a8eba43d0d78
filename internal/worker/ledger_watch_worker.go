package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// pinger is the slice of the ledger client the watcher needs.
type pinger interface {
	Ping(ctx context.Context) error
}

// LedgerWatchWorker periodically probes the attestation ledger. Verification
// treats a dead ledger as "record not found", so without this probe an outage
// is invisible until a recovery lookup silently fails.
type LedgerWatchWorker struct {
	ledger   pinger
	interval time.Duration

	up bool
}

// NewLedgerWatchWorker constructs a LedgerWatchWorker.
func NewLedgerWatchWorker(ledger pinger, interval time.Duration) *LedgerWatchWorker {
	return &LedgerWatchWorker{ledger: ledger, interval: interval, up: true}
}

// Start begins the probe loop and listens for context cancellation.
func (w *LedgerWatchWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting ledger watch worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Ledger watch worker stopped")
			return
		}
	}
}

func (w *LedgerWatchWorker) run(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := w.ledger.Ping(probeCtx)
	switch {
	case err != nil && w.up:
		w.up = false
		log.Error().Err(err).Msg("Attestation ledger is unreachable, verify fallback is degraded")
	case err == nil && !w.up:
		w.up = true
		log.Info().Msg("Attestation ledger is reachable again")
	}
}
