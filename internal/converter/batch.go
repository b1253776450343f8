// Package converter implements the batch conversion pipeline: discovery,
// resize policy, codec encoding, and the parallel fan-out that reports
// lifecycle events to a consumer.
package converter

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Batch converts one discovered file list under one settings snapshot. A
// Batch runs once; only one may be active at a time, which the caller must
// ensure.
type Batch struct {
	id        string
	settings  Settings
	outputDir string
	emitter   *Emitter
	log       *zap.Logger
	stop      atomic.Bool
}

// NewBatch copies settings into a fresh batch with its own stop flag.
func NewBatch(settings Settings, emitter *Emitter, log *zap.Logger) *Batch {
	id := uuid.NewString()
	return &Batch{
		id:        id,
		settings:  settings,
		outputDir: OutputDir,
		emitter:   emitter,
		log:       log.With(zap.String("batch", id)),
	}
}

// ID identifies the batch in log output.
func (b *Batch) ID() string { return b.id }

// RequestStop flips the cancellation flag. Cancellation is cooperative:
// units already in flight run to completion, units not yet dispatched are
// skipped without events.
func (b *Batch) RequestStop() {
	b.stop.Store(true)
}

// Run fans files out across the worker pool, emits the single
// QueueCompleted once every dispatched unit has returned, and closes the
// event stream. It blocks until the batch is done.
func (b *Batch) Run(files []string) {
	start := time.Now()
	defer b.emitter.Close()

	b.emitter.Emit(MessageEvent{Text: fmt.Sprintf("Processing %d files...", len(files))})
	b.log.Info("batch started", zap.Int("files", len(files)))

	workers := b.settings.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			b.worker(jobs)
		}()
	}

	for _, file := range files {
		jobs <- file
	}
	close(jobs)
	wg.Wait()

	elapsed := time.Since(start)
	b.emitter.Emit(QueueCompletedEvent{Duration: elapsed})
	b.log.Info("batch finished", zap.Duration("elapsed", elapsed))
}

// worker drains the jobs channel. Cancelled or consumer-less units are
// skipped, not reported; skipping keeps draining so the dispatcher never
// blocks.
func (b *Batch) worker(jobs <-chan string) {
	for path := range jobs {
		if b.stop.Load() {
			continue
		}

		if !b.emitter.Emit(StartProcessingEvent{Path: path}) {
			// Consumer is gone; abort the unstarted remainder.
			b.stop.Store(true)
			continue
		}

		res := convertFile(path, b.settings, b.outputDir, b.log)

		name := filepath.Base(path)
		if res.Success {
			b.emitter.Emit(MessageEvent{Text: fmt.Sprintf("Processed %q in %.2fs", name, res.Duration.Seconds())})
		} else {
			b.emitter.Emit(MessageEvent{Text: fmt.Sprintf("Failed to process %q", name)})
		}

		if !b.emitter.Emit(FinishedProcessingEvent{Path: res.Path, Success: res.Success, Duration: res.Duration}) {
			b.stop.Store(true)
		}
	}
}
