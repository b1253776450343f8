package converter

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// setupBatchDir chdirs into a fresh temp dir with input/ and output/ so the
// batch's fixed relative folder names resolve inside it.
func setupBatchDir(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, dir := range []string{InputDir, OutputDir} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
}

func writeTestJPEG(t *testing.T, name string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 90, A: 255})
		}
	}
	path := filepath.Join(InputDir, name)
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save %s: %v", name, err)
	}
	return path
}

func writeTestPNG(t *testing.T, name string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	path := filepath.Join(InputDir, name)
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save %s: %v", name, err)
	}
	return path
}

func writeCorruptJPEG(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(InputDir, name)
	if err := os.WriteFile(path, []byte("definitely not an image"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

type eventTally struct {
	started        map[string]int
	finished       map[string]int
	succeeded      int
	failed         int
	queueCompleted int
	outOfOrder     bool
}

// drain consumes the event stream until the batch closes it.
func drain(t *testing.T, emitter *Emitter, onFinished func(FinishedProcessingEvent)) eventTally {
	t.Helper()
	tally := eventTally{started: map[string]int{}, finished: map[string]int{}}

	for event := range emitter.Events() {
		switch ev := event.(type) {
		case StartProcessingEvent:
			tally.started[ev.Path]++
		case FinishedProcessingEvent:
			if tally.started[ev.Path] == 0 {
				tally.outOfOrder = true
			}
			tally.finished[ev.Path]++
			if ev.Success {
				tally.succeeded++
			} else {
				tally.failed++
			}
			if onFinished != nil {
				onFinished(ev)
			}
		case QueueCompletedEvent:
			tally.queueCompleted++
		}
	}
	return tally
}

func TestBatchMixedSuccessAndFailure(t *testing.T) {
	setupBatchDir(t)
	writeTestJPEG(t, "a.jpg")
	writeTestJPEG(t, "b.jpg")
	writeCorruptJPEG(t, "broken.jpg")

	files, err := Discover(InputDir, OutputDir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("discovery is extension-based only; got %d files, want 3", len(files))
	}

	settings := DefaultSettings()
	settings.Workers = 2

	emitter := NewEmitter(16)
	batch := NewBatch(settings, emitter, zap.NewNop())
	go batch.Run(files)

	tally := drain(t, emitter, nil)

	if tally.queueCompleted != 1 {
		t.Fatalf("got %d QueueCompleted events, want exactly 1", tally.queueCompleted)
	}
	if len(tally.started) != 3 || len(tally.finished) != 3 {
		t.Fatalf("got %d starts, %d finishes, want 3 each", len(tally.started), len(tally.finished))
	}
	if tally.succeeded != 2 || tally.failed != 1 {
		t.Fatalf("got %d succeeded, %d failed, want 2 and 1", tally.succeeded, tally.failed)
	}
	if tally.outOfOrder {
		t.Fatal("a FinishedProcessing arrived before its StartProcessing")
	}

	for _, name := range []string{"a.webp", "b.webp"} {
		if _, err := os.Stat(filepath.Join(OutputDir, name)); err != nil {
			t.Fatalf("missing output %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(OutputDir, "broken.webp")); err == nil {
		t.Fatal("corrupt input should not produce output")
	}
}

func TestBatchStemCollisionLastWriterWins(t *testing.T) {
	setupBatchDir(t)
	writeTestJPEG(t, "a.jpg")
	writeTestPNG(t, "a.png")

	files, err := Discover(InputDir, OutputDir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	settings := DefaultSettings()
	settings.Workers = 1

	emitter := NewEmitter(16)
	batch := NewBatch(settings, emitter, zap.NewNop())
	go batch.Run(files)

	tally := drain(t, emitter, nil)

	// Both units target a.webp; the overwrite is not an error.
	if tally.succeeded != 2 || tally.failed != 0 {
		t.Fatalf("got %d succeeded, %d failed, want 2 and 0", tally.succeeded, tally.failed)
	}

	entries, err := os.ReadDir(OutputDir)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "a.webp" {
		t.Fatalf("expected a single a.webp, got %v", entries)
	}
}

func TestBatchCooperativeCancellation(t *testing.T) {
	setupBatchDir(t)
	var files []string
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg", "f.jpg"} {
		files = append(files, writeTestJPEG(t, name))
	}

	settings := DefaultSettings()
	settings.Workers = 1

	emitter := NewEmitter(0)
	batch := NewBatch(settings, emitter, zap.NewNop())
	go batch.Run(files)

	stopped := false
	tally := drain(t, emitter, func(FinishedProcessingEvent) {
		if !stopped {
			stopped = true
			batch.RequestStop()
		}
	})

	if tally.queueCompleted != 1 {
		t.Fatalf("got %d QueueCompleted events, want exactly 1 even when cancelled", tally.queueCompleted)
	}
	finished := len(tally.finished)
	if finished < 1 || finished > len(files) {
		t.Fatalf("got %d finishes for %d files", finished, len(files))
	}
	// Skipped units report nothing at all.
	if len(tally.started) != finished {
		t.Fatalf("got %d starts but %d finishes; skipped files must stay silent", len(tally.started), finished)
	}
}

func TestBatchUnblocksWhenConsumerLeavesMidBatch(t *testing.T) {
	setupBatchDir(t)
	var files []string
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"} {
		files = append(files, writeTestJPEG(t, name))
	}

	settings := DefaultSettings()
	settings.Workers = 1

	emitter := NewEmitter(0)
	batch := NewBatch(settings, emitter, zap.NewNop())

	runDone := make(chan struct{})
	go func() {
		batch.Run(files)
		close(runDone)
	}()

	// Consume until the first unit finishes, then walk away without
	// draining the rest.
	for event := range emitter.Events() {
		if _, ok := event.(FinishedProcessingEvent); ok {
			break
		}
	}
	emitter.CloseConsumer()

	select {
	case <-runDone:
	case <-time.After(5 * time.Second):
		t.Fatal("batch stayed blocked after its consumer left")
	}
}

func TestBatchAbortsWhenConsumerGone(t *testing.T) {
	setupBatchDir(t)
	files := []string{
		writeTestJPEG(t, "a.jpg"),
		writeTestJPEG(t, "b.jpg"),
	}

	settings := DefaultSettings()
	settings.Workers = 1

	emitter := NewEmitter(0)
	emitter.CloseConsumer()

	batch := NewBatch(settings, emitter, zap.NewNop())
	// Must return instead of blocking on sends into the void.
	batch.Run(files)

	entries, err := os.ReadDir(OutputDir)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("no unit should start without a consumer, got outputs %v", entries)
	}
}
