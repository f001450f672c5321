package code2pdf

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sync"

	"github.com/alnah/go-code2pdf/internal/walk"
)

// job is one file handed to a worker.
type job struct {
	path    string
	ordinal int
}

// driver fans walk entries out to a fixed number of goroutines.
type driver struct {
	workers int
	factory *workerFactory
	logger  *slog.Logger
}

// run processes every file of entries and returns how many files were
// processed. Entries are numbered in walk order as they are dispatched;
// the numbering is what restores document order afterwards. Per-entry
// errors are logged and skipped. Canceling ctx stops dispatch; files
// already handed to workers are finished.
func (d *driver) run(ctx context.Context, entries iter.Seq2[walk.Entry, error]) int {
	jobs := make(chan job)
	counts := make([]int, d.workers)

	var wg sync.WaitGroup
	for i := range d.workers {
		wg.Go(func() {
			counts[i] = d.work(jobs)
		})
	}

	ordinal := 0
dispatch:
	for e, err := range entries {
		if err != nil {
			d.logger.Warn("skipping unreadable entry", slog.String("path", e.Path), slog.Any("error", err))
			continue
		}
		if !e.IsFile {
			continue
		}
		if ctx.Err() != nil {
			d.logger.Warn("conversion canceled", slog.Int("dispatched", ordinal))
			break
		}
		select {
		case jobs <- job{path: e.Path, ordinal: ordinal}:
			ordinal++
		case <-ctx.Done():
			d.logger.Warn("conversion canceled", slog.Int("dispatched", ordinal))
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

// work drains jobs with one lazily created worker and returns its
// processed file count.
func (d *driver) work(jobs <-chan job) int {
	var w *worker
	var initErr error

	for j := range jobs {
		if w == nil && initErr == nil {
			w, initErr = d.factory.newWorker()
			if initErr != nil {
				d.logger.Error("worker initialization failed", slog.Any("error", initErr))
			}
		}
		if initErr != nil {
			d.logger.Warn("skipping file", slog.String("path", j.path), slog.Any("error", initErr))
			continue
		}

		d.logger.Debug("processing file", slog.String("path", j.path), slog.Int("ordinal", j.ordinal))
		if err := d.process(w, j); err != nil {
			d.logger.Warn("skipping file", slog.String("path", j.path), slog.Any("error", err))
		}
	}

	if w == nil {
		return 0
	}
	return w.builder.processedFileCount()
}

// process lays out one file. A panic from a lexer or an image decoder is
// returned as ErrFilePanic; the file's pages are dropped and the worker
// stays usable for the next file.
func (d *driver) process(w *worker, j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.builder.abandonFile(j.ordinal)
			err = fmt.Errorf("%w: %v", ErrFilePanic, r)
		}
	}()
	return w.builder.processFile(j.path, j.ordinal, w.highlighter)
}
