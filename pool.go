package code2pdf

import (
	"runtime"

	"github.com/alnah/go-code2pdf/internal/highlight"
	"github.com/alnah/go-code2pdf/internal/textwrap"
)

// MinPoolSize ensures at least one worker is available.
const MinPoolSize = 1

// ResolvePoolSize determines the worker count.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs for containers).
// Exported for use by CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	return max(runtime.GOMAXPROCS(0), MinPoolSize)
}

// worker is the per-goroutine state of the driver: its own builder, glyph
// cache and lexer state. Nothing in it is shared.
type worker struct {
	builder     *pageBuilder
	highlighter *highlight.Highlighter
}

// workerFactory creates workers lazily, on the first file a goroutine pulls.
type workerFactory struct {
	cfg       builderConfig
	wrapper   *textwrap.Wrapper // prototype, cloned per worker
	highlight highlight.Config
	subset    *documentSubset
}

func (f *workerFactory) newWorker() (*worker, error) {
	h, err := highlight.New(f.highlight)
	if err != nil {
		return nil, err
	}
	return &worker{
		builder:     newPageBuilder(f.cfg, f.wrapper.Clone(), f.subset),
		highlighter: h,
	}, nil
}
