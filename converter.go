package code2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alnah/go-code2pdf/internal/fonts"
	"github.com/alnah/go-code2pdf/internal/highlight"
	"github.com/alnah/go-code2pdf/internal/pdfdoc"
	"github.com/alnah/go-code2pdf/internal/textwrap"
	"github.com/alnah/go-code2pdf/internal/walk"
)

// creator is written to the PDF metadata.
const creator = "code2pdf"

// Converter turns directory trees into paginated PDFs.
// Create with NewConverter; a Converter may run Convert any number of times.
type Converter struct {
	cfg     converterConfig
	font    fonts.Font
	wrapper *textwrap.Wrapper
	caption *caption
}

// NewConverter validates the options and loads the font.
// Returns an error for invalid settings or when no usable font can be parsed.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{cfg: defaultConfig()}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.validate(); err != nil {
		return nil, err
	}

	if err := c.loadFont(); err != nil {
		return nil, err
	}

	if _, err := highlight.New(c.highlightConfig()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHighlighter, err)
	}

	capt, err := newCaption(c.cfg.pageText, c.cfg.pageDate, c.cfg.now(), c.wrapper)
	if err != nil {
		return nil, fmt.Errorf("page date: %w", err)
	}
	c.caption = capt

	return c, nil
}

// validate checks numeric settings.
func (cfg *converterConfig) validate() error {
	if err := cfg.dims.Validate(); err != nil {
		return err
	}
	if cfg.fontSize <= 0 {
		return fmt.Errorf("%w: %.2f (must be positive)", ErrInvalidFontSize, cfg.fontSize)
	}
	if cfg.fontSize*lineHeightFactor > cfg.dims.MaxTextHeight() {
		return fmt.Errorf("%w: %.2fpt lines do not fit a %.2fpt text area", ErrInvalidFontSize, cfg.fontSize*lineHeightFactor, cfg.dims.MaxTextHeight())
	}
	if cfg.workers < 0 {
		return fmt.Errorf("%w: %d (must be 0 for auto or positive)", ErrInvalidWorkers, cfg.workers)
	}
	if cfg.tabWidth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTabWidth, cfg.tabWidth)
	}
	if cfg.imageQuality < 1 || cfg.imageQuality > 100 {
		return fmt.Errorf("%w: %d (must be between 1 and 100)", ErrInvalidQuality, cfg.imageQuality)
	}
	return nil
}

// loadFont resolves the configured font, falling back to the bundled one.
func (c *Converter) loadFont() error {
	res := fonts.NewResolverWithDirs(c.cfg.fontDirs...).Resolve(c.cfg.font)
	if res.Status == fonts.FailProvided {
		c.cfg.logger.Warn("font unavailable, using bundled font",
			slog.String("font", c.cfg.font),
			slog.String("fallback", res.Font.Name),
			slog.Any("error", res.Err))
	}

	w, err := textwrap.New(res.Font.Data, c.cfg.fontSize)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFontParse, res.Font.Name, err)
	}

	c.font, c.wrapper = res.Font, w
	c.cfg.logger.Debug("font loaded", slog.String("font", res.Font.Name), slog.String("status", res.Status.String()))
	return nil
}

func (c *Converter) highlightConfig() highlight.Config {
	return highlight.Config{Style: c.cfg.style, MaxLineLength: c.cfg.maxLineLength}
}

// FontName returns the name of the font in use.
func (c *Converter) FontName() string {
	return c.font.Name
}

// Result is a laid out document ready to be written.
type Result struct {
	ProcessedFiles int           // files handed to the layout engine, including skipped ones
	Pages          int           // pages in the document
	Elapsed        time.Duration // layout time

	doc  *pdfdoc.Document
	font []byte
	save pdfdoc.SaveOptions
}

// Convert lays out every file under root (or root itself when it is a file).
// Unreadable entries are logged and skipped. Canceling ctx stops the walk and
// returns ctx.Err(). A panic on the calling goroutine (walk or assembly) is
// returned as an error; worker panics are confined to their file by the
// driver.
func (c *Converter) Convert(ctx context.Context, root string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	walker, err := walk.New(root, walk.Options{
		Include:   c.cfg.include,
		Exclude:   c.cfg.exclude,
		Hidden:    c.cfg.hidden,
		GitIgnore: c.cfg.gitIgnore,
	})
	if err != nil {
		if errors.Is(err, walk.ErrRootNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoInput, root)
		}
		return nil, err
	}

	start := time.Now()
	subset := newDocumentSubset()
	d := &driver{
		workers: ResolvePoolSize(c.cfg.workers),
		logger:  c.cfg.logger,
		factory: &workerFactory{
			cfg: builderConfig{
				dims:        c.cfg.dims,
				caption:     c.caption,
				includePath: c.cfg.includePath,
				tabWidth:    c.cfg.tabWidth,
				logger:      c.cfg.logger,
			},
			wrapper:   c.wrapper,
			highlight: c.highlightConfig(),
			subset:    subset,
		},
	}
	c.cfg.logger.Debug("starting conversion", slog.String("root", root), slog.Int("workers", d.workers))

	processed := d.run(ctx, walker.Entries())
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("conversion canceled: %w", err)
	}
	c.cfg.logger.Debug("layout finished", slog.Int("files", processed), slog.Int("pages", subset.pageCount()))
	doc := subset.document(c.cfg.title)

	return &Result{
		ProcessedFiles: processed,
		Pages:          len(doc.Pages),
		Elapsed:        time.Since(start),
		doc:            doc,
		font:           c.font.Data,
		save: pdfdoc.SaveOptions{
			ImageQuality:      c.cfg.imageQuality,
			MaxImageDimension: c.cfg.maxImageDimension,
			Creator:           creator,
		},
	}, nil
}

// Write serializes the document as PDF.
func (r *Result) Write(w io.Writer) error {
	if err := pdfdoc.Write(w, r.doc, r.font, r.save); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return nil
}

// Bytes renders the PDF to memory.
func (r *Result) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
