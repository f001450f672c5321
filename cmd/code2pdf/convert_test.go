package main

// Notes:
// - parseConvertFlags: we test defaults and that only given flags count as changed.
// - mergeFlags/applyEnvConfig: we test the full precedence chain
//   flags > env > config file > defaults.
// - buildOptions: we test that merged settings produce a working converter and
//   that invalid geometry is rejected. Options are closures, so individual
//   values are checked end to end through runMain instead.
// - runConvert end to end lives in main_test.go.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	code2pdf "github.com/alnah/go-code2pdf"
	"github.com/alnah/go-code2pdf/internal/config"
	"github.com/alnah/go-code2pdf/internal/walk"
)

func mustParse(t *testing.T, args ...string) (*convertFlags, []string) {
	t.Helper()
	f, rest, err := parseConvertFlags(args, io.Discard)
	if err != nil {
		t.Fatalf("parseConvertFlags(%v) error: %v", args, err)
	}
	return f, rest
}

// ---------------------------------------------------------------------------
// TestParseConvertFlags - Defaults and changed tracking
// ---------------------------------------------------------------------------

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		f, rest := mustParse(t, "src")

		if diff := cmp.Diff([]string{"src"}, rest); diff != "" {
			t.Errorf("positional mismatch (-want +got):\n%s", diff)
		}
		if f.output != "output.pdf" {
			t.Errorf("output = %q, want output.pdf", f.output)
		}
		if diff := cmp.Diff(code2pdf.DefaultExcludes, f.input.exclude); diff != "" {
			t.Errorf("exclude mismatch (-want +got):\n%s", diff)
		}
		if !f.document.includePath {
			t.Error("includePath should default to true")
		}
		if f.document.name != "Project Code" {
			t.Errorf("name = %q, want Project Code", f.document.name)
		}
		if f.font.size != 12 {
			t.Errorf("font size = %v, want 12", f.font.size)
		}
		got := [4]float64{f.page.marginTop, f.page.marginBottom, f.page.marginLeft, f.page.marginRight}
		if got != [4]float64{20, 5, 10, 10} {
			t.Errorf("margins = %v, want [20 5 10 10]", got)
		}
		if f.changed("output") {
			t.Error("output should not be reported as changed")
		}
	})

	t.Run("given flags are changed", func(t *testing.T) {
		t.Parallel()

		f, rest := mustParse(t, "-o", "x.pdf", "--exclude", "*.lock,vendor", "--include-path=false", "-w", "4", "src", "-q")

		if len(rest) != 1 || rest[0] != "src" {
			t.Errorf("positional = %v, want [src]", rest)
		}
		for _, name := range []string{"output", "exclude", "include-path", "workers", "quiet"} {
			if !f.changed(name) {
				t.Errorf("%s should be reported as changed", name)
			}
		}
		if diff := cmp.Diff([]string{"*.lock", "vendor"}, f.input.exclude); diff != "" {
			t.Errorf("exclude mismatch (-want +got):\n%s", diff)
		}
		if f.document.includePath {
			t.Error("includePath should be false")
		}
		if !f.common.quiet {
			t.Error("quiet should be true")
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()

		if _, _, err := parseConvertFlags([]string{"--nope"}, io.Discard); err == nil {
			t.Error("expected error for unknown flag")
		}
	})

	t.Run("help prints usage", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, _, err := parseConvertFlags([]string{"--help"}, &buf)
		if err == nil {
			t.Fatal("expected ErrHelp")
		}
		if !strings.Contains(buf.String(), "Usage: code2pdf [convert]") {
			t.Errorf("usage not printed, got %q", buf.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestMergeFlags - Precedence chain
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	fileConfig := func() *config.Config {
		return &config.Config{
			Output:    config.OutputConfig{Path: "file.pdf"},
			Page:      config.PageConfig{Size: "letter", Orientation: "landscape", Text: "File"},
			Highlight: config.HighlightConfig{Style: "github"},
			Font:      config.FontConfig{Size: 9},
		}
	}

	tests := []struct {
		name  string
		args  []string
		env   *envConfig
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "config file only",
			args: []string{"src"},
			env:  &envConfig{},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Page.Size != "letter" || cfg.Output.Path != "file.pdf" || cfg.Font.Size != 9 {
					t.Errorf("config values lost: %+v", cfg)
				}
			},
		},
		{
			name: "env beats config file",
			args: []string{"src"},
			env:  &envConfig{PageSize: "legal", Style: "monokai"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Page.Size != "legal" {
					t.Errorf("Page.Size = %q, want legal", cfg.Page.Size)
				}
				if cfg.Highlight.Style != "monokai" {
					t.Errorf("Highlight.Style = %q, want monokai", cfg.Highlight.Style)
				}
			},
		},
		{
			name: "flags beat env and config file",
			args: []string{"src", "-p", "a4", "--style", "dracula", "--font-size", "14", "-o", "flag.pdf"},
			env:  &envConfig{PageSize: "legal", Style: "monokai", FontSize: 8, Output: "env.pdf"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Page.Size != "a4" {
					t.Errorf("Page.Size = %q, want a4", cfg.Page.Size)
				}
				if cfg.Highlight.Style != "dracula" {
					t.Errorf("Highlight.Style = %q, want dracula", cfg.Highlight.Style)
				}
				if cfg.Font.Size != 14 {
					t.Errorf("Font.Size = %v, want 14", cfg.Font.Size)
				}
				if cfg.Output.Path != "flag.pdf" {
					t.Errorf("Output.Path = %q, want flag.pdf", cfg.Output.Path)
				}
			},
		},
		{
			name: "flag defaults do not mask config file",
			args: []string{"src", "-v"},
			env:  &envConfig{},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Page.Orientation != "landscape" {
					t.Errorf("Page.Orientation = %q, want landscape", cfg.Page.Orientation)
				}
				if cfg.Page.Margins.Top != nil {
					t.Errorf("Margins.Top = %v, want unset", *cfg.Page.Margins.Top)
				}
			},
		},
		{
			name: "explicit zero and false values",
			args: []string{"src", "--margin-left", "0", "--tab-width", "0", "--include-path=false", "--no-gitignore"},
			env:  &envConfig{},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Page.Margins.Left == nil || *cfg.Page.Margins.Left != 0 {
					t.Error("Margins.Left should be set to 0")
				}
				if cfg.Highlight.TabWidth == nil || *cfg.Highlight.TabWidth != 0 {
					t.Error("TabWidth should be set to 0")
				}
				if cfg.Document.IncludePath == nil || *cfg.Document.IncludePath {
					t.Error("IncludePath should be set to false")
				}
				if cfg.Input.GitIgnore == nil || *cfg.Input.GitIgnore {
					t.Error("GitIgnore should be set to false")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flags, _ := mustParse(t, tt.args...)
			cfg := fileConfig()
			applyEnvConfig(tt.env, cfg)
			mergeFlags(flags, cfg)
			tt.check(t, cfg)
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildOptions - Converter options from merged config
// ---------------------------------------------------------------------------

func TestBuildOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults build a converter", func(t *testing.T) {
		t.Parallel()

		flags, _ := mustParse(t, "src")
		opts, err := buildOptions(flags, config.DefaultConfig())
		if err != nil {
			t.Fatalf("buildOptions() error: %v", err)
		}
		if _, err := code2pdf.NewConverter(opts...); err != nil {
			t.Errorf("NewConverter() error: %v", err)
		}
	})

	t.Run("invalid page size", func(t *testing.T) {
		t.Parallel()

		flags, _ := mustParse(t, "src", "-p", "a3")
		cfg := config.DefaultConfig()
		mergeFlags(flags, cfg)

		_, err := buildOptions(flags, cfg)
		if !errors.Is(err, code2pdf.ErrInvalidPageSize) {
			t.Errorf("error = %v, want ErrInvalidPageSize", err)
		}
	})

	t.Run("margins swallowing the page", func(t *testing.T) {
		t.Parallel()

		flags, _ := mustParse(t, "src", "--margin-left", "150", "--margin-right", "150")
		cfg := config.DefaultConfig()
		mergeFlags(flags, cfg)

		_, err := buildOptions(flags, cfg)
		if !errors.Is(err, code2pdf.ErrInvalidMargin) {
			t.Errorf("error = %v, want ErrInvalidMargin", err)
		}
	})

	t.Run("font dirs only when set", func(t *testing.T) {
		t.Parallel()

		flags, _ := mustParse(t, "src")
		base, err := buildOptions(flags, config.DefaultConfig())
		if err != nil {
			t.Fatal(err)
		}
		cfg := config.DefaultConfig()
		cfg.Font.Dirs = []string{t.TempDir()}
		withDirs, err := buildOptions(flags, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if len(withDirs) != len(base)+1 {
			t.Errorf("len(options) = %d, want %d", len(withDirs), len(base)+1)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveInputPath - Positional argument handling
// ---------------------------------------------------------------------------

func TestResolveInputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{"one input", []string{"src"}, "src", nil},
		{"no input", nil, "", ErrMissingInput},
		{"two inputs", []string{"a", "b"}, "", ErrInvalidFlags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveInputPath(tt.args)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveInputPath(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Hints per error kind
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		config string
		want   string
	}{
		{"config by name", config.ErrConfigNotFound, "work", "go-code2pdf"},
		{"config by path", config.ErrConfigNotFound, "./work.yaml", "use --config"},
		{"font", code2pdf.ErrFontParse, "", "go-mono"},
		{"style", code2pdf.ErrHighlighter, "", "monokai"},
		{"pattern", walk.ErrInvalidPattern, "", "quote them"},
		{"no input", code2pdf.ErrNoInput, "", "pass an existing directory"},
		{"unknown", errors.New("boom"), "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err, tt.config)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestWithHint(t *testing.T) {
	t.Parallel()

	err := withHint(code2pdf.ErrNoInput, "\n  hint: try again")
	if !errors.Is(err, code2pdf.ErrNoInput) {
		t.Error("hint should keep the error chain")
	}
	if !strings.HasSuffix(err.Error(), "hint: try again") {
		t.Errorf("error = %q, want hint suffix", err)
	}
	if withHint(code2pdf.ErrNoInput, "") != code2pdf.ErrNoInput {
		t.Error("empty hint should return the error unchanged")
	}
}

// ---------------------------------------------------------------------------
// TestNewLogger - Level and handler selection
// ---------------------------------------------------------------------------

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		quiet     bool
		verbose   bool
		wantWarn  bool
		wantDebug bool
	}{
		{"default", false, false, true, false},
		{"quiet", true, false, false, false},
		{"verbose", false, true, true, true},
		{"quiet wins", true, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := newLogger(&buf, tt.quiet, tt.verbose)
			logger.Warn("warn record")
			logger.Debug("debug record")
			logger.Error("error record")

			out := buf.String()
			if !strings.Contains(out, `"msg":"error record"`) {
				t.Errorf("errors must always be logged as JSON off a terminal, got %q", out)
			}
			if got := strings.Contains(out, "warn record"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
			if got := strings.Contains(out, "debug record"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPrintSummary - Completion report
// ---------------------------------------------------------------------------

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	r := &code2pdf.Result{ProcessedFiles: 3, Pages: 7, Elapsed: 1234 * time.Microsecond}

	tests := []struct {
		name   string
		common commonFlags
		want   string
	}{
		{"default", commonFlags{}, "Created out.pdf (3 files, 7 pages)\n"},
		{"verbose", commonFlags{verbose: true}, "3 files, 7 pages -> out.pdf (1ms)\n"},
		{"quiet", commonFlags{quiet: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printSummary(&buf, r, "out.pdf", tt.common)
			if buf.String() != tt.want {
				t.Errorf("printSummary() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunConvert_Canceled - Interrupted conversions write nothing
// ---------------------------------------------------------------------------

func TestRunConvert_Canceled(t *testing.T) {
	t.Parallel()

	root := makeTree(t, map[string]string{"main.go": "package main\n"})
	out := filepath.Join(t.TempDir(), "code.pdf")
	env, _, _ := newTestEnv()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runConvert(ctx, []string{root, "-o", out}, env)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("runConvert() error = %v, want %v", err, context.Canceled)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("canceled conversion must not write output")
	}
}
