package yamlutil_test

// Notes:
// - Only strict decoding is exposed: config files must fail loudly on typos.
// - TestInputSizeLimit mutates the package-level MaxInputSize and does not
//   run in parallel.

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-code2pdf/internal/yamlutil"
)

type testConfig struct {
	Name    string   `yaml:"name"`
	Count   int      `yaml:"count"`
	Enabled *bool    `yaml:"enabled"`
	Tags    []string `yaml:"tags"`
}

// errReader fails every read.
type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

// ---------------------------------------------------------------------------
// TestDecodeStrict - Parses YAML into Go structs
// ---------------------------------------------------------------------------

func TestDecodeStrict(t *testing.T) {
	t.Parallel()

	enabled := false

	tests := []struct {
		name    string
		input   string
		want    testConfig
		wantErr error
		wantMsg string
	}{
		{
			name:  "known fields only",
			input: "name: strict\ncount: 10\ntags: [a, b]",
			want:  testConfig{Name: "strict", Count: 10, Tags: []string{"a", "b"}},
		},
		{
			name:  "explicit false is kept",
			input: "enabled: false",
			want:  testConfig{Enabled: &enabled},
		},
		{
			name:    "unknown field",
			input:   "name: test\nunknown_field: value",
			wantErr: yamlutil.ErrDecode,
			wantMsg: "unknown_field",
		},
		{
			name:    "syntax error",
			input:   "name: test\ncount: [unclosed",
			wantErr: yamlutil.ErrDecode,
		},
		{
			name:    "type mismatch",
			input:   "count: many",
			wantErr: yamlutil.ErrDecode,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: yamlutil.ErrEmptyDocument,
		},
		{
			name:    "whitespace only",
			input:   "\n  \n",
			wantErr: yamlutil.ErrEmptyDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got testConfig
			err := yamlutil.DecodeStrict(strings.NewReader(tt.input), &got)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
					t.Errorf("error = %q, want containing %q", err, tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("decoded mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()

		err := yamlutil.DecodeStrict(strings.NewReader("name: test"), nil)
		if !errors.Is(err, yamlutil.ErrNilDestination) {
			t.Errorf("error = %v, want ErrNilDestination", err)
		}
	})

	t.Run("read failure", func(t *testing.T) {
		t.Parallel()

		var got testConfig
		err := yamlutil.DecodeStrict(errReader{}, &got)
		if err == nil || !strings.Contains(err.Error(), "disk on fire") {
			t.Errorf("error = %v, want read failure", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestDecodeFile - Opens and decodes a file
// ---------------------------------------------------------------------------

func TestDecodeFile(t *testing.T) {
	t.Parallel()

	t.Run("decodes file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "cfg.yaml")
		if err := os.WriteFile(path, []byte("name: file\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		var got testConfig
		if err := yamlutil.DecodeFile(path, &got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name != "file" {
			t.Errorf("Name = %q, want %q", got.Name, "file")
		}
	})

	t.Run("missing file keeps fs.ErrNotExist", func(t *testing.T) {
		t.Parallel()

		var got testConfig
		err := yamlutil.DecodeFile(filepath.Join(t.TempDir(), "missing.yaml"), &got)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("error = %v, want fs.ErrNotExist", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	input := "name: x" + strings.Repeat(" ", 93) // 100 bytes

	t.Run("input at limit succeeds", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		var cfg testConfig
		if err := yamlutil.DecodeStrict(strings.NewReader(input), &cfg); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("input exceeding limit fails with the limit", func(t *testing.T) {
		yamlutil.MaxInputSize = 50
		var cfg testConfig
		err := yamlutil.DecodeStrict(strings.NewReader(input), &cfg)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Fatalf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
		if !strings.Contains(err.Error(), "more than 50 bytes") {
			t.Errorf("error should contain the limit, got: %s", err)
		}
	})
}
