package fileutil_test

// Notes:
// - The Write, Close and Chmod error branches of WriteFileAtomic are not
//   tested because triggering disk write failures is platform-specific.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-code2pdf/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Output file creation
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing string // content written before the call; empty = no file
		data     string
	}{
		{name: "new file", data: "%PDF-1.4"},
		{name: "overwrite existing", existing: "old content", data: "%PDF-1.7"},
		{name: "empty data", data: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "out.pdf")
			if tt.existing != "" {
				if err := os.WriteFile(path, []byte(tt.existing), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			if err := fileutil.WriteFileAtomic(path, []byte(tt.data)); err != nil {
				t.Fatalf("WriteFileAtomic() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read output: %v", err)
			}
			if string(got) != tt.data {
				t.Errorf("content = %q, want %q", got, tt.data)
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatal(err)
			}
			for _, e := range entries {
				if strings.HasSuffix(e.Name(), ".tmp") {
					t.Errorf("temp file %q left behind", e.Name())
				}
			}
		})
	}
}

func TestWriteFileAtomic_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{
			name:    "path is a directory",
			path:    dir,
			wantErr: fileutil.ErrOutputIsDir,
		},
		{
			name:    "missing parent directory",
			path:    filepath.Join(dir, "missing", "out.pdf"),
			wantErr: fileutil.ErrOutputDirMiss,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.WriteFileAtomic(tt.path, []byte("x"))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("WriteFileAtomic() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFileExists - File existence check
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "regular file", path: file, want: true},
		{name: "directory", path: dir, want: false},
		{name: "missing", path: filepath.Join(dir, "nope"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLooksLikeFontPath - Font name vs path detection
// ---------------------------------------------------------------------------

func TestLooksLikeFontPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "Fira Code", want: false},
		{input: "go-mono", want: false},
		{input: "DejaVuSansMono", want: false},
		{input: "mono.ttf", want: true},
		{input: "fonts/mono", want: true},
		{input: `C:\Fonts\mono`, want: true},
		{input: ".fonts", want: true},
		{input: strings.Repeat("a", 31), want: false},
		{input: strings.Repeat("a", 32), want: true},
		{input: strings.Repeat("é", 31), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.LooksLikeFontPath(tt.input); got != tt.want {
				t.Errorf("LooksLikeFontPath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsImageFile - Image extension detection
// ---------------------------------------------------------------------------

func TestIsImageFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{path: "logo.png", want: true},
		{path: "photo.JPG", want: true},
		{path: "a/b/c.jpeg", want: true},
		{path: "favicon.ico", want: true},
		{path: "scan.bmp", want: true},
		{path: "pic.webp", want: true},
		{path: "vector.svg", want: false},
		{path: "main.go", want: false},
		{path: "png", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsImageFile(tt.path); got != tt.want {
				t.Errorf("IsImageFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
