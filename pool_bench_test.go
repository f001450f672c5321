//go:build bench

package code2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// BenchmarkResolvePoolSize benchmarks pool size calculation.
func BenchmarkResolvePoolSize(b *testing.B) {
	workers := []int{0, 1, 2, 4, 8}

	for _, w := range workers {
		b.Run(workerName(w), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = ResolvePoolSize(w)
			}
		})
	}
}

func workerName(w int) string {
	if w == 0 {
		return "auto"
	}
	return fmt.Sprintf("%d", w)
}

// BenchmarkConvert lays out a synthetic tree with varying worker counts.
func BenchmarkConvert(b *testing.B) {
	root := b.TempDir()
	line := strings.Repeat("value := compute(input, 42) // trailing comment\n", 400)
	for i := range 64 {
		dir := filepath.Join(root, fmt.Sprintf("pkg%d", i%8))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			b.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("f%d.go", i)), []byte(line), 0o644); err != nil {
			b.Fatal(err)
		}
	}

	for _, w := range []int{1, 2, 4, 8} {
		b.Run(workerName(w), func(b *testing.B) {
			c, err := NewConverter(WithWorkers(w))
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			for b.Loop() {
				if _, err := c.Convert(context.Background(), root); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
