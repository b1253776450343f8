package converter

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		encoding EncodingOptions
		suffix   string
		want     string
	}{
		{"webp", "input/photo.jpg", WebPOptions{}, "", "photo.webp"},
		{"avif", "input/photo.png", AvifOptions{}, "", "photo.avif"},
		{"jpeg", "input/photo.avif", JpegOptions{}, "", "photo.jpg"},
		{"suffix", "input/photo.jpg", WebPOptions{}, "_small", "photo_small.webp"},
		{"dotted stem", "input/archive.2024.png", WebPOptions{}, "", "archive.2024.webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := Settings{Encoding: tt.encoding, NameExtension: tt.suffix}
			got, err := outputPath(tt.src, settings, "out")
			if err != nil {
				t.Fatalf("outputPath: %v", err)
			}
			if want := filepath.Join("out", tt.want); got != want {
				t.Fatalf("got %q, want %q", got, want)
			}
		})
	}
}

func TestOutputPathNoStem(t *testing.T) {
	settings := Settings{Encoding: WebPOptions{}}

	_, err := outputPath("input/.jpg", settings, "out")
	var namingErr *NamingError
	if !errors.As(err, &namingErr) {
		t.Fatalf("expected NamingError, got %v", err)
	}
}
