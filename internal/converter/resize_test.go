package converter

import (
	"image"
	"testing"
)

func TestTargetSize(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		mode  ResizeMode
		wantW int
		wantH int
	}{
		{"none identity", 123, 77, ResizeNone{}, 123, 77},
		{"largest wide", 200, 100, ResizeLargest{Size: 100}, 100, 50},
		{"largest tall", 100, 200, ResizeLargest{Size: 100}, 50, 100},
		{"largest square", 100, 100, ResizeLargest{Size: 40}, 40, 40},
		{"largest upscales", 50, 25, ResizeLargest{Size: 100}, 100, 50},
		{"largest truncates", 1920, 1080, ResizeLargest{Size: 1000}, 1000, 562},
		{"smallest wide", 200, 100, ResizeSmallest{Size: 50}, 100, 50},
		{"smallest tall", 100, 200, ResizeSmallest{Size: 50}, 50, 100},
		{"smallest upscales", 200, 100, ResizeSmallest{Size: 300}, 600, 300},
		{"exact ignores aspect", 1920, 1080, ResizeExact{Width: 300, Height: 300}, 300, 300},
		{"exact wide box", 100, 100, ResizeExact{Width: 640, Height: 480}, 640, 480},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotW, gotH := TargetSize(tt.w, tt.h, tt.mode)
			if gotW != tt.wantW || gotH != tt.wantH {
				t.Fatalf("TargetSize(%d, %d, %#v) = (%d, %d), want (%d, %d)",
					tt.w, tt.h, tt.mode, gotW, gotH, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestTargetSizePreservesAspect(t *testing.T) {
	dims := []struct{ w, h int }{
		{1920, 1080}, {1080, 1920}, {4032, 3024}, {640, 427}, {33, 77},
	}

	for _, d := range dims {
		for _, mode := range []ResizeMode{ResizeLargest{Size: 500}, ResizeSmallest{Size: 500}} {
			newW, newH := TargetSize(d.w, d.h, mode)
			// Integer truncation may shift the derived side by at most one
			// pixel: |newH*w - newW*h| stays below one source pixel row.
			diff := newH*d.w - newW*d.h
			if diff < 0 {
				diff = -diff
			}
			if diff >= d.w && diff >= d.h {
				t.Fatalf("aspect drifted: (%d, %d) -> (%d, %d) via %#v", d.w, d.h, newW, newH, mode)
			}
		}
	}
}

func TestApplyResize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 20))

	out := applyResize(src, ResizeNone{})
	if out != image.Image(src) {
		t.Fatal("none mode should return the image untouched")
	}

	out = applyResize(src, ResizeLargest{Size: 20})
	if b := out.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Fatalf("largest: got %dx%d, want 20x10", b.Dx(), b.Dy())
	}

	out = applyResize(src, ResizeExact{Width: 10, Height: 10})
	if b := out.Bounds(); b.Dx() != 10 || b.Dy() != 10 {
		t.Fatalf("exact: got %dx%d, want 10x10", b.Dx(), b.Dy())
	}
}
