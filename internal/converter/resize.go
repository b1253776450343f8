package converter

import (
	"image"

	"github.com/disintegration/imaging"
)

// resampleFilter is used for every resize. Not user-configurable.
var resampleFilter = imaging.Lanczos

// TargetSize maps source dimensions through a resize mode using integer
// arithmetic, truncating the derived side. Largest and Smallest always
// rescale, even when the source is already smaller than the requested size.
func TargetSize(width, height int, mode ResizeMode) (int, int) {
	switch m := mode.(type) {
	case ResizeLargest:
		if width >= height {
			return m.Size, m.Size * height / width
		}
		return m.Size * width / height, m.Size
	case ResizeSmallest:
		if width <= height {
			return m.Size, m.Size * height / width
		}
		return m.Size * width / height, m.Size
	case ResizeExact:
		return m.Width, m.Height
	default:
		return width, height
	}
}

// applyResize resamples img to the dimensions TargetSize picks. Exact mode
// fills the target box and center-crops the overflow rather than stretching.
func applyResize(img image.Image, mode ResizeMode) image.Image {
	switch m := mode.(type) {
	case ResizeExact:
		return imaging.Fill(img, m.Width, m.Height, imaging.Center, resampleFilter)
	case ResizeLargest, ResizeSmallest:
		bounds := img.Bounds()
		width, height := TargetSize(bounds.Dx(), bounds.Dy(), mode)
		return imaging.Resize(img, width, height, resampleFilter)
	default:
		return img
	}
}
