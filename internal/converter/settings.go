package converter

// Settings is the immutable snapshot one batch runs under. The presentation
// layer builds it, NewBatch copies it, and nothing mutates it afterwards.
type Settings struct {
	Encoding EncodingOptions
	Resize   ResizeMode

	// NameExtension is appended to the output file stem. Callers must strip
	// filesystem-forbidden characters before building the snapshot.
	NameExtension string

	// KeepExif is stored on the snapshot but no encode path reads it.
	// TODO: honor keep-exif once the codec encoders can carry metadata through.
	KeepExif bool

	// Workers bounds the conversion pool. Zero means one per CPU.
	Workers int
}

// EncodingOptions selects the output codec and its parameters. Exactly one
// of the three variants is held per batch.
type EncodingOptions interface {
	// Ext returns the output filename extension for the codec.
	Ext() string
}

type AvifOptions struct {
	Quality int // 5-100
	Speed   int // 1-10

	// Lossless is declared for parity with the settings surface; the AVIF
	// encode path does not consume it.
	Lossless bool
}

type WebPOptions struct {
	Quality  int // 5-100
	Lossless bool
}

type JpegOptions struct {
	Quality int // 5-100
}

func (AvifOptions) Ext() string { return ".avif" }
func (WebPOptions) Ext() string { return ".webp" }
func (JpegOptions) Ext() string { return ".jpg" }

// ResizeMode selects how target dimensions are derived from source
// dimensions.
type ResizeMode interface{ resizeMode() }

// ResizeNone leaves the image at its original dimensions.
type ResizeNone struct{}

// ResizeLargest scales the larger side to Size, keeping aspect ratio.
type ResizeLargest struct{ Size int }

// ResizeSmallest scales the smaller side to Size, keeping aspect ratio.
type ResizeSmallest struct{ Size int }

// ResizeExact scale-to-fills the target box and center-crops the overflow,
// so the result is exactly Width x Height.
type ResizeExact struct{ Width, Height int }

func (ResizeNone) resizeMode()     {}
func (ResizeLargest) resizeMode()  {}
func (ResizeSmallest) resizeMode() {}
func (ResizeExact) resizeMode()    {}

// DefaultSettings mirrors the defaults the interactive surface starts from.
func DefaultSettings() Settings {
	return Settings{
		Encoding: WebPOptions{Quality: 90},
		Resize:   ResizeNone{},
	}
}
