package converter

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"
)

// Encode serialises img with the selected codec and returns the encoded
// bytes. It knows nothing about file paths.
func Encode(img image.Image, opts EncodingOptions) ([]byte, error) {
	var buf bytes.Buffer

	switch o := opts.(type) {
	case WebPOptions:
		err := webp.Encode(&buf, img, webp.Options{
			Quality:  o.Quality,
			Lossless: o.Lossless,
		})
		if err != nil {
			return nil, &EncodeError{Codec: "webp", Err: err}
		}
	case AvifOptions:
		err := avif.Encode(&buf, img, avif.Options{
			Quality:      o.Quality,
			QualityAlpha: o.Quality,
			Speed:        o.Speed,
		})
		if err != nil {
			return nil, &EncodeError{Codec: "avif", Err: err}
		}
	case JpegOptions:
		err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(o.Quality))
		if err != nil {
			return nil, &EncodeError{Codec: "jpeg", Err: err}
		}
	default:
		return nil, &EncodeError{Codec: "unknown", Err: errUnknownCodec}
	}

	return buf.Bytes(), nil
}
