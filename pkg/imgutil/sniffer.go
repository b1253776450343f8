package imgutil

import (
	"errors"
	"io"
	"os"
)

// Kind identifies a supported source image container.
type Kind int

const (
	KindUnknown Kind = iota
	KindJPEG
	KindPNG
	KindAVIF
)

func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpeg"
	case KindPNG:
		return "png"
	case KindAVIF:
		return "avif"
	default:
		return "unknown"
	}
}

var (
	pngSig  = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	jpegSig = []byte{0xff, 0xd8, 0xff}
)

// DetectHeader inspects the first 12 bytes of a file for known signatures.
func DetectHeader(header []byte) (Kind, error) {
	if len(header) < 12 {
		return KindUnknown, errors.New("header too short")
	}

	if hasPrefix(header, jpegSig) {
		return KindJPEG, nil
	}
	if hasPrefix(header, pngSig) {
		return KindPNG, nil
	}
	if string(header[4:8]) == "ftyp" {
		switch string(header[8:12]) {
		case "avif", "avis":
			return KindAVIF, nil
		}
	}

	return KindUnknown, nil
}

// SniffFile reads the first 12 bytes of a file to determine its type.
func SniffFile(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	return SniffReader(f)
}

// SniffReader reads the first 12 bytes from r and determines its type.
func SniffReader(r io.Reader) (Kind, error) {
	header := make([]byte, 12)
	if _, err := io.ReadFull(r, header); err != nil {
		return KindUnknown, err
	}

	return DetectHeader(header)
}

func hasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i := range prefix {
		if buf[i] != prefix[i] {
			return false
		}
	}
	return true
}
