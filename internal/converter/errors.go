package converter

import (
	"errors"
	"fmt"
)

var (
	errNotDirectory = errors.New("exists but is not a directory")
	errUnknownCodec = errors.New("no encoder for codec")
)

// DiscoveryError means the input or output path could not be prepared. It
// aborts the whole batch before any work starts.
type DiscoveryError struct {
	Path string
	Err  error
}

func (e *DiscoveryError) Error() string { return fmt.Sprintf("discover %s: %v", e.Path, e.Err) }
func (e *DiscoveryError) Unwrap() error { return e.Err }

// DecodeError means a source file was unreadable, corrupt, or in an
// unsupported format.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.Path, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError means the codec rejected its parameters or failed internally.
type EncodeError struct {
	Codec string
	Err   error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("encode %s: %v", e.Codec, e.Err) }
func (e *EncodeError) Unwrap() error { return e.Err }

// IOError means the encoded output could not be written.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// NamingError means no output filename stem could be extracted from the
// source path.
type NamingError struct {
	Path string
}

func (e *NamingError) Error() string { return fmt.Sprintf("no file stem in %q", e.Path) }
