package fastx

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Format is a detected compression format.
type Format int

const (
	// None means the stream is not compressed.
	None Format = iota
	Gzip
	Bzip2
	Zstd
	Xz
)

// EnabledFormats is a build-time (or test-time) knob restricting which
// decompressors are available; spec §4.1: "absent formats are decided at
// build time through a configuration knob". By default all four are
// enabled.
type EnabledFormats struct {
	Gzip, Bzip2, Zstd, Xz bool
}

// AllFormats enables every supported decompressor.
func AllFormats() EnabledFormats {
	return EnabledFormats{Gzip: true, Bzip2: true, Zstd: true, Xz: true}
}

func (e EnabledFormats) enabled(f Format) bool {
	switch f {
	case Gzip:
		return e.Gzip
	case Bzip2:
		return e.Bzip2
	case Zstd:
		return e.Zstd
	case Xz:
		return e.Xz
	default:
		return true
	}
}

// detectFormat inspects the first five bytes of r, which must support
// Peek (a *bufio.Reader does), against the magic-byte table in spec §4.1.
// It does not consume bytes from r: detection is done through Peek, so the
// stream position is left untouched, matching the "restored to 0 before
// returning" contract for a fresh file-backed reader.
func detectFormat(r *bufio.Reader) (Format, error) {
	magic, err := r.Peek(5)
	if err != nil && len(magic) == 0 {
		return None, err
	}
	switch {
	case len(magic) >= 2 && magic[0] == 0x1F && magic[1] == 0x8B:
		return Gzip, nil
	case len(magic) >= 2 && magic[0] == 0x42 && magic[1] == 0x5A:
		return Bzip2, nil
	case len(magic) >= 4 && magic[0] == 0x28 && magic[1] == 0xB5 && magic[2] == 0x2F && magic[3] == 0xFD:
		return Zstd, nil
	case len(magic) >= 5 && magic[0] == 0xFD && magic[1] == 0x37 && magic[2] == 0x7A && magic[3] == 0x58 && magic[4] == 0x5A:
		return Xz, nil
	default:
		return None, nil
	}
}

// Open opens path (local filesystem path, or an "s3://bucket/key" URI; see
// s3.go) and returns a decompressing byte-oriented reader, auto-detecting
// the compression format from its magic bytes (spec §4.1). The returned
// reader is safe to hand off to another goroutine once opened.
func Open(path string) (io.Reader, error) {
	return OpenWithFormats(path, AllFormats())
}

// OpenWithFormats is Open with an explicit set of enabled decompressors.
func OpenWithFormats(path string, enabled EnabledFormats) (io.Reader, error) {
	raw, err := openRaw(path)
	if err != nil {
		return nil, err
	}

	buf := bufio.NewReaderSize(raw, 64*1024)
	format, err := detectFormat(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("fastx: reading magic bytes: %w", err)
	}
	if !enabled.enabled(format) {
		return nil, fmt.Errorf("fastx: detected %v compression but its decoder is disabled", format)
	}

	switch format {
	case Gzip:
		return gzip.NewReader(buf)
	case Bzip2:
		return bzip2.NewReader(buf, nil)
	case Zstd:
		zr, err := zstd.NewReader(buf)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case Xz:
		return xz.NewReader(buf)
	default:
		return buf, nil
	}
}

func openRaw(path string) (io.Reader, error) {
	if isS3Path(path) {
		return openS3(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fastx: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("fastx: %w", err)
	}
	if fi.Size() == 0 {
		return nil, fmt.Errorf("fastx: %s is empty", path)
	}
	return f, nil
}

func (f Format) String() string {
	switch f {
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case Zstd:
		return "zstd"
	case Xz:
		return "xz"
	default:
		return "none"
	}
}
