// Package zstdcomp wraps github.com/klauspost/compress/zstd at the fixed
// level this container format uses, the same dependency family the teacher
// carries (klauspost/compress), generalized from a seekable stream wrapper
// to whole-chunk compress/decompress calls.
package zstdcomp

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/hambosto/sweetbyte-rs/internal/swerr"
)

// Compress returns the zstd-compressed form of data at the fastest encoder
// level (level 1). An empty input compresses to a valid, empty-decoding
// zstd frame rather than erroring, so that the round-trip law holds on
// zero-length chunks.
func Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("zstdcomp: failed to create encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

// Decompress reverses Compress, refusing to produce more than cap bytes of
// output so that a maliciously crafted small input cannot expand without
// bound before the caller notices.
func Decompress(data []byte, cap int) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstdcomp: failed to create decoder: %w", err)
	}
	defer dec.Close()

	limited := &limitWriter{limit: cap}
	out, err := decodeWithLimit(dec, data, limited)
	if err != nil {
		return nil, fmt.Errorf("zstdcomp: %w: %v", swerr.ErrDecompressionInvalid, err)
	}
	return out, nil
}

// decodeWithLimit streams the zstd frame through an io.Reader so the
// decoder never materializes more than limit.limit bytes before this
// function notices the overrun and aborts.
func decodeWithLimit(dec *zstd.Decoder, data []byte, limited *limitWriter) ([]byte, error) {
	if err := dec.Reset(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	buf := make([]byte, 32*1024)
	for {
		n, err := dec.Read(buf)
		if n > 0 {
			if werr := limited.Write(buf[:n]); werr != nil {
				return nil, werr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return limited.buf, nil
}

type limitWriter struct {
	buf   []byte
	limit int
}

func (w *limitWriter) Write(p []byte) error {
	if len(w.buf)+len(p) > w.limit {
		return fmt.Errorf("decompressed output exceeds cap of %d bytes", w.limit)
	}
	w.buf = append(w.buf, p...)
	return nil
}
