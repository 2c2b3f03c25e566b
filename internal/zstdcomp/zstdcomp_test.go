package zstdcomp_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hambosto/sweetbyte-rs/internal/swerr"
	"github.com/hambosto/sweetbyte-rs/internal/zstdcomp"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		[]byte("a"),
		[]byte(strings.Repeat("compressible data ", 1000)),
	} {
		compressed, err := zstdcomp.Compress(data)
		require.NoError(t, err)

		decompressed, err := zstdcomp.Decompress(compressed, len(data)+1024)
		require.NoError(t, err)
		assert.Equal(t, data, decompressed)
	}
}

func TestDecompressEnforcesCap(t *testing.T) {
	data := []byte(strings.Repeat("x", 64*1024))
	compressed, err := zstdcomp.Compress(data)
	require.NoError(t, err)

	_, err = zstdcomp.Decompress(compressed, 16)
	assert.ErrorIs(t, err, swerr.ErrDecompressionInvalid)
}

func TestDecompressRejectsGarbageInput(t *testing.T) {
	_, err := zstdcomp.Decompress([]byte("not a zstd frame"), 1024)
	assert.ErrorIs(t, err, swerr.ErrDecompressionInvalid)
}
