package header_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hambosto/sweetbyte-rs/internal/header"
	"github.com/hambosto/sweetbyte-rs/internal/params"
	"github.com/hambosto/sweetbyte-rs/internal/section"
	"github.com/hambosto/sweetbyte-rs/internal/swerr"
)

func fastKDF() params.KDF {
	return params.KDF{MemoryKiB: 8 * 1024, Time: 1, Parallelism: 1}
}

func testMetadata() header.Metadata {
	m := header.Metadata{Filename: "secret.docx", Size: 4096}
	for i := range m.ContentHash {
		m.ContentHash[i] = byte(i * 3)
	}
	return m
}

func TestWriteReadRoundTrip(t *testing.T) {
	meta := testMetadata()
	written, err := header.Write([]byte("correct horse battery"), fastKDF(), meta)
	require.NoError(t, err)
	defer written.Keys.Close()

	keys, gotMeta, err := header.Read(bytes.NewReader(written.Bytes), []byte("correct horse battery"))
	require.NoError(t, err)
	defer keys.Close()

	assert.Equal(t, meta, gotMeta)
	assert.Equal(t, written.Keys.AESKey, keys.AESKey)
	assert.Equal(t, written.Keys.XKey, keys.XKey)
	assert.Equal(t, written.Keys.HMACKey, keys.HMACKey)
}

func TestReadRejectsWrongPassword(t *testing.T) {
	written, err := header.Write([]byte("correct horse battery"), fastKDF(), testMetadata())
	require.NoError(t, err)
	defer written.Keys.Close()

	_, _, err = header.Read(bytes.NewReader(written.Bytes), []byte("wrong password"))
	assert.ErrorIs(t, err, swerr.ErrMacMismatch)
}

func TestReadRejectsCorruptedMAC(t *testing.T) {
	written, err := header.Write([]byte("correct horse battery"), fastKDF(), testMetadata())
	require.NoError(t, err)
	defer written.Keys.Close()

	corrupted := append([]byte(nil), written.Bytes...)
	// The MAC is the last section and its encoded length is the fifth entry
	// of the lengths table. A single flipped byte would be repaired by
	// Reed-Solomon, so flip every byte of the section.
	macLen := int(binary.BigEndian.Uint32(corrupted[16:20]))
	for i := len(corrupted) - macLen; i < len(corrupted); i++ {
		corrupted[i] ^= 0xFF
	}

	_, _, err = header.Read(bytes.NewReader(corrupted), []byte("correct horse battery"))
	assert.Error(t, err)
}

func TestReadRejectsBadMagic(t *testing.T) {
	written, err := header.Write([]byte("correct horse battery"), fastKDF(), testMetadata())
	require.NoError(t, err)
	defer written.Keys.Close()

	corrupted := append([]byte(nil), written.Bytes...)
	// A flipped byte would be repaired by Reed-Solomon, so replace the whole
	// magic section, which follows the 20-byte lengths table and the five
	// encoded length prefixes, with a validly encoded section carrying a
	// different magic value.
	codec, err := section.New()
	require.NoError(t, err)
	lpSize, err := codec.EncodedLengthPrefixSize()
	require.NoError(t, err)
	badMagic, _, err := codec.Encode([]byte{0xCA, 0xFE, 0xBA, 0xBE})
	require.NoError(t, err)
	copy(corrupted[20+5*lpSize:], badMagic)

	_, _, err = header.Read(bytes.NewReader(corrupted), []byte("correct horse battery"))
	assert.ErrorIs(t, err, swerr.ErrBadMagicOrVersion)
}

func TestReadToleratesShardCorruptionInASection(t *testing.T) {
	written, err := header.Write([]byte("correct horse battery"), fastKDF(), testMetadata())
	require.NoError(t, err)
	defer written.Keys.Close()

	corrupted := append([]byte(nil), written.Bytes...)
	// Flip one byte inside a shard payload of the last (MAC) section; the
	// shard's CRC no longer matches and Reed-Solomon parity rebuilds it.
	corrupted[len(corrupted)-40] ^= 0x01

	keys, meta, err := header.Read(bytes.NewReader(corrupted), []byte("correct horse battery"))
	require.NoError(t, err)
	defer keys.Close()
	assert.Equal(t, testMetadata(), meta)
}

func TestReadRejectsTruncatedInput(t *testing.T) {
	written, err := header.Write([]byte("correct horse battery"), fastKDF(), testMetadata())
	require.NoError(t, err)
	defer written.Keys.Close()

	truncated := written.Bytes[:len(written.Bytes)/2]
	_, _, err = header.Read(bytes.NewReader(truncated), []byte("correct horse battery"))
	assert.Error(t, err)
}
