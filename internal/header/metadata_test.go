package header_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hambosto/sweetbyte-rs/internal/header"
)

func TestMetadataMarshalRoundTrip(t *testing.T) {
	m := header.Metadata{Filename: "notes.txt", Size: 1234}
	for i := range m.ContentHash {
		m.ContentHash[i] = byte(i)
	}

	buf, err := m.Marshal()
	require.NoError(t, err)

	got, err := header.UnmarshalMetadata(buf)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestMetadataMarshalEmptyFilename(t *testing.T) {
	m := header.Metadata{}
	buf, err := m.Marshal()
	require.NoError(t, err)

	got, err := header.UnmarshalMetadata(buf)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestMetadataMarshalRejectsOversizedFilename(t *testing.T) {
	m := header.Metadata{Filename: strings.Repeat("a", 1<<16)}
	_, err := m.Marshal()
	assert.Error(t, err)
}

func TestUnmarshalMetadataRejectsTruncatedBuffer(t *testing.T) {
	_, err := header.UnmarshalMetadata(make([]byte, 4))
	assert.Error(t, err)
}

func TestUnmarshalMetadataRejectsLengthMismatch(t *testing.T) {
	m := header.Metadata{Filename: "x.txt"}
	buf, err := m.Marshal()
	require.NoError(t, err)

	_, err = header.UnmarshalMetadata(buf[:len(buf)-1])
	assert.Error(t, err)
}
