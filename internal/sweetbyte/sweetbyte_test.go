package sweetbyte_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hambosto/sweetbyte-rs/internal/header"
	"github.com/hambosto/sweetbyte-rs/internal/params"
	"github.com/hambosto/sweetbyte-rs/internal/sweetbyte"
	"github.com/hambosto/sweetbyte-rs/internal/swerr"
)

func fastOptions(password string) sweetbyte.Options {
	return sweetbyte.Options{
		Password: []byte(password),
		Params:   params.Default().WithFastKDF(),
		Workers:  2,
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "plan.txt")
	content := []byte("the quarterly plan is still in draft form")
	require.NoError(t, os.WriteFile(src, content, 0o600))

	enc := filepath.Join(dir, "plan.txt.swx")
	meta, err := sweetbyte.EncryptFile(context.Background(), src, enc, fastOptions("correct horse battery"))
	require.NoError(t, err)
	assert.Equal(t, "plan.txt", meta.Filename)
	assert.EqualValues(t, len(content), meta.Size)

	dec := filepath.Join(dir, "plan.decrypted.txt")
	gotMeta, err := sweetbyte.DecryptFile(context.Background(), enc, dec, fastOptions("correct horse battery"))
	require.NoError(t, err)
	assert.Equal(t, meta, gotMeta)

	gotContent, err := os.ReadFile(dec)
	require.NoError(t, err)
	assert.Equal(t, content, gotContent)
}

func TestEncryptDecryptEmptyFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "empty.bin")
	require.NoError(t, os.WriteFile(src, nil, 0o600))

	enc := filepath.Join(dir, "empty.bin.swx")
	_, err := sweetbyte.EncryptFile(context.Background(), src, enc, fastOptions("correct horse battery"))
	require.NoError(t, err)

	dec := filepath.Join(dir, "empty.decrypted.bin")
	_, err = sweetbyte.DecryptFile(context.Background(), enc, dec, fastOptions("correct horse battery"))
	require.NoError(t, err)

	gotContent, err := os.ReadFile(dec)
	require.NoError(t, err)
	assert.Empty(t, gotContent)
}

func TestDecryptWithWrongPasswordFailsAsAuthenticationError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(src, []byte("sensitive payload"), 0o600))

	enc := filepath.Join(dir, "data.bin.swx")
	_, err := sweetbyte.EncryptFile(context.Background(), src, enc, fastOptions("correct horse battery"))
	require.NoError(t, err)

	dec := filepath.Join(dir, "data.decrypted.bin")
	_, err = sweetbyte.DecryptFile(context.Background(), enc, dec, fastOptions("wrong password"))
	assert.ErrorIs(t, err, swerr.ErrAuthenticationFailed)

	_, statErr := os.Stat(dec)
	assert.True(t, os.IsNotExist(statErr), "partial output must be cleaned up on failure")
}

func TestDecryptWithTamperedCiphertextFails(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(src, []byte("sensitive payload that fits in a single chunk"), 0o600))

	enc := filepath.Join(dir, "data.bin.swx")
	_, err := sweetbyte.EncryptFile(context.Background(), src, enc, fastOptions("correct horse battery"))
	require.NoError(t, err)

	raw, err := os.ReadFile(enc)
	require.NoError(t, err)
	// A single flipped byte would be repaired by the chunk's Reed-Solomon
	// parity, so flip every byte of the only encoded chunk after its 4-byte
	// length frame. The chunk starts where the header ends.
	rest := bytes.NewReader(raw)
	keys, _, err := header.Read(rest, []byte("correct horse battery"))
	require.NoError(t, err)
	keys.Close()
	for i := len(raw) - rest.Len() + 4; i < len(raw); i++ {
		raw[i] ^= 0xFF
	}
	require.NoError(t, os.WriteFile(enc, raw, 0o600))

	dec := filepath.Join(dir, "data.decrypted.bin")
	_, err = sweetbyte.DecryptFile(context.Background(), enc, dec, fastOptions("correct horse battery"))
	assert.Error(t, err)

	_, statErr := os.Stat(dec)
	assert.True(t, os.IsNotExist(statErr), "partial output must be cleaned up on failure")
}

func TestEncryptRejectsShortPassword(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o600))

	enc := filepath.Join(dir, "data.bin.swx")
	_, err := sweetbyte.EncryptFile(context.Background(), src, enc, fastOptions("short"))
	assert.ErrorIs(t, err, swerr.ErrPasswordTooShort)

	_, statErr := os.Stat(enc)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEncryptRefusesToOverwriteWithoutFlag(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o600))

	enc := filepath.Join(dir, "data.bin.swx")
	_, err := sweetbyte.EncryptFile(context.Background(), src, enc, fastOptions("correct horse battery"))
	require.NoError(t, err)

	_, err = sweetbyte.EncryptFile(context.Background(), src, enc, fastOptions("correct horse battery"))
	assert.ErrorIs(t, err, swerr.ErrOutputExists)

	opts := fastOptions("correct horse battery")
	opts.Overwrite = true
	_, err = sweetbyte.EncryptFile(context.Background(), src, enc, opts)
	assert.NoError(t, err)
}
