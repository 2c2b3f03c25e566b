// Package swerr defines the closed set of error kinds that the container
// format and streaming engine can fail with.
package swerr

import "errors"

var (
	// ErrIO wraps a read/write/open failure. Context (phase, path) is added by
	// the caller via fmt.Errorf("...: %w", ErrIO).
	ErrIO = errors.New("io error")

	// ErrBadMagicOrVersion is returned when the recovered header magic or
	// version does not match what this version of the format expects. It is
	// always returned before key derivation runs.
	ErrBadMagicOrVersion = errors.New("bad magic or version")

	// ErrSectionUnrecoverable is returned when a header or chunk section has
	// more than 10 unusable shards and Reed-Solomon reconstruction fails.
	ErrSectionUnrecoverable = errors.New("section unrecoverable")

	// ErrMacMismatch is returned when the header HMAC does not match.
	ErrMacMismatch = errors.New("mac mismatch")

	// ErrAeadAuthFailed is returned when either AEAD layer fails to open.
	ErrAeadAuthFailed = errors.New("aead authentication failed")

	// ErrPaddingInvalid is returned when PKCS#7 unpadding fails validation.
	ErrPaddingInvalid = errors.New("padding invalid")

	// ErrDecompressionInvalid is returned when zstd decompression fails or
	// the decompressed size would exceed the configured cap.
	ErrDecompressionInvalid = errors.New("decompression invalid")

	// ErrContentHashMismatch is returned when the recovered plaintext's BLAKE3
	// does not match the value stored in the header.
	ErrContentHashMismatch = errors.New("content hash mismatch")

	// ErrPasswordTooShort is returned before any work is done if the supplied
	// password is shorter than 8 bytes.
	ErrPasswordTooShort = errors.New("password too short")

	// ErrOutputExists is returned before any work is done if the output path
	// already exists and overwriting was not requested.
	ErrOutputExists = errors.New("output already exists")

	// ErrAuthenticationFailed is the single category surfaced to callers in
	// place of ErrMacMismatch or ErrAeadAuthFailed, so that the two cannot be
	// told apart from the outside.
	ErrAuthenticationFailed = errors.New("authentication failed")
)
