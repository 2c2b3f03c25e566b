// Package sweetbyte is the orchestrator that wires key derivation, header
// serialization, the chunk pipeline, and the streaming engine into the two
// user-facing operations: EncryptFile and DecryptFile. It owns the
// error-taxonomy collapsing (a wrong password and a tampered ciphertext
// must look identical to the caller) and partial-output cleanup on failure.
//
// Grounded on original_source's processor.rs Processor::encrypt/decrypt,
// translated from its two-pass-over-the-file design (hash, then stream) to
// the same two passes done with os.File.Seek instead of re-opening a Rust
// File handle.
package sweetbyte

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/zeebo/blake3"

	"github.com/hambosto/sweetbyte-rs/internal/engine"
	"github.com/hambosto/sweetbyte-rs/internal/header"
	"github.com/hambosto/sweetbyte-rs/internal/params"
	"github.com/hambosto/sweetbyte-rs/internal/pipeline"
	"github.com/hambosto/sweetbyte-rs/internal/swerr"
)

// Options configures one EncryptFile or DecryptFile call.
type Options struct {
	// Password is the user-supplied passphrase. The caller retains
	// ownership; sweetbyte never zeroes it.
	Password []byte
	// KDF is the Argon2id cost used for a new header (EncryptFile only;
	// DecryptFile always uses the cost recorded in the container).
	KDF params.KDF
	// Params bundles the rest of the tunables (chunk size, padding block
	// size, decompression cap). Leave zero-valued to use params.Default().
	Params params.Params
	// Workers bounds the chunk worker pool. Zero means runtime.NumCPU().
	Workers int
	// Overwrite allows EncryptFile or DecryptFile to replace an existing
	// output file.
	Overwrite bool
}

func (o Options) resolve() Options {
	if o.Params.ChunkSize == 0 {
		o.Params = params.Default()
	}
	if o.KDF == (params.KDF{}) {
		o.KDF = o.Params.KDF
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

// EncryptFile encrypts inputPath into outputPath and returns the metadata
// recorded in the container header.
func EncryptFile(ctx context.Context, inputPath, outputPath string, opts Options) (header.Metadata, error) {
	opts = opts.resolve()

	if len(opts.Password) < params.MinPasswordLen {
		return header.Metadata{}, fmt.Errorf("sweetbyte: %w", swerr.ErrPasswordTooShort)
	}

	if !opts.Overwrite {
		if _, err := os.Stat(outputPath); err == nil {
			return header.Metadata{}, fmt.Errorf("sweetbyte: %w", swerr.ErrOutputExists)
		} else if !errors.Is(err, os.ErrNotExist) {
			return header.Metadata{}, fmt.Errorf("sweetbyte: %w: %v", swerr.ErrIO, err)
		}
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return header.Metadata{}, fmt.Errorf("sweetbyte: %w: %v", swerr.ErrIO, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return header.Metadata{}, fmt.Errorf("sweetbyte: %w: %v", swerr.ErrIO, err)
	}

	hasher := blake3.New()
	if _, err := io.Copy(hasher, in); err != nil {
		return header.Metadata{}, fmt.Errorf("sweetbyte: %w: %v", swerr.ErrIO, err)
	}
	var contentHash [header.HashSize]byte
	copy(contentHash[:], hasher.Sum(nil))

	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return header.Metadata{}, fmt.Errorf("sweetbyte: %w: %v", swerr.ErrIO, err)
	}

	meta := header.Metadata{
		Filename:    filepath.Base(inputPath),
		Size:        uint64(info.Size()),
		ContentHash: contentHash,
	}

	written, err := header.Write(opts.Password, opts.KDF, meta)
	if err != nil {
		return header.Metadata{}, err
	}

	out, err := openOutput(outputPath, opts.Overwrite)
	if err != nil {
		written.Keys.Close()
		return header.Metadata{}, err
	}

	succeeded := false
	defer func() {
		out.Close()
		if !succeeded {
			os.Remove(outputPath)
		}
	}()

	if _, err := out.Write(written.Bytes); err != nil {
		written.Keys.Close()
		return header.Metadata{}, fmt.Errorf("sweetbyte: %w: %v", swerr.ErrIO, err)
	}

	pl, err := pipeline.New(written.Keys, opts.Params)
	written.Keys.Close()
	if err != nil {
		return header.Metadata{}, err
	}

	if err := engine.Run(ctx, engine.Encrypt, pl, in, out, opts.Params.ChunkSize, opts.Workers); err != nil {
		return header.Metadata{}, classifyEngineErr(err)
	}

	succeeded = true
	return meta, nil
}

// DecryptFile decrypts inputPath into outputPath and returns the metadata
// recovered from the container header. A wrong password and a tampered
// ciphertext are indistinguishable to the caller: both surface as
// swerr.ErrAuthenticationFailed.
func DecryptFile(ctx context.Context, inputPath, outputPath string, opts Options) (header.Metadata, error) {
	opts = opts.resolve()

	if len(opts.Password) < params.MinPasswordLen {
		return header.Metadata{}, fmt.Errorf("sweetbyte: %w", swerr.ErrPasswordTooShort)
	}

	if !opts.Overwrite {
		if _, err := os.Stat(outputPath); err == nil {
			return header.Metadata{}, fmt.Errorf("sweetbyte: %w", swerr.ErrOutputExists)
		} else if !errors.Is(err, os.ErrNotExist) {
			return header.Metadata{}, fmt.Errorf("sweetbyte: %w: %v", swerr.ErrIO, err)
		}
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return header.Metadata{}, fmt.Errorf("sweetbyte: %w: %v", swerr.ErrIO, err)
	}
	defer in.Close()

	keys, meta, err := header.Read(in, opts.Password)
	if err != nil {
		return header.Metadata{}, classifyEngineErr(err)
	}

	out, err := openOutput(outputPath, opts.Overwrite)
	if err != nil {
		keys.Close()
		return header.Metadata{}, err
	}

	succeeded := false
	defer func() {
		out.Close()
		if !succeeded {
			os.Remove(outputPath)
		}
	}()

	pl, err := pipeline.New(keys, opts.Params)
	keys.Close()
	if err != nil {
		return header.Metadata{}, err
	}

	if err := engine.Run(ctx, engine.Decrypt, pl, in, out, opts.Params.ChunkSize, opts.Workers); err != nil {
		return header.Metadata{}, classifyEngineErr(err)
	}

	if err := verifyContentHash(outputPath, meta.ContentHash); err != nil {
		return header.Metadata{}, err
	}

	succeeded = true
	return meta, nil
}

func verifyContentHash(path string, want [header.HashSize]byte) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("sweetbyte: %w: %v", swerr.ErrIO, err)
	}
	defer f.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return fmt.Errorf("sweetbyte: %w: %v", swerr.ErrIO, err)
	}
	var got [header.HashSize]byte
	copy(got[:], hasher.Sum(nil))
	if got != want {
		return fmt.Errorf("sweetbyte: %w", swerr.ErrContentHashMismatch)
	}
	return nil
}

func openOutput(path string, overwrite bool) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("sweetbyte: %w", swerr.ErrOutputExists)
		}
		return nil, fmt.Errorf("sweetbyte: %w: %v", swerr.ErrIO, err)
	}
	return f, nil
}

// classifyEngineErr collapses swerr.ErrMacMismatch and swerr.ErrAeadAuthFailed
// into the single swerr.ErrAuthenticationFailed category callers are meant
// to branch on; every other error passes through unchanged.
func classifyEngineErr(err error) error {
	if errors.Is(err, swerr.ErrMacMismatch) || errors.Is(err, swerr.ErrAeadAuthFailed) {
		return fmt.Errorf("sweetbyte: %w", swerr.ErrAuthenticationFailed)
	}
	return err
}
