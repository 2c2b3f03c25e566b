package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hambosto/sweetbyte-rs/internal/logging"
	"github.com/hambosto/sweetbyte-rs/internal/params"
	"github.com/hambosto/sweetbyte-rs/internal/pathutil"
	"github.com/hambosto/sweetbyte-rs/internal/secret"
	"github.com/hambosto/sweetbyte-rs/internal/sweetbyte"
)

var (
	EncryptCmd    = flag.NewFlagSet("encrypt", flag.ExitOnError)
	encInputFile  = EncryptCmd.String("input", "", "path to the file to encrypt")
	encOutputFile = EncryptCmd.String("output", "", "path to the encrypted output (default: <input>.swx)")
	encWorkers    = EncryptCmd.Int("workers", 0, "number of chunk worker goroutines (default: number of CPUs)")
	encForce      = EncryptCmd.Bool("force", false, "overwrite the output file if it already exists")
	encDebug      = EncryptCmd.Bool("debug", false, "enable debug logging")
)

func RunEncryptCmd() int {
	if *encInputFile == "" {
		fmt.Fprintln(os.Stderr, "encrypt: -input is required")
		return 1
	}
	if *encDebug {
		logging.SetDebug()
	}

	outputFile := *encOutputFile
	if outputFile == "" {
		outputFile = pathutil.DefaultEncryptedPath(*encInputFile)
	}

	password, err := readPasswordWithConfirmation()
	if err != nil {
		fmt.Fprintln(os.Stderr, "encrypt:", err)
		return 1
	}
	pw := secret.New(password)
	defer pw.Close()

	logging.Logger.Info("encrypting", "input", *encInputFile, "output", outputFile)

	meta, err := sweetbyte.EncryptFile(context.Background(), *encInputFile, outputFile, sweetbyte.Options{
		Password:  pw.Bytes(),
		KDF:       params.DefaultKDF(),
		Params:    params.Default(),
		Workers:   *encWorkers,
		Overwrite: *encForce,
	})
	if err != nil {
		logging.Logger.Error("encryption failed", "error", err)
		return 1
	}

	logging.Logger.Info("encryption complete", "filename", meta.Filename, "size", meta.Size)
	return 0
}
