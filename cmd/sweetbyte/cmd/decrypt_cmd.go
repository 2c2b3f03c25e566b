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
	DecryptCmd    = flag.NewFlagSet("decrypt", flag.ExitOnError)
	decInputFile  = DecryptCmd.String("input", "", "path to the .swx container to decrypt")
	decOutputFile = DecryptCmd.String("output", "", "path to the restored output (default: strip .swx suffix)")
	decWorkers    = DecryptCmd.Int("workers", 0, "number of chunk worker goroutines (default: number of CPUs)")
	decForce      = DecryptCmd.Bool("force", false, "overwrite the output file if it already exists")
	decDebug      = DecryptCmd.Bool("debug", false, "enable debug logging")
)

func RunDecryptCmd() int {
	if *decInputFile == "" {
		fmt.Fprintln(os.Stderr, "decrypt: -input is required")
		return 1
	}
	if *decDebug {
		logging.SetDebug()
	}

	outputFile := *decOutputFile
	if outputFile == "" {
		outputFile = pathutil.DefaultDecryptedPath(*decInputFile)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "decrypt:", err)
		return 1
	}
	pw := secret.New(password)
	defer pw.Close()

	logging.Logger.Info("decrypting", "input", *decInputFile, "output", outputFile)

	meta, err := sweetbyte.DecryptFile(context.Background(), *decInputFile, outputFile, sweetbyte.Options{
		Password:  pw.Bytes(),
		Params:    params.Default(),
		Workers:   *decWorkers,
		Overwrite: *decForce,
	})
	if err != nil {
		logging.Logger.Error("decryption failed", "error", err)
		return 1
	}

	logging.Logger.Info("decryption complete", "filename", meta.Filename, "size", meta.Size)
	return 0
}
