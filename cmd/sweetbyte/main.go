package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/hambosto/sweetbyte-rs/cmd/sweetbyte/cmd"
)

var subcommands = map[string]*flag.FlagSet{
	cmd.EncryptCmd.Name(): cmd.EncryptCmd,
	cmd.DecryptCmd.Name(): cmd.DecryptCmd,
}

func run() int {
	subcommandNames := make([]string, 0, len(subcommands))
	for name := range subcommands {
		subcommandNames = append(subcommandNames, name)
	}

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: sweetbyte <%s> [flags]\n", strings.Join(subcommandNames, "|"))
		return 1
	}

	command := subcommands[os.Args[1]]
	if command == nil {
		fmt.Fprintf(os.Stderr, "unknown subcommand %q. Available: %s\n", os.Args[1], strings.Join(subcommandNames, ", "))
		return 1
	}

	if err := command.Parse(os.Args[2:]); err != nil {
		return 1
	}

	switch command.Name() {
	case cmd.EncryptCmd.Name():
		return cmd.RunEncryptCmd()
	case cmd.DecryptCmd.Name():
		return cmd.RunDecryptCmd()
	}
	return 0
}

func main() {
	os.Exit(run())
}
