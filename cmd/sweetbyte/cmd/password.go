package cmd

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/term"
)

// readPassword prints prompt to stderr and reads one line from the
// terminal with input echo disabled.
func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// readPasswordWithConfirmation prompts twice and requires both entries to
// match, for use on the encryption path where a typo would lock the user
// out of their own data.
func readPasswordWithConfirmation() ([]byte, error) {
	password, err := readPassword("Password: ")
	if err != nil {
		return nil, err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(password, confirm) {
		return nil, fmt.Errorf("passwords do not match")
	}
	return password, nil
}
