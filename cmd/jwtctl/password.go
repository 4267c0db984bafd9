package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/alexadamm/jwtctl/pkg/keys"
)

var errNoTerminal = errors.New("no password given and stdin is not a terminal")

// terminalPassword reads a password from the terminal without echo
func terminalPassword(prompt io.Writer) func(string) ([]byte, error) {
	return func(message string) ([]byte, error) {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return nil, errNoTerminal
		}

		fmt.Fprint(prompt, message)
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(prompt)
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
		return password, nil
	}
}

// passwordSupplier resolves the PEM password from --password, then
// JWTCTL_PEM_PASSWORD, then an interactive prompt. Nothing is asked
// unless the key turns out to be encrypted.
func (j *jwtctl) passwordSupplier(flagValue, keyFile string) keys.PasswordFunc {
	return keys.Once(func() ([]byte, error) {
		switch {
		case flagValue != "":
			j.log.Debug("Using PEM password from --password")
			return []byte(flagValue), nil
		case j.cfg.PEMPassword != "":
			j.log.Debug("Using PEM password from JWTCTL_PEM_PASSWORD")
			return []byte(j.cfg.PEMPassword), nil
		default:
			return j.readPassword(fmt.Sprintf("Enter password (%s): ", keyFile))
		}
	})
}
