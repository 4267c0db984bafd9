package keys

import "errors"

var (
	// ErrInvalidKeyFile is returned when a key file cannot be read, decrypted or parsed,
	// or holds a key of the wrong kind (public where private is expected and vice versa)
	ErrInvalidKeyFile = errors.New("invalid key file")

	// ErrMissingPassword is returned when a key is encrypted and no password could be obtained
	ErrMissingPassword = errors.New("missing password for encrypted key")
)
