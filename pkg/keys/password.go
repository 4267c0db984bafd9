package keys

import (
	"fmt"
	"sync"
)

// PasswordFunc supplies the password of an encrypted private key.
// It is only called when the key actually is encrypted. An error or an
// empty password counts as no password (ErrMissingPassword); a non-empty
// password that fails to decrypt the key is ErrInvalidKeyFile.
type PasswordFunc func() ([]byte, error)

// Once wraps fn so that it is invoked at most once; later calls
// return the first result. The returned bytes are wiped by the
// resolution that consumes them, so a wrapped supplier serves a
// single resolution.
func Once(fn PasswordFunc) PasswordFunc {
	if fn == nil {
		return nil
	}

	var (
		once     sync.Once
		password []byte
		err      error
	)
	return func() ([]byte, error) {
		once.Do(func() {
			password, err = fn()
		})
		return password, err
	}
}

// String returns a supplier for a fixed password
func String(password string) PasswordFunc {
	return func() ([]byte, error) {
		return []byte(password), nil
	}
}

// passwordSource fetches the password lazily and remembers it
// so that it can be wiped after decryption.
type passwordSource struct {
	fn       PasswordFunc
	password []byte
}

func (p *passwordSource) get() ([]byte, error) {
	if p.password != nil {
		return p.password, nil
	}
	if p.fn == nil {
		return nil, ErrMissingPassword
	}

	password, err := p.fn()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingPassword, err)
	}
	if len(password) == 0 {
		return nil, ErrMissingPassword
	}

	p.password = password
	return password, nil
}

func (p *passwordSource) wipe() {
	Wipe(p.password)
	p.password = nil
}

// Wipe overwrites b with zeros
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
