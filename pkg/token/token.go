package token

import (
	"fmt"
	"time"

	"github.com/alexadamm/jwtctl/pkg/keys"
	"github.com/alexadamm/jwtctl/pkg/token/algorithms"
	"github.com/alexadamm/jwtctl/pkg/token/compression"
)

// Signing selects how Create signs a token: Unsigned, HMAC or Asymmetric.
// A nil Signing means Unsigned.
type Signing interface {
	algorithm() string
}

// Unsigned produces a token with "alg":"none" and an empty signature segment
type Unsigned struct{}

// HMAC signs with a shared secret
type HMAC struct {
	// Algorithm is one of HS256, HS384, HS512
	Algorithm string

	// Secret is the base64 encoded shared secret
	Secret string
}

// Asymmetric signs with a private key read from a PEM file
type Asymmetric struct {
	// Algorithm is one of RS*, PS* or ES*
	Algorithm string

	// KeyFile is the path of the PEM private key
	KeyFile string
}

func (Unsigned) algorithm() string     { return algorithms.None }
func (s HMAC) algorithm() string       { return s.Algorithm }
func (s Asymmetric) algorithm() string { return s.Algorithm }

// TokenParams describes the token Create builds
type TokenParams struct {
	// Claims are written in insertion order. "iat" is always set by Create
	// and "exp" when Duration is positive.
	Claims *Map

	// Headers are written before "alg" and "zip"
	Headers *Map

	Signing Signing

	// Compression is "" for none, or deflate/DEF, gzip/GZIP
	Compression string

	// Duration is the token lifetime; 0 means the token never expires
	Duration time.Duration

	// Password supplies the password of an encrypted private key.
	// It is only called when the key file is encrypted.
	Password keys.PasswordFunc

	// Payload is an opaque body used instead of claims
	Payload []byte

	// Now returns the issue time. Defaults to time.Now.
	Now func() time.Time
}

// Validate checks the parameters before any token work is done
func (p *TokenParams) Validate() error {
	if p.Duration < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidDuration, p.Duration)
	}

	if len(p.Payload) > 0 && (p.Claims.Len() > 0 || p.Duration > 0) {
		return ErrPayloadConflict
	}

	if p.Compression != "" {
		if _, err := compression.Lookup(p.Compression); err != nil {
			return err
		}
	}

	switch s := p.signing().(type) {
	case Unsigned:
		return nil
	case HMAC:
		return validateSigning(s.Algorithm, s.Secret, algorithms.IsHMAC)
	case Asymmetric:
		return validateSigning(s.Algorithm, s.KeyFile, algorithms.IsAsymmetric)
	default:
		return fmt.Errorf("%w: unknown signing option %T", ErrUnsupportedAlgorithm, s)
	}
}

func validateSigning(alg, key string, family func(string) bool) error {
	if _, err := algorithms.Get(alg); err != nil {
		return err
	}
	if !family(alg) {
		return fmt.Errorf("%w: %s", ErrAlgorithmMismatch, alg)
	}
	if key == "" {
		return ErrMissingKeyMaterial
	}
	return nil
}

func (p *TokenParams) signing() Signing {
	if p.Signing == nil {
		return Unsigned{}
	}
	return p.Signing
}

func (p *TokenParams) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// VerificationKey is the key Read checks signatures with: Secret or PublicKeyFile
type VerificationKey interface {
	empty() bool
}

// Secret is a base64 encoded HMAC secret
type Secret string

// PublicKeyFile is the path of a PEM public key
type PublicKeyFile string

func (s Secret) empty() bool        { return s == "" }
func (f PublicKeyFile) empty() bool { return f == "" }

// ReadOptions control how Read verifies a token
type ReadOptions struct {
	Key VerificationKey

	// IgnoreExpiration returns expired tokens with Expired set instead of failing
	IgnoreExpiration bool

	// IgnoreSignature skips signature verification. The returned data cannot be trusted.
	IgnoreSignature bool

	// Now returns the time expiration is checked against. Defaults to time.Now.
	Now func() time.Time
}

func (o *ReadOptions) hasKey() bool {
	return o.Key != nil && !o.Key.empty()
}

func (o *ReadOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// ParsedToken represents a decoded token
type ParsedToken struct {
	Header *Map

	// Body is a *Map for JSON claims and a string for any other payload
	Body interface{}

	// Expired is only ever set when expiration was ignored
	Expired bool

	SignatureIgnored bool
}

// Claims returns the body as claims when it is a JSON object
func (t *ParsedToken) Claims() (*Map, bool) {
	claims, ok := t.Body.(*Map)
	return claims, ok
}
