package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexadamm/jwtctl/pkg/keys"
	"github.com/alexadamm/jwtctl/pkg/token/algorithms"
)

// Errors returned by Create and Read, matched with errors.Is
var (
	// ErrMalformedToken is returned when the token format is invalid
	// This includes a wrong number of segments, malformed base64, a header
	// that is not a JSON object, an unknown algorithm or an unknown "zip" codec
	ErrMalformedToken = errors.New("malformed token")

	// ErrMissingKeyMaterial is returned when a signed token is read without a key,
	// or a signing option names no secret or key file
	ErrMissingKeyMaterial = errors.New("token is signed but no key was given")

	// ErrSignatureVerification is returned when the signature does not match,
	// or the key given does not belong to the token's algorithm family
	ErrSignatureVerification = errors.New("signature verification failed")

	// ErrTokenExpired is returned when the token's "exp" claim is in the past
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenNotValidYet is returned when the token's "nbf" claim is in the future
	ErrTokenNotValidYet = errors.New("token not valid yet")

	// ErrInvalidClaims is returned when claims or headers are not a JSON object
	// or a registered claim has the wrong type
	ErrInvalidClaims = errors.New("invalid token claims")

	// ErrEmptyPayload is returned when an unsigned token would carry no claims,
	// headers or payload
	ErrEmptyPayload = errors.New("empty token payload")

	// ErrPayloadConflict is returned when an opaque payload is combined with
	// claims or an expiration
	ErrPayloadConflict = errors.New("payload cannot be combined with claims")

	// ErrInvalidKeyMaterial is returned when a signing key cannot be resolved.
	// The resolver's error (ErrInvalidKeyFile, ErrMissingPassword) is wrapped.
	ErrInvalidKeyMaterial = errors.New("invalid key material")

	// ErrAlgorithmMismatch is returned when the signing algorithm does not fit the key
	ErrAlgorithmMismatch = errors.New("algorithm does not match key type")

	// ErrInvalidDuration is returned for a negative token lifetime
	ErrInvalidDuration = errors.New("invalid token duration")

	// ErrUnsupportedAlgorithm is returned when the specified algorithm is not supported
	ErrUnsupportedAlgorithm = algorithms.ErrUnsupportedAlgorithm

	ErrInvalidKeyFile  = keys.ErrInvalidKeyFile
	ErrMissingPassword = keys.ErrMissingPassword
)

// ExpiredError reports an expired token. It matches ErrTokenExpired.
type ExpiredError struct {
	ExpiresAt time.Time
	Now       time.Time
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("JWT expired at %s. Current time: %s, a difference of %d milliseconds.",
		e.ExpiresAt.UTC().Format(time.RFC3339),
		e.Now.UTC().Format(time.RFC3339),
		e.Now.Sub(e.ExpiresAt).Milliseconds())
}

func (e *ExpiredError) Is(target error) bool {
	return target == ErrTokenExpired
}
