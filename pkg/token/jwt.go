package token

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexadamm/jwtctl/pkg/keys"
	"github.com/alexadamm/jwtctl/pkg/token/algorithms"
	"github.com/alexadamm/jwtctl/pkg/token/compression"
)

// Create builds a compact token from params: header, claims (or opaque payload)
// and signature, each base64url encoded without padding. Unsigned tokens end
// with an empty signature segment.
func Create(params TokenParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	signing := params.signing()
	if _, unsigned := signing.(Unsigned); unsigned &&
		params.Claims.Len() == 0 && params.Headers.Len() == 0 && len(params.Payload) == 0 {
		return "", ErrEmptyPayload
	}

	var codec compression.Codec
	if params.Compression != "" {
		codec, _ = compression.Lookup(params.Compression)
	}

	header := params.Headers.Clone()
	header.Set("alg", signing.algorithm())
	if codec != nil {
		header.Set("zip", codec.Name())
	}

	payload := params.Payload
	if len(payload) == 0 {
		claims := params.Claims.Clone()
		issuedAt := params.now()
		claims.Set(ClaimIssuedAt, issuedAt.Unix())
		if params.Duration > 0 {
			claims.Set(ClaimExpiresAt, issuedAt.Add(params.Duration).Unix())
		}

		var err error
		payload, err = claims.MarshalJSON()
		if err != nil {
			return "", fmt.Errorf("failed to marshal claims: %w", err)
		}
	}

	if codec != nil {
		var err error
		payload, err = codec.Compress(payload)
		if err != nil {
			return "", err
		}
	}

	headerJSON, err := header.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to marshal header: %w", err)
	}

	// Create signing input
	signingInput := encodeSegment(headerJSON) + "." + encodeSegment(payload)

	signature, err := sign(signing, []byte(signingInput), params.Password)
	if err != nil {
		return "", err
	}

	return signingInput + "." + encodeSegment(signature), nil
}

func sign(signing Signing, signingInput []byte, password keys.PasswordFunc) ([]byte, error) {
	alg, err := algorithms.Get(signing.algorithm())
	if err != nil {
		return nil, err
	}

	switch s := signing.(type) {
	case HMAC:
		secret := decodeSecret(s.Secret)
		defer keys.Wipe(secret)
		if len(secret) == 0 {
			return nil, fmt.Errorf("%w: secret decodes to an empty key", ErrInvalidKeyMaterial)
		}

		signature, err := alg.Sign(signingInput, secret)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidKeyMaterial, err)
		}
		return signature, nil

	case Asymmetric:
		key, err := keys.ResolvePrivateKey(s.KeyFile, password)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidKeyMaterial, err)
		}
		if !keyFitsAlgorithm(key, alg.KeyType()) {
			return nil, fmt.Errorf("%w: %s cannot sign with a %T", ErrAlgorithmMismatch, alg.Name(), key)
		}

		signature, err := alg.Sign(signingInput, key)
		if err != nil {
			if errors.Is(err, algorithms.ErrInvalidKeyType) {
				return nil, fmt.Errorf("%w: %w", ErrAlgorithmMismatch, err)
			}
			return nil, err
		}
		return signature, nil

	default:
		return alg.Sign(signingInput, nil)
	}
}

func keyFitsAlgorithm(key interface{}, keyType algorithms.KeyType) bool {
	switch key.(type) {
	case *rsa.PrivateKey:
		return keyType == algorithms.KeyTypeRSA
	case *ecdsa.PrivateKey:
		return keyType == algorithms.KeyTypeECDSA
	default:
		return false
	}
}

// Read decodes a compact token, verifies its signature with opts.Key and
// checks its expiration. Signed tokens need a key unless opts.IgnoreSignature
// is set. Expired tokens fail with an *ExpiredError unless opts.IgnoreExpiration
// is set, in which case they are returned with Expired set.
func Read(tokenString string, opts ReadOptions) (*ParsedToken, error) {
	// Split token
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, found %d", ErrMalformedToken, len(parts))
	}

	// Decode and parse header
	headerJSON, err := decodeSegment(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedToken, err)
	}
	header, err := ParseMap(headerJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedToken, err)
	}

	algName := algorithms.None
	if value, ok := header.Get("alg"); ok {
		if algName, ok = value.(string); !ok {
			return nil, fmt.Errorf("%w: \"alg\" is not a string", ErrMalformedToken)
		}
	}

	parsed := &ParsedToken{Header: header}

	signed := parts[2] != "" || algName != algorithms.None
	switch {
	case opts.IgnoreSignature:
		parsed.SignatureIgnored = signed
	case signed:
		if err := verify(algName, parts, opts.Key, opts.hasKey()); err != nil {
			return nil, err
		}
	case opts.hasKey():
		return nil, fmt.Errorf("%w: token is not signed", ErrSignatureVerification)
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformedToken, err)
	}
	if zip, ok := header.Get("zip"); ok {
		payload, err = decompress(zip, payload)
		if err != nil {
			return nil, err
		}
	}

	claims, err := ParseMap(payload)
	if err != nil {
		parsed.Body = string(payload)
		return parsed, nil
	}
	parsed.Body = claims

	if err := checkTimes(claims, parsed, opts); err != nil {
		return nil, err
	}

	return parsed, nil
}

func verify(algName string, parts []string, key VerificationKey, hasKey bool) error {
	alg, err := algorithms.Get(algName)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if alg.KeyType() == algorithms.KeyTypeNone {
		return fmt.Errorf("%w: unsigned token carries a signature", ErrMalformedToken)
	}

	signature, err := decodeSegment(parts[2])
	if err != nil {
		return fmt.Errorf("%w: signature: %v", ErrMalformedToken, err)
	}

	if !hasKey {
		return ErrMissingKeyMaterial
	}

	var verificationKey interface{}
	switch k := key.(type) {
	case Secret:
		if alg.KeyType() != algorithms.KeyTypeHMAC {
			return fmt.Errorf("%w: %s token cannot be verified with a secret", ErrSignatureVerification, algName)
		}
		secret := decodeSecret(string(k))
		defer keys.Wipe(secret)
		if len(secret) == 0 {
			return fmt.Errorf("%w: secret decodes to an empty key", ErrInvalidKeyMaterial)
		}
		verificationKey = secret

	case PublicKeyFile:
		if !alg.KeyType().Asymmetric() {
			return fmt.Errorf("%w: %s token cannot be verified with a public key", ErrSignatureVerification, algName)
		}
		publicKey, err := keys.ResolvePublicKey(string(k))
		if err != nil {
			return err
		}
		verificationKey = publicKey

	default:
		return fmt.Errorf("%w: unsupported key %T", ErrMissingKeyMaterial, key)
	}

	signingInput := parts[0] + "." + parts[1]
	if err := alg.Verify([]byte(signingInput), signature, verificationKey); err != nil {
		return fmt.Errorf("%w: %w", ErrSignatureVerification, err)
	}

	return nil
}

func decompress(zip interface{}, payload []byte) ([]byte, error) {
	name, ok := zip.(string)
	if !ok {
		return nil, fmt.Errorf("%w: \"zip\" is not a string", ErrMalformedToken)
	}
	codec, err := compression.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	out, err := codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	return out, nil
}

// checkTimes applies the expiration gate, then the not-before check
func checkTimes(claims *Map, parsed *ParsedToken, opts ReadOptions) error {
	now := opts.now()

	expiresAt, ok, err := numericDate(claims, ClaimExpiresAt)
	if err != nil {
		return err
	}
	if ok && now.After(expiresAt) {
		if !opts.IgnoreExpiration {
			return &ExpiredError{ExpiresAt: expiresAt, Now: now}
		}
		parsed.Expired = true
	}

	notBefore, ok, err := numericDate(claims, ClaimNotBefore)
	if err != nil {
		return err
	}
	if ok && notBefore.After(now) {
		return fmt.Errorf("%w: not before %s", ErrTokenNotValidYet, notBefore.UTC().Format(time.RFC3339))
	}

	return nil
}

// maxNumericDate bounds claim times so that durations between them and now fit a time.Duration
const maxNumericDate = math.MaxInt64 / 1e9

// numericDate reads a claim holding seconds since the epoch
func numericDate(claims *Map, name string) (time.Time, bool, error) {
	value, ok := claims.Get(name)
	if !ok || value == nil {
		return time.Time{}, false, nil
	}

	var seconds float64
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false, fmt.Errorf("%w: %q is not a number", ErrInvalidClaims, name)
		}
		seconds = f
	case int64:
		seconds = float64(v)
	default:
		return time.Time{}, false, fmt.Errorf("%w: %q is not a number", ErrInvalidClaims, name)
	}

	if math.IsNaN(seconds) || seconds > maxNumericDate || seconds < -maxNumericDate {
		return time.Time{}, false, fmt.Errorf("%w: %q is out of range", ErrInvalidClaims, name)
	}

	whole, frac := math.Modf(seconds)
	return time.Unix(int64(whole), int64(frac*1e9)), true, nil
}

func encodeSegment(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// decodeSegment rejects padding and non-zero trailing bits, so each
// segment has exactly one accepted encoding
func decodeSegment(segment string) ([]byte, error) {
	return base64.RawURLEncoding.Strict().DecodeString(segment)
}
