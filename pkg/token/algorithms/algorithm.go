package algorithms

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"fmt"

	_ "crypto/sha256"
	_ "crypto/sha512"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	ErrInvalidKeyType       = errors.New("invalid key type")
)

// Algorithm defines how a signature algorithm signs and verifies a JWS signing input
type Algorithm interface {
	// Name returns the algorithm name as written in the "alg" header (e.g., "HS512", "RS256")
	Name() string

	// Hash returns the hash function used by the algorithm
	Hash() crypto.Hash

	// KeyType returns the key family the algorithm accepts
	KeyType() KeyType

	// Sign computes the signature of the signing input with the given key.
	// HMAC algorithms take a []byte secret, asymmetric algorithms a private key.
	Sign(signingInput []byte, key interface{}) ([]byte, error)

	// Verify verifies the signature against the signing input
	Verify(signingInput, signature []byte, key interface{}) error

	// KeyCheck validates the key type for verification
	KeyCheck(key interface{}) error
}

// KeyType represents supported key families
type KeyType int

const (
	KeyTypeECDSA KeyType = iota
	KeyTypeRSA
	KeyTypeHMAC
	KeyTypeNone
)

func (k KeyType) String() string {
	switch k {
	case KeyTypeECDSA:
		return "ECDSA"
	case KeyTypeRSA:
		return "RSA"
	case KeyTypeHMAC:
		return "HMAC"
	case KeyTypeNone:
		return "none"
	default:
		return fmt.Sprintf("KeyType(%d)", int(k))
	}
}

// Asymmetric reports whether keys of this family come from a private/public key pair
func (k KeyType) Asymmetric() bool {
	return k == KeyTypeECDSA || k == KeyTypeRSA
}

// BaseAlgorithm provides common functionality for all algorithms
type BaseAlgorithm struct {
	name    string
	hash    crypto.Hash
	keyType KeyType
	keySize int // Size in bytes for signature components
	method  jwt.SigningMethod
}

func (b *BaseAlgorithm) Name() string {
	return b.name
}

func (b *BaseAlgorithm) Hash() crypto.Hash {
	return b.hash
}

func (b *BaseAlgorithm) KeyType() KeyType {
	return b.keyType
}

func (b *BaseAlgorithm) Sign(signingInput []byte, key interface{}) ([]byte, error) {
	if b.method == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, b.name)
	}

	signature, err := b.method.Sign(string(signingInput), key)
	if err != nil {
		if errors.Is(err, jwt.ErrInvalidKeyType) || errors.Is(err, jwt.ErrInvalidKey) {
			return nil, fmt.Errorf("%w: %s cannot sign with %T", ErrInvalidKeyType, b.name, key)
		}
		return nil, fmt.Errorf("failed to sign with %s: %w", b.name, err)
	}

	return signature, nil
}

func (b *BaseAlgorithm) Verify(signingInput, signature []byte, key interface{}) error {
	if err := b.KeyCheck(key); err != nil {
		return err
	}
	if b.method == nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, b.name)
	}

	if err := b.method.Verify(string(signingInput), signature, key); err != nil {
		return ErrInvalidSignature
	}

	return nil
}

func (b *BaseAlgorithm) KeyCheck(key interface{}) error {
	switch b.keyType {
	case KeyTypeECDSA:
		if _, ok := key.(*ecdsa.PublicKey); !ok {
			return ErrInvalidKeyType
		}
	case KeyTypeRSA:
		if _, ok := key.(*rsa.PublicKey); !ok {
			return ErrInvalidKeyType
		}
	case KeyTypeHMAC:
		if secret, ok := key.([]byte); !ok || len(secret) == 0 {
			return ErrInvalidKeyType
		}
	}
	return nil
}
