package algorithms

import (
	"crypto"

	"github.com/golang-jwt/jwt/v5"
)

// ECDSAAlgorithm implements the Algorithm interface for ECDSA signatures.
// Signatures are the raw R||S concatenation mandated by RFC 7518.
type ECDSAAlgorithm struct {
	BaseAlgorithm
	curve ellipticCurve
}

type ellipticCurve struct {
	name    string // P-256, P-384, P-521
	bitSize int
	keySize int // Size in bytes for R and S components
}

var (
	// Predefined curves
	p256 = ellipticCurve{name: "P-256", bitSize: 256, keySize: 32}
	p384 = ellipticCurve{name: "P-384", bitSize: 384, keySize: 48}
	p521 = ellipticCurve{name: "P-521", bitSize: 521, keySize: 66}
)

// NewECDSAAlgorithm creates a new ECDSA algorithm instance
func NewECDSAAlgorithm(name string, hash crypto.Hash, curve ellipticCurve) Algorithm {
	return &ECDSAAlgorithm{
		BaseAlgorithm: BaseAlgorithm{
			name:    name,
			hash:    hash,
			keyType: KeyTypeECDSA,
			keySize: curve.keySize,
			method: &jwt.SigningMethodECDSA{
				Name:      name,
				Hash:      hash,
				KeySize:   curve.keySize,
				CurveBits: curve.bitSize,
			},
		},
		curve: curve,
	}
}

// Curve returns the name of the curve the algorithm signs with
func (e *ECDSAAlgorithm) Curve() string {
	return e.curve.name
}

// SignatureSize returns the length in bytes of an R||S signature
func (e *ECDSAAlgorithm) SignatureSize() int {
	return e.keySize * 2
}

// Verify verifies an ECDSA signature in raw R||S format
func (e *ECDSAAlgorithm) Verify(signingInput, signature []byte, key interface{}) error {
	if len(signature) != e.SignatureSize() {
		return ErrInvalidSignature
	}
	return e.BaseAlgorithm.Verify(signingInput, signature, key)
}

// Register predefined ECDSA algorithms
func init() {
	register(NewECDSAAlgorithm("ES256", crypto.SHA256, p256))
	register(NewECDSAAlgorithm("ES384", crypto.SHA384, p384))
	register(NewECDSAAlgorithm("ES512", crypto.SHA512, p521))
}
