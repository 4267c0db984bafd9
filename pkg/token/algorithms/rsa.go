package algorithms

import (
	"crypto"
	"crypto/rsa"

	"github.com/golang-jwt/jwt/v5"
)

// RSAAlgorithm implements the Algorithm interface for RSA signatures
type RSAAlgorithm struct {
	BaseAlgorithm
	padding padding
}

type padding int

const (
	paddingPKCS1v15 padding = iota
	paddingPSS
)

// NewRSAAlgorithm creates a new RSA algorithm instance
// Supports both PKCS1v15 (RS*) and PSS (PS*) padding.
// PSS signatures use a salt as long as the digest and verification
// accepts any salt length.
func NewRSAAlgorithm(name string, hash crypto.Hash, pad padding) Algorithm {
	rsaMethod := &jwt.SigningMethodRSA{Name: name, Hash: hash}

	var method jwt.SigningMethod = rsaMethod
	if pad == paddingPSS {
		method = &jwt.SigningMethodRSAPSS{
			SigningMethodRSA: rsaMethod,
			Options: &rsa.PSSOptions{
				SaltLength: rsa.PSSSaltLengthEqualsHash,
			},
			VerifyOptions: &rsa.PSSOptions{
				SaltLength: rsa.PSSSaltLengthAuto,
			},
		}
	}

	return &RSAAlgorithm{
		BaseAlgorithm: BaseAlgorithm{
			name:    name,
			hash:    hash,
			keyType: KeyTypeRSA,
			method:  method,
		},
		padding: pad,
	}
}

// PSS reports whether the algorithm uses RSASSA-PSS padding
func (r *RSAAlgorithm) PSS() bool {
	return r.padding == paddingPSS
}

// Register predefined RSA algorithms
func init() {
	// Register RSASSA-PKCS1-v1_5 algorithms
	register(NewRSAAlgorithm("RS256", crypto.SHA256, paddingPKCS1v15))
	register(NewRSAAlgorithm("RS384", crypto.SHA384, paddingPKCS1v15))
	register(NewRSAAlgorithm("RS512", crypto.SHA512, paddingPKCS1v15))

	// Register RSASSA-PSS algorithms
	register(NewRSAAlgorithm("PS256", crypto.SHA256, paddingPSS))
	register(NewRSAAlgorithm("PS384", crypto.SHA384, paddingPSS))
	register(NewRSAAlgorithm("PS512", crypto.SHA512, paddingPSS))
}
