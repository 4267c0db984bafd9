package algorithms

import (
	"crypto"

	"github.com/golang-jwt/jwt/v5"
)

// HMACAlgorithm implements the Algorithm interface for HMAC-SHA2 signatures.
// The key is the raw shared secret.
type HMACAlgorithm struct {
	BaseAlgorithm
}

// NewHMACAlgorithm creates a new HMAC algorithm instance
func NewHMACAlgorithm(name string, hash crypto.Hash) Algorithm {
	return &HMACAlgorithm{
		BaseAlgorithm: BaseAlgorithm{
			name:    name,
			hash:    hash,
			keyType: KeyTypeHMAC,
			method:  &jwt.SigningMethodHMAC{Name: name, Hash: hash},
		},
	}
}

// Sign computes the keyed digest of the signing input
func (h *HMACAlgorithm) Sign(signingInput []byte, key interface{}) ([]byte, error) {
	if err := h.KeyCheck(key); err != nil {
		return nil, err
	}
	return h.BaseAlgorithm.Sign(signingInput, key)
}

func init() {
	register(NewHMACAlgorithm("HS256", crypto.SHA256))
	register(NewHMACAlgorithm("HS384", crypto.SHA384))
	register(NewHMACAlgorithm("HS512", crypto.SHA512))
}
