package keys

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"

	"github.com/youmark/pkcs8"
)

// PEM block types
const (
	blockRSAPrivate       = "RSA PRIVATE KEY"
	blockECPrivate        = "EC PRIVATE KEY"
	blockPKCS8Private     = "PRIVATE KEY"
	blockEncryptedPrivate = "ENCRYPTED PRIVATE KEY"
	blockPublic           = "PUBLIC KEY"
	blockRSAPublic        = "RSA PUBLIC KEY"
	blockCertificate      = "CERTIFICATE"
)

// ResolvePrivateKey reads a PEM file and returns the first private key it holds.
// The password supplier is only consulted for encrypted keys.
func ResolvePrivateKey(path string, password PasswordFunc) (crypto.Signer, error) {
	data, err := readKeyFile(path)
	if err != nil {
		return nil, err
	}

	key, err := ParsePrivateKey(data, password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return key, nil
}

// ParsePrivateKey returns the first RSA or ECDSA private key found in PEM data.
// Supported encodings:
// - PKCS#1 "RSA PRIVATE KEY" and SEC 1 "EC PRIVATE KEY", optionally with legacy
//   Proc-Type/DEK-Info encryption
// - PKCS#8 "PRIVATE KEY"
// - PKCS#8 "ENCRYPTED PRIVATE KEY" (PBES2)
// Blocks of any other type, such as "EC PARAMETERS", are skipped.
func ParsePrivateKey(data []byte, password PasswordFunc) (crypto.Signer, error) {
	source := &passwordSource{fn: password}
	defer source.wipe()

	var sawPublic bool
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}

		switch block.Type {
		case blockRSAPrivate, blockECPrivate, blockPKCS8Private:
			der := block.Bytes
			//nolint:staticcheck // legacy Proc-Type/DEK-Info encryption
			if x509.IsEncryptedPEMBlock(block) {
				pw, err := source.get()
				if err != nil {
					return nil, err
				}
				//nolint:staticcheck
				der, err = x509.DecryptPEMBlock(block, pw)
				if err != nil {
					return nil, fmt.Errorf("%w: failed to decrypt key: %v", ErrInvalidKeyFile, err)
				}
				defer Wipe(der)
			}
			key, err := parsePrivateDER(der)
			if err != nil {
				return nil, err
			}
			return normalizePrivateKey(key)

		case blockEncryptedPrivate:
			pw, err := source.get()
			if err != nil {
				return nil, err
			}
			key, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, pw)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to decrypt key: %v", ErrInvalidKeyFile, err)
			}
			return normalizePrivateKey(key)

		case blockPublic, blockRSAPublic, blockCertificate:
			sawPublic = true
		}
	}

	if sawPublic {
		return nil, fmt.Errorf("%w: found a public key where a private key is required", ErrInvalidKeyFile)
	}
	return nil, fmt.Errorf("%w: no private key found", ErrInvalidKeyFile)
}

// ResolvePublicKey reads a PEM file and returns the first public key it holds
func ResolvePublicKey(path string) (crypto.PublicKey, error) {
	data, err := readKeyFile(path)
	if err != nil {
		return nil, err
	}

	key, err := ParsePublicKey(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return key, nil
}

// ParsePublicKey returns the first RSA or ECDSA public key found in PEM data.
// It accepts PKIX "PUBLIC KEY", PKCS#1 "RSA PUBLIC KEY" and the subject key of a "CERTIFICATE".
func ParsePublicKey(data []byte) (crypto.PublicKey, error) {
	var sawPrivate bool
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}

		var (
			key interface{}
			err error
		)
		switch block.Type {
		case blockPublic:
			key, err = x509.ParsePKIXPublicKey(block.Bytes)
		case blockRSAPublic:
			key, err = x509.ParsePKCS1PublicKey(block.Bytes)
		case blockCertificate:
			var cert *x509.Certificate
			cert, err = x509.ParseCertificate(block.Bytes)
			if err == nil {
				key = cert.PublicKey
			}
		case blockRSAPrivate, blockECPrivate, blockPKCS8Private, blockEncryptedPrivate:
			sawPrivate = true
			continue
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse public key: %v", ErrInvalidKeyFile, err)
		}
		return normalizePublicKey(key)
	}

	if sawPrivate {
		return nil, fmt.Errorf("%w: found a private key where a public key is required", ErrInvalidKeyFile)
	}
	return nil, fmt.Errorf("%w: no public key found", ErrInvalidKeyFile)
}

func readKeyFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFile, err)
	}
	return data, nil
}

// parsePrivateDER tries the DER encodings in turn since block labels
// are not always accurate
func parsePrivateDER(der []byte) (interface{}, error) {
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParseECPrivateKey(der); err == nil {
		return key, nil
	}
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse private key: %v", ErrInvalidKeyFile, err)
	}
	return key, nil
}

func normalizePrivateKey(key interface{}) (crypto.Signer, error) {
	switch k := key.(type) {
	case *rsa.PrivateKey:
		return rebuildRSAPrivateKey(k)
	case *ecdsa.PrivateKey:
		return k, nil
	default:
		return nil, fmt.Errorf("%w: unsupported private key type %T", ErrInvalidKeyFile, key)
	}
}

func normalizePublicKey(key interface{}) (crypto.PublicKey, error) {
	switch k := key.(type) {
	case *rsa.PublicKey:
		return &rsa.PublicKey{N: new(big.Int).Set(k.N), E: k.E}, nil
	case *ecdsa.PublicKey:
		return k, nil
	default:
		return nil, fmt.Errorf("%w: unsupported public key type %T", ErrInvalidKeyFile, key)
	}
}

// rebuildRSAPrivateKey builds the key from its modulus, exponents and primes
// and recomputes the CRT values
func rebuildRSAPrivateKey(k *rsa.PrivateKey) (*rsa.PrivateKey, error) {
	primes := make([]*big.Int, len(k.Primes))
	for i, p := range k.Primes {
		primes[i] = new(big.Int).Set(p)
	}

	key := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{N: new(big.Int).Set(k.N), E: k.E},
		D:         new(big.Int).Set(k.D),
		Primes:    primes,
	}
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFile, err)
	}
	key.Precompute()

	return key, nil
}
