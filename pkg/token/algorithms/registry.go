package algorithms

import (
	"fmt"
	"sort"
)

var algorithms = make(map[string]Algorithm)

// register adds an algorithm to the catalog.
// Only called from init() functions, so the catalog is fixed once the package is loaded.
func register(alg Algorithm) {
	algorithms[alg.Name()] = alg
}

// Get retrieves an algorithm from the catalog by name
// Returns ErrUnsupportedAlgorithm if algorithm not found
// Supported algorithms:
// - HS256, HS384, HS512 (HMAC)
// - RS256, RS384, RS512 (RSA PKCS1v15)
// - PS256, PS384, PS512 (RSA-PSS)
// - ES256, ES384, ES512 (ECDSA)
// - none (unsigned)
func Get(name string) (Algorithm, error) {
	alg, exists := algorithms[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, name)
	}
	return alg, nil
}

// List returns all registered algorithm names in lexical order
func List() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListByKeyType returns the registered algorithm names of one key family
func ListByKeyType(keyType KeyType) []string {
	var names []string
	for _, name := range List() {
		if algorithms[name].KeyType() == keyType {
			names = append(names, name)
		}
	}
	return names
}

// IsHMAC reports whether name is a registered HMAC algorithm
func IsHMAC(name string) bool {
	alg, ok := algorithms[name]
	return ok && alg.KeyType() == KeyTypeHMAC
}

// IsAsymmetric reports whether name is a registered RSA, RSA-PSS or ECDSA algorithm
func IsAsymmetric(name string) bool {
	alg, ok := algorithms[name]
	return ok && alg.KeyType().Asymmetric()
}
