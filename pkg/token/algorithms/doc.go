/*
Package algorithms implements the JWS signature algorithm catalog.

The package provides a fixed registry of supported algorithms and their implementations.
The registry is populated by init() functions and cannot be changed afterwards.
Signing and verification are delegated to github.com/golang-jwt/jwt/v5.

Supported Algorithms:
- HMAC (shared secret, []byte key)
  - HS256 (SHA-256)
  - HS384 (SHA-384)
  - HS512 (SHA-512)

- RSA PKCS1v15 (*rsa.PrivateKey to sign, *rsa.PublicKey to verify)
  - RS256 (SHA-256)
  - RS384 (SHA-384)
  - RS512 (SHA-512)

- RSA-PSS
  - PS256 (SHA-256)
  - PS384 (SHA-384)
  - PS512 (SHA-512)

- ECDSA (*ecdsa.PrivateKey to sign, *ecdsa.PublicKey to verify)
  - ES256 (P-256 + SHA-256)
  - ES384 (P-384 + SHA-384)
  - ES512 (P-521 + SHA-512)

- none (unsigned, empty signature)

Pairing an algorithm with the right key family is the caller's job; an algorithm
only reports ErrInvalidKeyType when it is handed a key it cannot use, and
ErrInvalidSignature when verification fails.
*/
package algorithms
