/*
Package keys loads signing and verification keys from PEM files.

Private keys may be PKCS#1, SEC 1 or PKCS#8 encoded, in the clear, with
legacy OpenSSL encryption, or as PKCS#8 "ENCRYPTED PRIVATE KEY" blocks.
The password of an encrypted key is requested lazily:

	key, err := keys.ResolvePrivateKey("signing.pem", keys.Once(promptPassword))
	if errors.Is(err, keys.ErrMissingPassword) {
	    // encrypted key and no password
	}

Public keys are read from PKIX, PKCS#1 or certificate blocks:

	pub, err := keys.ResolvePublicKey("signing.pub.pem")

Keys are parsed fresh on every call; nothing is cached. Password bytes
are wiped once the key has been decrypted.
*/
package keys
