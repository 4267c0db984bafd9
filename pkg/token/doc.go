/*
Package token creates and reads compact JWS tokens.

Creating a token:

	claims := token.NewMap()
	claims.Set("sub", "test-token")

	jwt, err := token.Create(token.TokenParams{
	    Claims:      claims,
	    Signing:     token.HMAC{Algorithm: "HS512", Secret: "c29tZS1zZWNyZXQ="},
	    Compression: "deflate",
	    Duration:    2 * time.Hour,
	})

Claims and headers keep their insertion order. "iat" is always stamped and
"exp" is added when a Duration is given. Asymmetric tokens are signed with a
PEM private key; encrypted keys ask for their password through a
keys.PasswordFunc only when needed:

	jwt, err := token.Create(token.TokenParams{
	    Claims:   claims,
	    Signing:  token.Asymmetric{Algorithm: "RS256", KeyFile: "private.pem"},
	    Password: keys.Once(prompt),
	})

Reading a token:

	parsed, err := token.Read(jwt, token.ReadOptions{
	    Key: token.PublicKeyFile("public.pem"),
	})
	switch {
	case errors.Is(err, token.ErrTokenExpired):
	    // exp is in the past
	case errors.Is(err, token.ErrSignatureVerification):
	    // wrong key or tampered token
	}

	claims, _ := parsed.Claims()

Expired tokens can still be inspected with IgnoreExpiration, and unverified
data with IgnoreSignature.
*/
package token
