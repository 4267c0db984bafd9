package token

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var base64Values = func() [256]int8 {
	var table [256]int8
	for i := range table {
		table[i] = -1
	}
	for i := 0; i < len(base64Alphabet); i++ {
		table[base64Alphabet[i]] = int8(i)
	}
	return table
}()

// decodeSecret decodes a base64 HMAC secret leniently, like xsd:base64Binary parsers:
// characters outside the standard alphabet are skipped, '=' pads a
// quad, and a trailing partial quad is dropped. "some_secret" therefore
// decodes as "somesecr", six bytes.
func decodeSecret(secret string) []byte {
	filtered := make([]byte, 0, len(secret))
	for i := 0; i < len(secret); i++ {
		c := secret[i]
		if c == '=' || base64Values[c] >= 0 {
			filtered = append(filtered, c)
		}
	}

	out := make([]byte, 0, len(filtered)/4*3)
	for i := 0; i+4 <= len(filtered); i += 4 {
		a, b := sextet(filtered[i]), sextet(filtered[i+1])
		out = append(out, a<<2|b>>4)
		if filtered[i+2] == '=' {
			break
		}
		c := sextet(filtered[i+2])
		out = append(out, b<<4|c>>2)
		if filtered[i+3] == '=' {
			break
		}
		out = append(out, c<<6|sextet(filtered[i+3]))
	}

	return out
}

func sextet(c byte) byte {
	if v := base64Values[c]; v >= 0 {
		return byte(v)
	}
	return 0
}
