package codec

import (
	"strings"
)

// DecryptVigenere decrypts ciphertext with key using the classic Vigenère
// tableau. Both inputs are upper-cased and stripped of everything but the
// letters A-Z before use, so the result only ever contains A-Z. An empty
// (normalized) key yields an empty result.
func DecryptVigenere(ciphertext, key string) string {
	return vigenere(ciphertext, key, -1)
}

// EncryptVigenere is the inverse of DecryptVigenere, with the same
// normalization rules.
func EncryptVigenere(plaintext, key string) string {
	return vigenere(plaintext, key, 1)
}

func vigenere(text, key string, dir int) string {
	k := normalizeLetters(key)
	if len(k) == 0 {
		return ""
	}
	t := normalizeLetters(text)

	var b strings.Builder
	b.Grow(len(t))
	for i := 0; i < len(t); i++ {
		shift := int(k[i%len(k)] - 'A')
		c := (int(t[i]-'A') + dir*shift + 26) % 26
		b.WriteByte(byte(c) + 'A')
	}
	return b.String()
}

// normalizeLetters upper-cases s and drops every byte outside A-Z.
func normalizeLetters(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z':
			return r
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		default:
			return -1
		}
	}, s)
}
