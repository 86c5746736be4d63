// Package codec implements the two decoders exposed by the terminal: a
// binary octet decoder and a Vigenère cipher. All functions are pure.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// ErrInvalidBinary is returned by DecodeBinary when any token is not a
// well-formed octet. Callers should test with errors.Is.
var ErrInvalidBinary = errors.New("invalid binary format")

// octetWidth is the exact number of binary digits accepted per token.
const octetWidth = 8

// DecodeBinary decodes whitespace-separated octets (e.g. "01000111
// 01001101") into the string whose characters have those code points.
//
// Every token must be exactly eight binary digits. A single bad token fails
// the whole decode; no partial output is returned.
func DecodeBinary(input string) (string, error) {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return "", fmt.Errorf("%w: no octets", ErrInvalidBinary)
	}

	if bad, ok := lo.Find(tokens, func(tok string) bool { return !isOctet(tok) }); ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidBinary, bad)
	}

	runes := lo.Map(tokens, func(tok string, _ int) rune {
		// validated above; ParseUint cannot fail
		v, _ := strconv.ParseUint(tok, 2, 8)
		return rune(v)
	})
	return string(runes), nil
}

// EncodeBinary is the inverse of DecodeBinary for code points below 256.
func EncodeBinary(s string) (string, error) {
	var parts []string
	for _, r := range s {
		if r > 0xff {
			return "", fmt.Errorf("%w: %q does not fit in an octet", ErrInvalidBinary, r)
		}
		parts = append(parts, fmt.Sprintf("%08b", r))
	}
	return strings.Join(parts, " "), nil
}

func isOctet(tok string) bool {
	if len(tok) != octetWidth {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] != '0' && tok[i] != '1' {
			return false
		}
	}
	return true
}
