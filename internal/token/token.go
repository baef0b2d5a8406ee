// Package token maps 128-bit asset identifiers to the fixed-width base-62
// tokens used in proxy URLs.
package token

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Ordered alphabet: digits, then uppercase, then lowercase. Encoding is
// big-endian positional over this alphabet.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Length is the fixed width of an encoded token. 62^22 > 2^128, so every
// identifier fits in 22 symbols.
const Length = 22

var ErrInvalidToken = errors.New("invalid token")

var base = big.NewInt(int64(len(alphabet)))

// Encode returns the 22-character base-62 token for id, left-padded with
// the zero symbol. The zero identifier encodes to 22 '0's.
func Encode(id uuid.UUID) string {
	n := new(big.Int).SetBytes(id[:])
	mod := new(big.Int)
	buf := make([]byte, 0, Length)
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		buf = append(buf, alphabet[mod.Int64()])
	}
	for len(buf) < Length {
		buf = append(buf, alphabet[0])
	}
	slices.Reverse(buf)
	return string(buf)
}

// Decode folds tok left-to-right into an identifier. It fails with
// ErrInvalidToken on the first byte outside the alphabet. Length is not
// validated: short tokens zero-extend and overlong tokens keep the low 128
// bits of the accumulated value. Routing is keyed by identifier equality
// against the catalog, so odd-length tokens simply resolve or miss.
func Decode(tok string) (uuid.UUID, error) {
	n := new(big.Int)
	digit := new(big.Int)
	for i := 0; i < len(tok); i++ {
		idx := strings.IndexByte(alphabet, tok[i])
		if idx < 0 {
			return uuid.UUID{}, fmt.Errorf("%w: byte %q at position %d", ErrInvalidToken, tok[i], i)
		}
		n.Mul(n, base)
		n.Add(n, digit.SetInt64(int64(idx)))
	}
	var id uuid.UUID
	b := n.Bytes()
	if len(b) > len(id) {
		b = b[len(b)-len(id):]
	}
	copy(id[len(id)-len(b):], b)
	return id, nil
}
