// Package codes generates the short verification codes mailed to participants.
package codes

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Alphabet is uppercase letters and digits with the visually confusable
// O, 0, I, 1 and L removed, so a code read aloud or typed from a chat
// message cannot be misread.
const Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// DefaultLength is the code length issued on registration.
const DefaultLength = 6

// Generate returns a random code of the given length drawn uniformly from
// Alphabet. Codes double as a lightweight shared secret shown in a public
// chat, so the draw uses crypto/rand. A length <= 0 yields an empty string.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	max := big.NewInt(int64(len(Alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		b[i] = Alphabet[n.Int64()]
	}
	return string(b), nil
}
