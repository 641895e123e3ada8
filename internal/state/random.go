package state

import (
	crand "crypto/rand"
	"math/rand/v2"
	"strings"
)

// idAlphabet skips vowels and look-alike characters so room codes are easy
// to read out loud and never spell words.
const idAlphabet = "bcdfghjkmnpqrstvwxz23456789"

// RandomFourCharacterString produces a short identifier for rooms and
// players. Not unique by construction; callers handle collisions with an
// existence-check-and-retry.
func RandomFourCharacterString() string {
	b := make([]byte, 4)
	_, _ = crand.Read(b)
	for i := range b {
		b[i] = idAlphabet[int(b[i])%len(idAlphabet)]
	}
	return string(b)
}

// RandomSpectrumTarget draws the hidden value for a round, uniform over the
// dial range [0, SpectrumMax].
func RandomSpectrumTarget() int {
	return rand.IntN(SpectrumMax + 1)
}

func randomBool() bool {
	return rand.IntN(2) == 0
}

// ValidID reports whether s is a well-formed 4-character identifier, i.e.
// something RandomFourCharacterString could have produced.
func ValidID(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(idAlphabet, rune(s[i])) {
			return false
		}
	}
	return true
}
