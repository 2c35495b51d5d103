// Package otpgen generates one-time passcodes from a configurable
// character-class policy.
package otpgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	digitChars     = "0123456789"
	lowerCaseChars = "abcdefghijklmnopqrstuvwxyz"
	upperCaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	specialChars   = "#!&@"
)

const defaultLength = 6

// Policy controls passcode length and which character classes are drawn
// from. A policy with no class enabled produces digit-only codes, so the
// zero value (with a default length) is a usable numeric policy.
type Policy struct {
	Length             int
	Digits             bool
	UpperCaseAlphabets bool
	LowerCaseAlphabets bool
	SpecialChars       bool
}

type Generator interface {
	Generate() (string, error)
}

type charsetGenerator struct {
	length  int
	charset string
}

func NewGenerator(policy Policy) Generator {
	length := policy.Length
	if length <= 0 {
		length = defaultLength
	}

	charset := ""
	if policy.Digits {
		charset += digitChars
	}
	if policy.LowerCaseAlphabets {
		charset += lowerCaseChars
	}
	if policy.UpperCaseAlphabets {
		charset += upperCaseChars
	}
	if policy.SpecialChars {
		charset += specialChars
	}

	// No class enabled falls back to digits
	if charset == "" {
		charset = digitChars
	}

	return &charsetGenerator{
		length:  length,
		charset: charset,
	}
}

// Generate draws each character uniformly from the policy charset using
// crypto/rand, so codes are not guessable from earlier codes.
func (g *charsetGenerator) Generate() (string, error) {
	code := make([]byte, g.length)
	max := big.NewInt(int64(len(g.charset)))

	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to draw random character: %w", err)
		}
		code[i] = g.charset[n.Int64()]
	}

	return string(code), nil
}
