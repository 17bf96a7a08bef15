package utils

import (
	"crypto/rand"
	"math/big"
)

// Character classes for generated passwords. The password drawn from them is
// one-time: admins provision an account with it and the user is expected to
// change it through the user-update endpoint.
const (
	randLower   = "abcdefghijkmnopqrstuvwxyz"
	randUpper   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	randDigits  = "23456789"
	randSymbols = "!@#$%^&*"
)

// RandomPassword returns a cryptographically random password of the given
// length containing at least one character from each class. Lengths below 8
// are raised to 8.
func RandomPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	all := randLower + randUpper + randDigits + randSymbols

	// One guaranteed pick per class, the rest from the full alphabet.
	out := make([]byte, 0, length)
	for _, class := range []string{randLower, randUpper, randDigits, randSymbols} {
		c, err := randByte(class)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < length {
		c, err := randByte(all)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	// Shuffle so the class-guaranteed characters are not always the prefix.
	for i := len(out) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		j := int(n.Int64())
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}

func randByte(alphabet string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, err
	}
	return alphabet[n.Int64()], nil
}
