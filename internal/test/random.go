package test

import (
	"fmt"
	"math/rand/v2"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomASCIIString returns a pseudo-random alphanumeric string of length
// between minLen and maxLen inclusive.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	buf := make([]byte, minLen+rand.IntN(maxLen-minLen+1))
	for i := range buf {
		buf[i] = asciiLetters[rand.IntN(len(asciiLetters))]
	}
	return string(buf)
}

// RandomEmail returns a unique-looking customer address.
func RandomEmail() string {
	return RandomASCIIString(5, 12) + "@example.com"
}

// RandomPassword returns a password that passes registration rules.
func RandomPassword() string {
	return RandomASCIIString(8, 16)
}

// RandomOrderID mimics server-issued order identifiers.
func RandomOrderID() string {
	return fmt.Sprintf("ord-%d", rand.IntN(1_000_000))
}
