package auction

import (
	"crypto/rand"
	"fmt"
)

// Code alphabets omit easily-confused characters (0/O, 1/I/L).
const (
	joinCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	joinCodeLength   = 6
	recoveryLength   = 20
)

func randomCode(alphabet string, length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}

// newJoinCode returns a 6-character room code.
func newJoinCode() (string, error) {
	return randomCode(joinCodeAlphabet, joinCodeLength)
}

// newRecoveryCode returns a 20-character master-recovery code.
func newRecoveryCode() (string, error) {
	return randomCode(joinCodeAlphabet, recoveryLength)
}
