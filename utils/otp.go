package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOtpCode returns a uniformly random six-digit code in
// [100000, 999999].
func GenerateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("otp generation failed: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
