// Copyright (c) 2026 VideoTube. All rights reserved.

package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP returns a random six-digit one-time password as a string.
// Leading zeros are preserved ("042913" is a valid code).
func GenerateOTP() (string, error) {
	upperBound := big.NewInt(1000000)
	value, err := rand.Int(rand.Reader, upperBound)
	if err != nil {
		return "", fmt.Errorf("sec: failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", value.Int64()), nil
}
