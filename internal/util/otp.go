package util

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const otpRange = 900000

// GenerateOTP returns a 6-digit numeric one-time password, uniform over
// [100000, 999999] so the code never carries a leading zero.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
