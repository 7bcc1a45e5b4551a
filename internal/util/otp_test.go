package util

import (
	"strconv"
	"testing"
)

func TestGenerateOTPRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		otp, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP: %v", err)
		}
		if len(otp) != 6 {
			t.Fatalf("length %d for %q", len(otp), otp)
		}
		n, err := strconv.Atoi(otp)
		if err != nil {
			t.Fatalf("non-numeric OTP %q", otp)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("OTP %d outside [100000, 999999]", n)
		}
	}
}
