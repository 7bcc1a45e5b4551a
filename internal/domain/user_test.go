package domain

import (
	"testing"
	"time"
)

func pendingUser(code string, expiresAt time.Time) *User {
	return &User{OTP: &code, OTPExpiresAt: &expiresAt}
}

func TestOTPValidAt(t *testing.T) {
	now := time.Now()
	deadline := now.Add(10 * time.Minute)
	user := pendingUser("123456", deadline)

	if !user.OTPValidAt("123456", now) {
		t.Fatal("matching unexpired code must be valid")
	}
	if user.OTPValidAt("654321", now) {
		t.Fatal("wrong code must be invalid")
	}
	if user.OTPValidAt("123456", deadline) {
		t.Fatal("a code presented exactly at its deadline is stale")
	}
	if user.OTPValidAt("123456", deadline.Add(time.Second)) {
		t.Fatal("expired code must be invalid")
	}

	blank := &User{}
	if blank.OTPValidAt("123456", now) {
		t.Fatal("no pending challenge means no valid code")
	}
}
