package auth_test

import (
	"testing"

	"prtrack/internal/auth"
)

func TestJWTRoundTrip(t *testing.T) {
	j := auth.NewJWT("test-secret")

	token, err := j.Sign("Idham")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	user, err := j.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if user != "Idham" {
		t.Errorf("user = %q, want %q", user, "Idham")
	}
}

func TestJWTRejectsBadToken(t *testing.T) {
	j := auth.NewJWT("test-secret")

	if _, err := j.Verify("not-a-token"); err == nil {
		t.Error("garbage token verified")
	}

	other := auth.NewJWT("different-secret")
	token, err := other.Sign("Idham")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := j.Verify(token); err == nil {
		t.Error("token signed with a different secret verified")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !auth.ComparePassword(hash, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if auth.ComparePassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}
