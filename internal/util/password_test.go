package util

import "testing"

func TestDeriveAndVerifyPassword(t *testing.T) {
	hash, salt, err := DerivePassword("secret123")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	if len(hash) == 0 || len(salt) == 0 {
		t.Fatalf("expected hash and salt to be populated")
	}
	if !VerifyPassword("secret123", salt, hash) {
		t.Fatalf("expected password verification to succeed")
	}
	if VerifyPassword("wrong-pass", salt, hash) {
		t.Fatalf("expected password verification to fail for wrong password")
	}
}

func TestDerivePasswordSalted(t *testing.T) {
	hash1, _, err := DerivePassword("secret123")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	hash2, _, err := DerivePassword("secret123")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	if string(hash1) == string(hash2) {
		t.Fatalf("expected different hashes for the same password under fresh salts")
	}
}

func TestHashPasswordEmptyInput(t *testing.T) {
	if _, err := HashPassword("", []byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error when password empty")
	}
	if _, err := HashPassword("secret", nil); err == nil {
		t.Fatalf("expected error when salt empty")
	}
}

func TestVerifyPasswordMalformedInputs(t *testing.T) {
	if VerifyPassword("secret", nil, []byte{1}) {
		t.Fatalf("expected verification to fail for missing salt")
	}
	if VerifyPassword("secret", []byte{1}, nil) {
		t.Fatalf("expected verification to fail for missing hash")
	}
	if VerifyPassword("", []byte{1}, []byte{1}) {
		t.Fatalf("expected verification to fail for empty password")
	}
}
