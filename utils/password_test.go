package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "admin123" {
		t.Fatal("hash equals the plain-text password")
	}

	if err := VerifyPassword(hash, "admin123"); err != nil {
		t.Errorf("VerifyPassword rejected the correct password: %v", err)
	}

	if err := VerifyPassword(hash, "wrong-password"); err == nil {
		t.Error("VerifyPassword accepted a wrong password")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical, salt missing")
	}
}
