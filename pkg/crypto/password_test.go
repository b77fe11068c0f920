package crypto

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if string(hash) == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !VerifyPassword(hash, "correct horse battery staple") {
		t.Fatal("expected matching password to verify")
	}
	if VerifyPassword(hash, "wrong password") {
		t.Fatal("expected non-matching password to fail verification")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if string(first) == string(second) {
		t.Fatal("two hashes of the same input must differ")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	for _, hash := range [][]byte{nil, {}, []byte("not-a-bcrypt-hash"), []byte("$2a$corrupted")} {
		if VerifyPassword(hash, "anything") {
			t.Fatalf("malformed hash %q must not verify", hash)
		}
	}
}
