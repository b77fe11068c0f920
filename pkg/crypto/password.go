package crypto

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted bcrypt hash of plaintext. The output
// format is opaque; only VerifyPassword needs to understand it.
func HashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
}

// VerifyPassword reports whether plaintext re-derives to the stored hash.
// A malformed or truncated hash counts as a mismatch rather than a
// failure, so corrupted storage can never crash a login path.
func VerifyPassword(hash []byte, plain string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain)) == nil
}
