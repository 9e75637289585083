package service

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt digest of plain. Two calls with the
// same input yield different digests.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches hash. Any comparison error,
// including a corrupt stored hash, counts as a mismatch.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
