package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password with a fresh salt.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword returns nil when password matches hash.
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// IsBcryptHash reports whether s already looks like a bcrypt hash, so a
// pre-hashed bootstrap password can be stored unchanged.
func IsBcryptHash(s string) bool {
	if len(s) < 4 {
		return false
	}
	switch s[:4] {
	case "$2a$", "$2b$", "$2y$":
		return true
	}
	return false
}
