// Package bcrypt hashes account passwords.
package bcrypt

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 10

// HashPassword hashes with a per-hash random salt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Matches reports whether password produces hash. Accounts created through
// Google or Facebook store no hash and never match.
func Matches(hash, password string) bool {
	if !isHash(hash) || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func isHash(s string) bool {
	return len(s) == 60 && s[0] == '$' && s[1] == '2'
}
