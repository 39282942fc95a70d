package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	passwordCost = 10
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password longer than %d bytes", ErrInvalidInput, maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePasswords returns ErrInvalidCredentials on mismatch.
func ComparePasswords(hashedPassword string, plainPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
