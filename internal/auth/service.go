package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MAX_API_KEY_LENGTH is the bcrypt input limit.
const MAX_API_KEY_LENGTH = 72

func HashAPIKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("api key is empty")
	}
	if len(key) > MAX_API_KEY_LENGTH {
		return "", fmt.Errorf("api key is longer than %d bytes", MAX_API_KEY_LENGTH)
	}
	hashedKey, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash plain api key to hashed api key: %w", err)
	}
	return string(hashedKey), nil
}

func CompareAPIKey(hashedKey string, plainKey string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedKey), []byte(strings.TrimSpace(plainKey)))
	return err == nil
}

// KeyFromHeader accepts either the bare key or "Bearer <key>".
func KeyFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
