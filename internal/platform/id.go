package platform

import (
	"crypto/rand"

	"github.com/google/uuid"
)

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const apiKeyLength = 40

// NewID returns a random UUID string.
func NewID() string {
	return uuid.New().String()
}

// NewAPIKey returns a random API key with the given prefix.
func NewAPIKey(prefix string) string {
	b := make([]byte, apiKeyLength)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	for i := range b {
		b[i] = keyAlphabet[b[i]%byte(len(keyAlphabet))]
	}
	return prefix + string(b)
}
