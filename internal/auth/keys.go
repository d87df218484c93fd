// Package auth mints API keys. Raw keys look like "osk_" followed by 32
// hex characters; the first KeyPrefixLen characters form the lookup
// prefix stored alongside the bcrypt hash.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	keyPrefix = "osk_"
	keyBytes  = 16

	// KeyPrefixLen is how many leading characters of a raw key are kept
	// in plaintext for index lookup.
	KeyPrefixLen = 8
)

// MintKey generates a raw API key and its bcrypt hash.
func MintKey() (rawKey, hash string, err error) {
	buf := make([]byte, keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generating key material: %w", err)
	}
	rawKey = keyPrefix + hex.EncodeToString(buf)

	hashed, err := bcrypt.GenerateFromPassword([]byte(rawKey), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("hashing key: %w", err)
	}
	return rawKey, string(hashed), nil
}
