// Package crypto implements password hashing for locally created accounts.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (accounts live on end-user machines, keep memory modest).
const (
	argonTime    uint32 = 3
	argonMemory  uint32 = 32 * 1024 // 32 MB
	argonThreads uint8  = 1
	argonKeyLen  uint32 = 32
	saltLen             = 16
)

// HashPassword returns a self-contained "argon2id$salt$hash" string with
// base64-encoded salt and digest, suitable for storing next to the account.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	sum := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return "argon2id$" +
		base64.RawStdEncoding.EncodeToString(salt) + "$" +
		base64.RawStdEncoding.EncodeToString(sum), nil
}

// VerifyPassword checks password against an encoded hash from HashPassword.
func VerifyPassword(password, encoded string) bool {
	salt, want, err := decode(encoded)
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func decode(encoded string) (salt, sum []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != "argon2id" {
		return nil, nil, errors.New("malformed password hash")
	}
	salt, err = base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, nil, err
	}
	sum, err = base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, nil, err
	}
	return salt, sum, nil
}
