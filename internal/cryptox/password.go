// Package cryptox implements password hashing for stored account records.
// Credentials are never persisted in clear text: each password is hashed
// with argon2id under a random per-user salt.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Kept modest: this runs on-device for a single user.
const (
	saltLen = 16
	keyLen  = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// ErrMalformedHash is returned when a stored hash does not have the
// expected "salt$key" shape.
var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword derives an argon2id key from the password under a fresh
// random salt and encodes both as "base64(salt)$base64(key)".
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, keyLen)

	enc := base64.RawStdEncoding
	return enc.EncodeToString(salt) + "$" + enc.EncodeToString(key), nil
}

// VerifyPassword reports whether password matches the encoded hash.
// The comparison is constant-time. A malformed hash is an error, not
// a mismatch.
func VerifyPassword(encoded, password string) (bool, error) {
	salt, key, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, keyLen)
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func decodeHash(encoded string) (salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 2 {
		return nil, nil, ErrMalformedHash
	}

	enc := base64.RawStdEncoding
	salt, err = enc.DecodeString(parts[0])
	if err != nil {
		return nil, nil, ErrMalformedHash
	}
	key, err = enc.DecodeString(parts[1])
	if err != nil {
		return nil, nil, ErrMalformedHash
	}
	if len(salt) == 0 || len(key) == 0 {
		return nil, nil, ErrMalformedHash
	}
	return salt, key, nil
}
