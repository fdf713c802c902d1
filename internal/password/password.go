// Package password derives and verifies salted scrypt password composites.
//
// A composite is stored as "digestHex.saltHex": a hex-encoded 64-byte scrypt
// digest, a dot, and a hex-encoded 16-byte random salt. The hex form of the
// salt is used as the scrypt salt input, so a composite fully describes how
// to re-derive its digest.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt cost parameters.
	scryptN = 16384
	scryptR = 8
	scryptP = 1

	saltBytes = 16
	keyBytes  = 64

	separator = "."
)

// Hash derives a salted composite for the given plaintext.
func Hash(plain string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)

	digest, err := scrypt.Key([]byte(plain), []byte(saltHex), scryptN, scryptR, scryptP, keyBytes)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	return hex.EncodeToString(digest) + separator + saltHex, nil
}

// Verify reports whether plain matches the stored composite.
//
// It fails closed: a composite without a separator, with an empty digest or
// salt, or with an undecodable digest yields false rather than an error.
// The digest comparison is constant-time.
func Verify(plain, composite string) bool {
	digestHex, saltHex, found := strings.Cut(composite, separator)
	if !found || digestHex == "" || saltHex == "" {
		return false
	}

	stored, err := hex.DecodeString(digestHex)
	if err != nil {
		return false
	}

	derived, err := scrypt.Key([]byte(plain), []byte(saltHex), scryptN, scryptR, scryptP, keyBytes)
	if err != nil {
		return false
	}
	if len(derived) != len(stored) {
		return false
	}

	return subtle.ConstantTimeCompare(derived, stored) == 1
}
