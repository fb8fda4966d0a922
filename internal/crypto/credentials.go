// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// credentialCodec is the private bcrypt-backed implementation of
// [CredentialCodec].
type credentialCodec struct {
	// cost is the bcrypt work factor. Stored in the struct so it can be
	// raised per deployment target without touching call sites.
	cost int
}

// NewCredentialCodec constructs a [CredentialCodec] with the given bcrypt
// cost. A cost outside the range bcrypt accepts falls back to
// bcrypt.DefaultCost.
func NewCredentialCodec(cost int) CredentialCodec {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &credentialCodec{cost: cost}
}

// Hash implements [CredentialCodec]. bcrypt generates a fresh random salt on
// every call, so equal secrets never produce equal hashes.
func (c *credentialCodec) Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), c.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing credential: %w", err)
	}

	return string(hashed), nil
}

// Verify implements [CredentialCodec]. bcrypt's comparison is constant time
// with respect to the secret; any error (mismatch, malformed hash) reads as
// false.
func (c *credentialCodec) Verify(secret string, credentialHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credentialHash), []byte(secret)) == nil
}
