// SPDX-License-Identifier: Apache-2.0

// Package crypto owns the one-way transformation of user secrets.
//
// Raw secrets enter this package, credential hashes leave it; nothing here
// logs, stores or returns the plaintext.
package crypto

// CredentialCodec hashes and verifies user secrets.
//
// Hash is salted per call: hashing the same secret twice yields different
// values, and Verify reconciles that through the salt embedded in the hash.
type CredentialCodec interface {
	// Hash derives an opaque credential hash from a plaintext secret.
	Hash(secret string) (string, error)

	// Verify reports whether secret matches credentialHash. It never
	// returns an error; a malformed hash or a mismatch both read as false.
	Verify(secret string, credentialHash string) bool
}
