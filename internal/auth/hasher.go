package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes the credential digest for a secret and its salt
// material. The salt is split at splitIndex and wrapped around the
// secret before digesting, so reproducing a stored digest requires both
// the salt and the split position recorded at account creation.
// Deterministic for fixed inputs; no side effects.
//
// splitIndex must be within [0, len(salt)]. Anything else is a caller
// contract violation and fails on the slice bounds.
func Hash(secret, salt string, splitIndex int) string {
	sum := sha256.Sum256([]byte(salt[:splitIndex] + secret + salt[splitIndex:]))
	return hex.EncodeToString(sum[:])
}
