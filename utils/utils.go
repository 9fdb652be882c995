package utils

import (
	"math/big"

	"golang.org/x/crypto/sha3"
)

// Keccak256 hashes the concatenation of data with legacy Keccak-256.
func Keccak256(data ...[]byte) []byte {
	hash := sha3.NewLegacyKeccak256()
	for _, d := range data {
		hash.Write(d)
	}
	return hash.Sum(nil)
}

// Fingerprint identifies a secret without revealing it: the Keccak-256 hash
// of its decimal representation. The sign is part of the string, so x and -x
// do not collide.
func Fingerprint(secret *big.Int) []byte {
	return Keccak256([]byte(secret.String()))
}
