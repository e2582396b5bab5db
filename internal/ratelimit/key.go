package ratelimit

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// hashSize is the digest length in bytes (16 hex chars).
const hashSize = 8

// HashKey returns a short BLAKE2b digest of key, optionally keyed by salt.
func HashKey(key, salt string) string {
	mac := []byte(salt)
	if len(mac) > blake2b.Size {
		sum := blake2b.Sum512(mac)
		mac = sum[:]
	}

	h, err := blake2b.New(hashSize, mac)
	if err != nil {
		// Unreachable: size and key length are bounded above.
		panic(err)
	}
	_, _ = h.Write([]byte(key))

	return hex.EncodeToString(h.Sum(nil))
}
