package project

import (
	"crypto/sha256"
)

// Digest — фиксированный 256 битный хеш содержимого.
type Digest [32]byte

// HashContent digests raw file bytes.
func HashContent(content []byte) Digest {
	return sha256.Sum256(content)
}

// Combine builds an aggregate hash H(base || extra1 || extra2 ...).
// Caller supplies extras in a deterministic order.
func Combine(base Digest, extras ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(base[:])
	for _, d := range extras {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
