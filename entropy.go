package lrge

import (
	"crypto/rand"
	"encoding/binary"
)

// entropySeed reads a seed from OS entropy for the unseeded case (spec §4.3:
// "from OS entropy when absent").
func entropySeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand.Read only fails if the OS entropy source is
		// unavailable, which is not recoverable; fall back to a fixed
		// non-zero seed rather than panicking a best-effort randomizer.
		return 0x5DEECE66D
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}
