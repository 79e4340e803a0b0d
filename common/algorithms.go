package common

import (
	"fmt"

	"github.com/dchest/siphash"
)

func Siphash(left, right uint64, body []byte) uint64 {
	return siphash.Hash(left, right, body)
}

func Sipit(key []byte) uint64 {
	return Siphash(9007199254740993, 2147483647, key)
}

func Textual(key uint64, size int) string {
	text := fmt.Sprintf("%016x", key)
	if size > 0 && size < len(text) {
		return text[:size]
	}
	return text
}

// IdentityHash gives a short stable name for any byte content, used
// for naming per-run directories and temp files.
func IdentityHash(content []byte) string {
	return Textual(Sipit(content), 0)
}
