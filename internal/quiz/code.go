package quiz

import (
	"encoding/binary"
	"math"
	"math/rand"

	"golang.org/x/crypto/blake2b"
)

// CodePredicate accepts or rejects a candidate completion code. A nil
// predicate accepts everything.
type CodePredicate func(int64) bool

// MaxCodeAttempts bounds the rejection-sampling loop: an acceptance
// predicate with a tiny acceptance probability must fail loudly instead
// of spinning forever.
const MaxCodeAttempts = 10000

// ModPredicate accepts codes where code mod mod == rem.
func ModPredicate(mod, rem int64) CodePredicate {
	return func(code int64) bool { return code%mod == rem }
}

// GenerateCode draws random 128-bit values, reduces each to a
// non-negative int64 and returns the first one the predicate accepts.
// Fails with a CodeExhaustedError after MaxCodeAttempts rejections.
func GenerateCode(r *rand.Rand, accept CodePredicate) (int64, error) {
	if accept == nil {
		accept = func(int64) bool { return true }
	}
	for i := 0; i < MaxCodeAttempts; i++ {
		code := reduceCode(randomBits(r))
		if accept(code) {
			return code, nil
		}
	}
	return 0, &CodeExhaustedError{Attempts: MaxCodeAttempts}
}

func randomBits(r *rand.Rand) [16]byte {
	var b [16]byte
	if r != nil {
		binary.LittleEndian.PutUint64(b[:8], r.Uint64())
		binary.LittleEndian.PutUint64(b[8:], r.Uint64())
		return b
	}
	binary.LittleEndian.PutUint64(b[:8], rand.Uint64())
	binary.LittleEndian.PutUint64(b[8:], rand.Uint64())
	return b
}

// reduceCode hashes the 128 random bits down to an opaque non-negative
// code.
func reduceCode(bits [16]byte) int64 {
	sum := blake2b.Sum256(bits[:])
	u := binary.BigEndian.Uint64(sum[:8])
	return int64(u & math.MaxInt64)
}
