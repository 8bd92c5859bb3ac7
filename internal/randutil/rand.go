package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Dealer and actors all go through here so a single seed reproduces a game.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns an independent generator for one actor. Two actors sharing a
// base seed still get unrelated streams because the id is folded into both
// PCG words.
func Derive(base int64, id int) *rand.Rand {
	u := uint64(base) ^ uint64(id)<<16
	return rand.New(rand.NewPCG(mix(u+uint64(id)*goldenRatio64), mix(u^goldenRatio64)))
}

// Seed returns a wall-clock seed for runs without an explicit one.
func Seed() int64 {
	return time.Now().UnixNano()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
