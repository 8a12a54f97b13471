// Package kpm - RNG utilities for the realization loop.
//
// One deterministic stream per realization, derived from Params.Seed, so
// results do not depend on how many realizations run concurrently.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Each realization derives and
//     owns its own *rand.Rand; streams are never shared.
package kpm

import "math/rand"

// defaultSeed is the fixed "zero" seed used when callers pass Seed==0.
// Arbitrary but stable, to keep reproducible defaults.
const defaultSeed int64 = 1

// realizationRNG returns the deterministic stream of realization r under
// base seed. Seed==0 maps to defaultSeed; distinct realizations mix their
// index through a SplitMix64-style finalizer to decorrelate streams.
func realizationRNG(seed int64, r int) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(deriveSeed(seed, uint64(r))))
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit
// seed via the canonical SplitMix64 finalizer (Vigna 2014): strong bit
// diffusion, so adjacent realization indices yield uncorrelated streams.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}
