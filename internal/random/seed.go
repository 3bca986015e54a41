// Package random provides seed generation and RNG construction helpers.
//
// Every engine in the simulation core draws from an injected
// *rand.Rand so that whole-game runs are reproducible from a single
// seed. NewSeed produces a high-entropy seed for fresh sessions;
// NewRand builds the generator the engines and the tests share.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRand constructs a deterministic generator from the provided seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
