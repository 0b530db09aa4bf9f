package minimax

import (
	"math/rand"
	"time"
)

type SeedGeneratorFnType func() int64

var SeedGeneratorFn SeedGeneratorFnType = func() int64 {
	return time.Now().UnixNano()
}

// Set custom seed generator function for random number generators created by NewRand,
// by default uses current time in nanoseconds
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}

// New random number generator, seeded with SeedGeneratorFn
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(SeedGeneratorFn()))
}

// How often (in visited nodes) the limiter checks the clock and the context
const checkInterval uint32 = 1024
