package scene

import (
	"math/rand"

	"github.com/vovakirdan/starfall/internal/config"
)

// Rand is the random source used for spawn parameters. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a deterministic source for seed.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// Between returns an integer in [min, max].
func Between(r Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

// FloatBetween returns a float in [min, max).
func FloatBetween(r Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.Float64()*(max-min)
}

// IntIn draws an integer from an inclusive config range.
func IntIn(r Rand, rg config.Range) float64 {
	return float64(Between(r, int(rg.Min), int(rg.Max)))
}

// FloatIn draws a float from a config range.
func FloatIn(r Rand, rg config.Range) float64 {
	return FloatBetween(r, rg.Min, rg.Max)
}
