package qa

import (
	"crypto/sha256"
	"math"
	"math/rand/v2"
)

// Score returns a reproducible value in [low, high] rounded to decimals
// places. The SHA-256 digest of seed is the 256-bit ChaCha8 seed, so the
// same arguments give the same value in every process.
func Score(seed string, low, high float64, decimals int) float64 {
	sum := sha256.Sum256([]byte(seed))
	r := rand.New(rand.NewChaCha8(sum))
	v := round(low+(high-low)*r.Float64(), decimals)
	return math.Min(math.Max(v, low), high)
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// prefix returns the first n characters of s.
func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
