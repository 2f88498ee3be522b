// Package dice provides the randomness abstraction used by the battle engine.
//
// Every random draw in a battle (damage variance, crit rolls, boss special
// attacks, random AI targeting) goes through a Source so tests can replace it
// with a deterministic implementation.
package dice

// Source is the randomness provider for battle resolution.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
}

// Uniform returns a value drawn uniformly from [lo, hi) using src.
//
// Precondition: src must be non-nil; lo <= hi.
// Postcondition: lo <= result < hi, or result == lo when lo == hi.
func Uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Chance reports whether a roll on src lands under p.
// p is clamped to [0, 1], so Chance(src, 1) is always true and Chance(src, 0) always false.
//
// Precondition: src must be non-nil.
func Chance(src Source, p float64) bool {
	return src.Float64() < Clamp01(p)
}

// Clamp01 clamps v to the closed interval [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
