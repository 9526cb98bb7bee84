package consensus

import "strings"

// Rule is the acceptance test a block hash must pass before the block can
// join the chain. It must be a pure function of the hex-encoded hash so that
// mining and chain validation always agree on what counts as valid work.
type Rule func(hash string) bool

// DefaultDifficulty is the number of trailing zero digits required by the
// default rule.
const DefaultDifficulty = 5

// TrailingZeros returns the rule accepting hashes that end with n '0' hex
// characters. Values of n below 1 yield a rule that accepts everything,
// which makes mining free and is only useful in tests.
func TrailingZeros(n int) Rule {
	if n < 0 {
		n = 0
	}
	suffix := strings.Repeat("0", n)
	return func(hash string) bool {
		return strings.HasSuffix(hash, suffix)
	}
}

// Default returns TrailingZeros at DefaultDifficulty.
func Default() Rule {
	return TrailingZeros(DefaultDifficulty)
}
