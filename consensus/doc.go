// Package consensus defines the Proof-of-Work acceptance rule that every
// block on the chain must satisfy. The rule is the only thing standing
// between a cheap forgery and an accepted block: finding a satisfying nonce
// is computationally expensive, while checking a candidate hash is a single
// string comparison.
//
// # Core Components
//
// Rule: A pure predicate over a hex-encoded block hash. The ledger holds a
// Rule value and never hardcodes the difficulty, so the acceptance test can
// be swapped without touching the mining or validation logic.
//
// TrailingZeros: The built-in rule family. A hash is accepted when it ends
// with a run of '0' hex digits of the configured length. Each additional
// digit multiplies the expected mining work by sixteen.
//
// # Cost Asymmetry
//
// Mining a block means iterating nonces until the rule accepts the block
// hash, which is intentionally expensive. Verifying an existing chain only
// replays the cheap side of the rule, one hash and one suffix check per
// block. This asymmetry is what makes rewriting history harder than
// extending it.
package consensus
