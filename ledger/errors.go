package ledger

import "errors"

// Errors reported by the ledger. They are returned wrapped with additional
// context such as the failing block index, use errors.Is to match the kind.
var (
	// ErrInvalidSignature means a transaction signature is missing, forged
	// or does not cover the transaction's current content.
	ErrInvalidSignature = errors.New("invalid transaction signature")

	// ErrInsufficientFunds means a submitted transfer exceeds the sender's
	// balance derived from the chain.
	ErrInsufficientFunds = errors.New("insufficient tokens available")

	// ErrBrokenLink means a block does not reference the hash of its
	// predecessor.
	ErrBrokenLink = errors.New("previous hashes do not match")

	// ErrConsensusViolation means a block's recomputed hash no longer
	// satisfies the consensus rule.
	ErrConsensusViolation = errors.New("block does not satisfy the consensus rule")

	// ErrSigning means the underlying cryptographic primitive rejected the
	// key or payload while producing a signature.
	ErrSigning = errors.New("failed to sign transaction")
)
