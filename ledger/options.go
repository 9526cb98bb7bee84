package ledger

import (
	"log/slog"

	"github.com/luca-patrignani/tokenchain/consensus"
)

// option configures a Blockchain at construction time. Options mutate the
// node in place because it owns mutexes and must never be copied.
type option func(*Blockchain)

// WithReward changes the number of tokens credited to the miner per block.
func WithReward(amount float64) option {
	return func(bc *Blockchain) {
		bc.reward = amount
	}
}

// WithRule replaces the consensus rule used for mining and validation.
// Swapping the rule is how difficulty is tuned.
func WithRule(rule consensus.Rule) option {
	return func(bc *Blockchain) {
		bc.rule = rule
	}
}

// WithClock replaces the timestamp source for newly mined blocks. Tests use
// this to make block headers deterministic.
func WithClock(clock func() int64) option {
	return func(bc *Blockchain) {
		bc.clock = clock
	}
}

// WithWorkers sets the number of goroutines striping the Proof-of-Work
// nonce search. Values below 1 fall back to a single synchronous worker.
func WithWorkers(n int) option {
	return func(bc *Blockchain) {
		if n < 1 {
			n = 1
		}
		bc.workers = n
	}
}

// WithLogger attaches a structured logger to the node. By default the node
// is silent.
func WithLogger(logger *slog.Logger) option {
	return func(bc *Blockchain) {
		bc.logger = logger
	}
}
