package ledger

import (
	"context"
	"math"
	"sync"
)

// searchNonce runs the Proof-of-Work search: starting from the block's
// current nonce (zero on a freshly assembled block) it keeps recomputing the
// block hash until the consensus rule accepts it. The loop is intentionally
// expensive, that cost is the security property. It returns early only if
// ctx is cancelled, leaving the block uncommitted.
func (bc *Blockchain) searchNonce(ctx context.Context, block *Block) error {
	if bc.workers > 1 {
		return bc.searchNonceParallel(ctx, block)
	}

	for {
		// check whether we were told to stop
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ok, err := block.Satisfies(bc.rule)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		if block.Nonce == math.MaxUint64 {
			// Nonce space exhausted: re-salt the header with a fresh
			// timestamp and start over.
			block.Timestamp = bc.clock()
			block.Nonce = 0
			continue
		}
		block.Nonce++
	}
}

// searchNonceParallel stripes the nonce space across the configured number
// of workers: worker w starts at the block's nonce plus w and steps by n.
// The first worker to satisfy the rule wins, the others are cancelled and
// their candidates discarded, so exactly one nonce is ever committed to the
// block.
func (bc *Blockchain) searchNonceParallel(ctx context.Context, block *Block) error {
	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg           sync.WaitGroup
		once         sync.Once
		winNonce     uint64
		winTimestamp int64
		winHash      string
		searchErr    error
	)

	stride := uint64(bc.workers)
	for w := uint64(0); w < stride; w++ {
		wg.Add(1)
		go func(w uint64) {
			defer wg.Done()

			// Each worker hashes its own copy. The transaction slice is
			// shared but read-only for the whole search.
			candidate := *block
			nonce := block.Nonce + w
			for {
				select {
				case <-searchCtx.Done():
					return
				default:
				}

				candidate.Nonce = nonce
				ok, err := candidate.Satisfies(bc.rule)
				if err != nil {
					once.Do(func() {
						searchErr = err
						cancel()
					})
					return
				}
				if ok {
					once.Do(func() {
						winNonce = nonce
						winTimestamp = candidate.Timestamp
						winHash = candidate.Hash
						cancel()
					})
					return
				}
				if nonce > math.MaxUint64-stride {
					// Stripe exhausted: re-salt like the synchronous search
					// and restart at the stripe origin. The winner reports
					// its own timestamp, so stripes may re-salt
					// independently.
					candidate.Timestamp = bc.clock()
					nonce = w
					continue
				}
				nonce += stride
			}
		}(w)
	}
	wg.Wait()

	// A caller cancellation always wins over a result found in the same
	// instant: the block must not be committed once the caller gave up.
	if err := ctx.Err(); err != nil {
		return err
	}
	if searchErr != nil {
		return searchErr
	}

	block.Nonce = winNonce
	block.Timestamp = winTimestamp
	block.Hash = winHash
	return nil
}
