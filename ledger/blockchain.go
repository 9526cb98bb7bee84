package ledger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/luca-patrignani/tokenchain/consensus"
	"github.com/luca-patrignani/tokenchain/wallet"
)

// RewardAmount is the number of tokens credited to the miner of each block.
// This is how new tokens enter the chain.
const RewardAmount = 2.0

// Blockchain is a single token ledger node. It owns the chain of mined
// blocks, the pool of pending transactions and the consensus rule, and it is
// the only writer of both.
type Blockchain struct {
	mu      sync.RWMutex  // Protects blocks and pending
	blocks  []Block       // The chain of mined blocks
	pending []Transaction // Transactions awaiting inclusion in the next block

	miner   wallet.Address
	reward  float64
	rule    consensus.Rule
	clock   func() int64
	workers int
	logger  *slog.Logger

	mineMu sync.Mutex // Serializes miners, at most one block is in flight
}

// New creates a new ledger node crediting mining rewards to miner and mines
// the genesis block before returning, so the chain always starts with length
// one and the miner already holds one reward.
//
// By default the node uses the consensus.Default rule, a reward of
// RewardAmount, Unix-second timestamps, a single mining worker and no
// logging. All of these can be changed with options:
//
//	node, err := ledger.New(addr,
//		ledger.WithRule(consensus.TrailingZeros(3)),
//		ledger.WithWorkers(4),
//	)
//
// Returns an error only if the genesis block cannot be mined.
func New(miner wallet.Address, opts ...option) (*Blockchain, error) {
	bc := &Blockchain{
		blocks:  make([]Block, 0),
		pending: make([]Transaction, 0),
		miner:   miner,
		reward:  RewardAmount,
		rule:    consensus.Default(),
		clock:   func() int64 { return time.Now().Unix() },
		workers: 1,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(bc)
	}

	if _, err := bc.Mine(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to mine the genesis block: %w", err)
	}

	return bc, nil
}

// Submit validates a signed transaction and queues it for inclusion in the
// next mined block.
//
// The transaction is rejected with ErrInvalidSignature if its signature does
// not verify against its current content, and with ErrInsufficientFunds if
// the sender's balance derived from the chain cannot cover the value. Either
// way a rejected transaction leaves the pool untouched. Queued order is
// preserved; there is no deduplication and no fee.
//
// Thread-safety: safe for concurrent use, including while a mine is running.
// Transactions submitted during an in-flight mine land in the next block.
func (bc *Blockchain) Submit(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	bc.mu.Lock()
	defer bc.mu.Unlock()

	// The balance check and the append must happen under the same lock or
	// two submissions could both spend the same funds.
	balance := bc.balanceLocked(tx.Sender)
	if balance < tx.Value {
		return fmt.Errorf("%w (%g required, %g available)", ErrInsufficientFunds, tx.Value, balance)
	}

	bc.pending = append(bc.pending, tx)
	bc.logger.Info("transaction queued",
		"sender", tx.Sender.Short(),
		"recipient", tx.Recipient.Short(),
		"value", tx.Value,
		"pending", len(bc.pending),
	)
	return nil
}

// Mine bundles the pending transactions plus a reward transaction into a new
// block, searches for a nonce satisfying the consensus rule and appends the
// block to the chain.
//
// The pending pool is snapshotted before the search starts: transactions
// submitted while mining is in progress are not pulled into the current
// block, they stay queued for the next one. Only the snapshotted
// transactions are removed from the pool on success.
//
// The search blocks until a satisfying nonce is found or ctx is cancelled.
// On cancellation nothing is appended, the pool is left untouched and the
// context error is returned.
//
// Returns the mined block as appended to the chain.
func (bc *Blockchain) Mine(ctx context.Context) (Block, error) {
	bc.mineMu.Lock()
	defer bc.mineMu.Unlock()

	bc.mu.Lock()
	snapshot := make([]Transaction, len(bc.pending))
	copy(snapshot, bc.pending)
	prevHash := GenesisPrevHash
	index := uint64(0)
	if len(bc.blocks) > 0 {
		latest := bc.blocks[len(bc.blocks)-1]
		prevHash = latest.Hash
		index = latest.Index + 1
	}
	bc.mu.Unlock()

	// The reward goes at the end of the block, after the snapshot, so it is
	// never part of the pending pool.
	transactions := make([]Transaction, 0, len(snapshot)+1)
	transactions = append(transactions, snapshot...)
	transactions = append(transactions, NewReward(bc.miner, bc.reward))

	block := Block{
		Index:        index,
		Timestamp:    bc.clock(),
		PrevHash:     prevHash,
		Transactions: transactions,
	}

	if err := bc.searchNonce(ctx, &block); err != nil {
		return Block{}, err
	}

	bc.mu.Lock()
	bc.blocks = append(bc.blocks, block)
	bc.pending = bc.pending[len(snapshot):]
	bc.mu.Unlock()

	bc.logger.Info("successfully mined new block",
		"index", block.Index,
		"nonce", block.Nonce,
		"hash", block.Hash,
		"transactions", len(block.Transactions),
	)
	return block, nil
}

// Balance derives the balance of addr by replaying every transaction in
// every block, subtracting outgoing values and adding incoming ones. The
// result is never stored anywhere: it is recomputed from the chain on every
// call, so it cannot drift from what the blocks actually contain. Addresses
// that never appear on the chain have balance 0.
func (bc *Blockchain) Balance(addr wallet.Address) float64 {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return bc.balanceLocked(addr)
}

// balanceLocked walks the chain without taking the lock, the caller must
// hold it.
func (bc *Blockchain) balanceLocked(addr wallet.Address) float64 {
	balance := 0.0
	for _, block := range bc.blocks {
		for _, tx := range block.Transactions {
			if tx.Sender == addr {
				balance -= tx.Value
			} else if tx.Recipient == addr {
				balance += tx.Value
			}
		}
	}
	return balance
}

// Verify validates the integrity of the entire chain by walking it from the
// genesis block: every block must link to the recomputed hash of its
// predecessor and must still satisfy the consensus rule.
//
// Because hashes are recomputed from the current field values, any post-hoc
// mutation of a mined block shows up here, either as ErrConsensusViolation
// on the block itself or as ErrBrokenLink on its successor. The returned
// error carries the index of the failing block.
//
// Thread-safety: safe for concurrent access.
func (bc *Blockchain) Verify() error {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if len(bc.blocks) == 0 {
		return fmt.Errorf("empty blockchain")
	}

	// Verifica genesis e ogni blocco successivo
	prevHash := GenesisPrevHash
	for i := range bc.blocks {
		// Work on a copy: Satisfies refreshes the cached hash and the chain
		// must not be written under a read lock.
		block := bc.blocks[i]

		if block.PrevHash != prevHash {
			return fmt.Errorf("block %d: %w: expected %s, got %s", i, ErrBrokenLink, prevHash, block.PrevHash)
		}
		ok, err := block.Satisfies(bc.rule)
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		if !ok {
			return fmt.Errorf("block %d: %w", i, ErrConsensusViolation)
		}

		prevHash = block.Hash
	}

	bc.logger.Info("successfully validated chain", "size", len(bc.blocks))
	return nil
}

// GetLatest returns the most recently mined block.
// Returns an error if the blockchain is empty.
func (bc *Blockchain) GetLatest() (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if len(bc.blocks) == 0 {
		return Block{}, fmt.Errorf("blockchain is empty")
	}

	return bc.blocks[len(bc.blocks)-1], nil
}

// GetByIndex retrieves a block by its index in the chain. Returns an error
// if the index is out of range.
func (bc *Blockchain) GetByIndex(index int) (*Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if index < 0 || index >= len(bc.blocks) {
		return nil, fmt.Errorf("index out of range")
	}

	return &bc.blocks[index], nil
}

// Size returns the number of blocks in the chain.
func (bc *Blockchain) Size() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return len(bc.blocks)
}

// Pending returns a copy of the transactions queued for the next block.
func (bc *Blockchain) Pending() []Transaction {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	pending := make([]Transaction, len(bc.pending))
	copy(pending, bc.pending)
	return pending
}
