package ledger

import (
	"crypto/sha256"
	"encoding/hex"

	"go.dedis.ch/protobuf"

	"github.com/luca-patrignani/tokenchain/consensus"
)

// GenesisPrevHash is the sentinel previous hash of the genesis block, which
// has no predecessor to link to.
const GenesisPrevHash = "-"

// Block is an ordered batch of transactions plus the metadata linking it to
// the previous block and proving the work spent on it.
type Block struct {
	Index        uint64        `json:"index"`
	Timestamp    int64         `json:"timestamp"`
	PrevHash     string        `json:"prev_hash"`
	Transactions []Transaction `json:"transactions"`
	Nonce        uint64        `json:"nonce"`
	Hash         string        `json:"hash"`
}

// HeaderBytes returns the canonical encoding of the fields that uniquely
// identify the block and link it to its predecessor: index, timestamp,
// previous hash, the transactions in insertion order (signatures included)
// and the nonce. The stored hash is excluded, it is derived from these bytes.
func (b *Block) HeaderBytes() ([]byte, error) {
	type header struct {
		Index        uint64
		Timestamp    int64
		PrevHash     string
		Transactions []Transaction
		Nonce        uint64
	}
	return protobuf.Encode(&header{
		Index:        b.Index,
		Timestamp:    b.Timestamp,
		PrevHash:     b.PrevHash,
		Transactions: b.Transactions,
		Nonce:        b.Nonce,
	})
}

// ComputeHash hashes the block header with SHA-256, stores the lowercase hex
// digest on the block and returns it. It is a pure function of the current
// field values: mutate any of them and the next call yields a different
// hash, which is exactly how tampering gets detected.
func (b *Block) ComputeHash() (string, error) {
	hb, err := b.HeaderBytes()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(hb)
	b.Hash = hex.EncodeToString(sum[:])
	return b.Hash, nil
}

// Satisfies recomputes the block hash, refreshing the cached value, and
// reports whether it passes the consensus rule.
func (b *Block) Satisfies(rule consensus.Rule) (bool, error) {
	hash, err := b.ComputeHash()
	if err != nil {
		return false, err
	}
	return rule(hash), nil
}
