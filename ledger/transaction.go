package ledger

import (
	"fmt"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/protobuf"

	"github.com/luca-patrignani/tokenchain/wallet"
)

// RewardSender is the sentinel sender address of system-issued reward
// transactions. It is not a real account: no key pair decodes to it, so it
// can never spend and never needs a signature.
const RewardSender wallet.Address = "none"

// Transaction is a single transfer of value between two addresses. It is the
// unit the ledger moves: end-users sign transactions and submit them, the
// node bundles them into blocks.
type Transaction struct {
	Sender    wallet.Address `json:"sender"`
	Recipient wallet.Address `json:"recipient"`
	Value     float64        `json:"value"`
	Signature []byte         `json:"sig,omitempty"`
}

// NewReward builds the unsigned transaction crediting the miner of a block.
func NewReward(miner wallet.Address, amount float64) Transaction {
	return Transaction{
		Sender:    RewardSender,
		Recipient: miner,
		Value:     amount,
	}
}

// IsReward reports whether the transaction was issued by the node itself.
func (t Transaction) IsReward() bool {
	return t.Sender == RewardSender
}

// HeaderBytes returns the canonical encoding of the fields covered by the
// signature, everything but the signature itself. The encoding is
// deterministic: the same sender, recipient and value always serialize to
// byte-identical output, which both signing and block hashing rely on.
func (t *Transaction) HeaderBytes() ([]byte, error) {
	type header struct {
		Sender    string
		Recipient string
		Value     float64
	}
	return protobuf.Encode(&header{
		Sender:    string(t.Sender),
		Recipient: string(t.Recipient),
		Value:     t.Value,
	})
}

// Sign signs the transaction header with the sender's private key and stores
// the signature, then immediately re-validates as a sanity check. A failure
// of the underlying primitive is reported as ErrSigning; a failed self-check
// surfaces as ErrInvalidSignature and means the signature provider itself is
// broken.
func (t *Transaction) Sign(private kyber.Scalar) error {
	b, err := t.HeaderBytes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSigning, err)
	}
	sig, err := wallet.Sign(private, b)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSigning, err)
	}
	t.Signature = sig
	return t.Validate()
}

// Validate checks that the transaction carries a valid signature over its
// header bytes, verifiable with the sender address as the public key. Reward
// transactions are system-issued and exempt.
func (t *Transaction) Validate() error {
	if t.IsReward() {
		return nil
	}
	b, err := t.HeaderBytes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if err := wallet.Verify(t.Sender, b, t.Signature); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return nil
}
