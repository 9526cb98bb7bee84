package ledger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/luca-patrignani/tokenchain/wallet"
)

// newTestWallet creates a wallet and fails the test on error.
func newTestWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	w, err := wallet.New()
	if err != nil {
		t.Fatalf("failed to create wallet: %v", err)
	}
	return w
}

// signedTransfer builds a transfer between the given parties and signs it
// with the sender's private key.
func signedTransfer(t *testing.T, from *wallet.Wallet, to wallet.Address, value float64) Transaction {
	t.Helper()
	tx := Transaction{
		Sender:    from.Address(),
		Recipient: to,
		Value:     value,
	}
	if err := tx.Sign(from.Private); err != nil {
		t.Fatalf("failed to sign transaction: %v", err)
	}
	return tx
}

// TestSignAndValidate verifies the basic lifecycle: a transaction signed with
// the sender's private key validates against the sender's address.
func TestSignAndValidate(t *testing.T) {
	sender := newTestWallet(t)
	recipient := newTestWallet(t)

	tx := Transaction{
		Sender:    sender.Address(),
		Recipient: recipient.Address(),
		Value:     0.5,
	}
	if err := tx.Sign(sender.Private); err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if len(tx.Signature) == 0 {
		t.Fatal("Sign should store a signature on the transaction")
	}
	if err := tx.Validate(); err != nil {
		t.Fatalf("a freshly signed transaction should validate, got %v", err)
	}
}

// TestValidateFailsIfTampered verifies that altering any signed field after
// signing breaks validation. The signature binds sender, recipient and value
// together, changing one of them must be detectable.
func TestValidateFailsIfTampered(t *testing.T) {
	sender := newTestWallet(t)
	recipient := newTestWallet(t)
	intruder := newTestWallet(t)

	tests := []struct {
		name   string
		tamper func(tx *Transaction)
	}{
		{"value", func(tx *Transaction) { tx.Value = 100.0 }},
		{"recipient", func(tx *Transaction) { tx.Recipient = intruder.Address() }},
		{"sender", func(tx *Transaction) { tx.Sender = intruder.Address() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := signedTransfer(t, sender, recipient.Address(), 0.5)
			tt.tamper(&tx)

			err := tx.Validate()
			if err == nil {
				t.Fatalf("expected validation to fail after tampering with %s, got nil", tt.name)
			}
			if !errors.Is(err, ErrInvalidSignature) {
				t.Fatalf("expected ErrInvalidSignature, got %v", err)
			}
		})
	}
}

// TestValidateFailsOnMissingSignature verifies that an unsigned non-reward
// transaction never validates.
func TestValidateFailsOnMissingSignature(t *testing.T) {
	sender := newTestWallet(t)
	recipient := newTestWallet(t)

	tx := Transaction{
		Sender:    sender.Address(),
		Recipient: recipient.Address(),
		Value:     0.5,
	}
	err := tx.Validate()
	if err == nil {
		t.Fatal("expected validation of an unsigned transaction to fail, got nil")
	}
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

// TestRewardTransactionIsExempt verifies that system-issued reward
// transactions validate without any signature: the "none" sender is a
// sentinel, not an account that could sign.
func TestRewardTransactionIsExempt(t *testing.T) {
	miner := newTestWallet(t)

	reward := NewReward(miner.Address(), RewardAmount)
	if !reward.IsReward() {
		t.Fatal("NewReward should build a reward transaction")
	}
	if len(reward.Signature) != 0 {
		t.Fatal("reward transactions should carry no signature")
	}
	if err := reward.Validate(); err != nil {
		t.Fatalf("reward transactions should always validate, got %v", err)
	}
}

// TestHeaderBytesDeterministic verifies that the signing encoding is stable:
// identical logical content yields byte-identical output, and any change to
// a covered field changes the bytes. Both signing and block hashing depend
// on this.
func TestHeaderBytesDeterministic(t *testing.T) {
	tx1 := Transaction{Sender: "aa", Recipient: "bb", Value: 0.5}
	tx2 := Transaction{Sender: "aa", Recipient: "bb", Value: 0.5}

	b1, err := tx1.HeaderBytes()
	if err != nil {
		t.Fatalf("HeaderBytes failed: %v", err)
	}
	b2, err := tx2.HeaderBytes()
	if err != nil {
		t.Fatalf("HeaderBytes failed: %v", err)
	}
	if !bytes.Equal(b1, b2) {
		t.Fatal("identical transactions should encode to identical header bytes")
	}

	tx2.Value = 0.6
	b3, err := tx2.HeaderBytes()
	if err != nil {
		t.Fatalf("HeaderBytes failed: %v", err)
	}
	if bytes.Equal(b1, b3) {
		t.Fatal("changing the value should change the header bytes")
	}
}

// TestHeaderBytesExcludeSignature verifies that signing a transaction does
// not alter its header bytes. The signature must never sign itself.
func TestHeaderBytesExcludeSignature(t *testing.T) {
	sender := newTestWallet(t)
	recipient := newTestWallet(t)

	tx := Transaction{
		Sender:    sender.Address(),
		Recipient: recipient.Address(),
		Value:     0.5,
	}
	before, err := tx.HeaderBytes()
	if err != nil {
		t.Fatalf("HeaderBytes failed: %v", err)
	}
	if err := tx.Sign(sender.Private); err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	after, err := tx.HeaderBytes()
	if err != nil {
		t.Fatalf("HeaderBytes failed: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatal("header bytes should not change when the signature is set")
	}
}
