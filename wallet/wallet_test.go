package wallet

import (
	"testing"
)

// TestNewWalletDerivesAddress verifies that a freshly generated wallet carries
// a usable key pair and a non-empty hex address of the expected length for the
// Ed25519 suite.
func TestNewWalletDerivesAddress(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("failed to create wallet: %v", err)
	}
	if w.Private == nil || w.Public == nil {
		t.Fatal("wallet should hold both key halves")
	}
	if len(w.Address()) != 64 {
		t.Fatalf("expected a 64 character address, got %d (%s)", len(w.Address()), w.Address())
	}
}

// TestNewWalletsAreDistinct verifies that two generated wallets never share an
// address. Address collisions would let one account spend another's tokens.
func TestNewWalletsAreDistinct(t *testing.T) {
	w1, err := New()
	if err != nil {
		t.Fatalf("failed to create wallet 1: %v", err)
	}
	w2, err := New()
	if err != nil {
		t.Fatalf("failed to create wallet 2: %v", err)
	}
	if w1.Address() == w2.Address() {
		t.Fatal("two wallets should not share the same address")
	}
}

// TestSignAndVerify verifies the basic signing round trip: a signature made
// with a wallet's private key must verify against the wallet's address.
func TestSignAndVerify(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("failed to create wallet: %v", err)
	}
	msg := []byte("transfer 0.5 tokens")

	sig, err := Sign(w.Private, msg)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if err := Verify(w.Address(), msg, sig); err != nil {
		t.Fatalf("Verify failed on a genuine signature: %v", err)
	}
}

// TestVerifyFailsOnTamperedMessage verifies that changing even one byte of the
// signed payload invalidates the signature.
func TestVerifyFailsOnTamperedMessage(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("failed to create wallet: %v", err)
	}
	msg := []byte("transfer 0.5 tokens")
	sig, err := Sign(w.Private, msg)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	msg[0] ^= 0xff
	if err := Verify(w.Address(), msg, sig); err == nil {
		t.Fatal("expected verification to fail on a tampered message, got nil")
	}
}

// TestVerifyFailsWithWrongKey verifies that a signature does not verify
// against any address other than the signer's.
func TestVerifyFailsWithWrongKey(t *testing.T) {
	signer, err := New()
	if err != nil {
		t.Fatalf("failed to create signer wallet: %v", err)
	}
	other, err := New()
	if err != nil {
		t.Fatalf("failed to create other wallet: %v", err)
	}
	msg := []byte("transfer 0.5 tokens")
	sig, err := Sign(signer.Private, msg)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if err := Verify(other.Address(), msg, sig); err == nil {
		t.Fatal("expected verification to fail with the wrong public key, got nil")
	}
}

// TestVerifyFailsOnMissingSignature verifies that an empty signature is
// rejected instead of silently passing.
func TestVerifyFailsOnMissingSignature(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("failed to create wallet: %v", err)
	}
	if err := Verify(w.Address(), []byte("payload"), nil); err == nil {
		t.Fatal("expected verification to fail on a missing signature, got nil")
	}
}

// TestVerifyFailsOnMalformedAddress verifies that addresses which are not
// valid hex or do not decode to a point on the curve are rejected.
func TestVerifyFailsOnMalformedAddress(t *testing.T) {
	if err := Verify("not-hex", []byte("payload"), []byte("sig")); err == nil {
		t.Fatal("expected verification to fail on a non-hex address, got nil")
	}
	if err := Verify("abcd", []byte("payload"), []byte("sig")); err == nil {
		t.Fatal("expected verification to fail on a short address, got nil")
	}
}

// TestAddressPointRoundTrip verifies that an address decodes back to the
// public key point it was derived from.
func TestAddressPointRoundTrip(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("failed to create wallet: %v", err)
	}
	p, err := w.Address().Point()
	if err != nil {
		t.Fatalf("failed to decode address: %v", err)
	}
	if !p.Equal(w.Public) {
		t.Fatal("decoded point should equal the original public key")
	}
}

// TestAddressShort verifies the truncated display form of an address.
func TestAddressShort(t *testing.T) {
	if got := Address("abcdef0123456789").Short(); got != "abcdef01" {
		t.Fatalf("expected short form 'abcdef01', got %q", got)
	}
	if got := Address("ab").Short(); got != "ab" {
		t.Fatalf("expected short addresses to stay whole, got %q", got)
	}
}
