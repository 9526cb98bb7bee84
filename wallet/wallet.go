package wallet

import (
	"encoding/hex"
	"fmt"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/sign/schnorr"
	"go.dedis.ch/kyber/v4/suites"
	"go.dedis.ch/kyber/v4/util/key"
)

var suite suites.Suite = suites.MustFind("Ed25519")

// Address identifies an account on the chain. It is the lowercase hex
// encoding of the marshalled public key point, so it doubles as the
// verification key for everything the account has signed.
type Address string

// Wallet holds a key pair. The Private scalar must never be shared, the
// Public point is what the rest of the system knows the owner by.
type Wallet struct {
	Private kyber.Scalar
	Public  kyber.Point

	address Address
}

// New generates a fresh key pair on the Ed25519 suite and derives its address.
func New() (*Wallet, error) {
	pair := key.NewKeyPair(suite)
	address, err := AddressOf(pair.Public)
	if err != nil {
		return nil, err
	}
	return &Wallet{
		Private: pair.Private,
		Public:  pair.Public,
		address: address,
	}, nil
}

// Address returns the address derived from the wallet's public key.
func (w *Wallet) Address() Address {
	return w.address
}

// AddressOf derives the address of the given public key.
func AddressOf(public kyber.Point) (Address, error) {
	b, err := public.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to marshal public key: %w", err)
	}
	return Address(hex.EncodeToString(b)), nil
}

// Point decodes the address back into the public key point it encodes.
func (a Address) Point() (kyber.Point, error) {
	b, err := hex.DecodeString(string(a))
	if err != nil {
		return nil, fmt.Errorf("malformed address %q: %w", a, err)
	}
	public := suite.Point()
	if err := public.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("address %q is not a valid public key: %w", a, err)
	}
	return public, nil
}

// Short returns a truncated form of the address for logs and terminal output.
func (a Address) Short() string {
	if len(a) <= 8 {
		return string(a)
	}
	return string(a[:8])
}

// Sign produces a Schnorr signature over msg with the given private key.
func Sign(private kyber.Scalar, msg []byte) ([]byte, error) {
	sig, err := schnorr.Sign(suite, private, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to sign payload: %w", err)
	}
	return sig, nil
}

// Verify checks that sig is a valid signature over msg made by the owner of
// addr. A missing, forged or mismatched signature is reported as an error.
func Verify(addr Address, msg, sig []byte) error {
	public, err := addr.Point()
	if err != nil {
		return err
	}
	if err := schnorr.Verify(suite, public, msg, sig); err != nil {
		return fmt.Errorf("signature verification failed for %q: %w", addr.Short(), err)
	}
	return nil
}
