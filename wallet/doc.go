// Package wallet provides the key-pair identities used by the token ledger.
// An account is identified by its address, the hex encoding of its public
// key, and proves ownership of outgoing transfers with Schnorr signatures
// over the Ed25519 group.
//
// # Core Components
//
// Wallet: A freshly generated private scalar and public point pair together
// with the derived address.
//
// Address: The public identity of an account on the chain. Addresses are
// self-contained, the public key can always be decoded back from them.
//
// Sign and Verify: The signing primitives the ledger uses to bind a
// transaction to its sender. The private key never leaves the wallet owner,
// everything else on the chain only ever sees addresses and signatures.
package wallet
