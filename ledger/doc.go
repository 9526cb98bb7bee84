// Package ledger implements a single-node token ledger secured by
// Proof-of-Work. Signed value transfers are collected in a pending pool,
// bundled into hash-linked blocks and appended to an immutable chain once a
// satisfying nonce has been mined.
//
// # Core Components
//
// Blockchain: The node itself. It owns the chain, the pending transaction
// pool and the consensus rule, and exposes the submit, mine, balance and
// verify operations.
//
// Transaction: A signed transfer of value between two addresses. Reward
// transactions are issued by the node when a block is mined and carry no
// signature.
//
// Block: An ordered batch of transactions plus the linkage and Proof-of-Work
// metadata that chains it to its predecessor.
//
// # Security Properties
//
// The chain provides:
//   - Immutability: rewriting a mined block requires redoing its proof of work
//   - Verifiability: anyone can replay the chain and check every link
//   - Auditability: balances are always derived from the full history
//   - Tamper detection: any modification breaks the hash chain
//
// # Usage
//
// Create a node with New, which mines the genesis block. Submit signed
// transactions, call Mine to bundle them into the next block, and call
// Verify at any time to ensure the chain remains intact. Balances are never
// stored; Balance replays the whole chain on every call so the answer can
// never drift from what the blocks actually say.
package ledger
