// Package ledger keeps a tamper-evident history of the rounds played in a
// game.
//
// # Core Components
//
// Ledger: an append-only, hash-chained list of blocks, one per closed round,
// starting from a genesis block that names the game.
//
// Block: the record of a round (prompt, answers, votes and winner) linked to
// the previous block by its SHA-256 hash.
//
// # Usage
//
// Create a ledger when a game starts and append the record of each round as
// it closes. Verify walks the chain and reports the first broken link. The
// ledger lives as long as the game; nothing is written to disk.
package ledger
