// Package application runs a game of cards on one device.
//
// # Core Components
//
// Game: owns the round state, the session deck and the round history. A
// single goroutine (Run) feeds every input through the round reducer and
// carries out the effects it returns.
//
// Transport: the peer mesh seen from the game. Messages are opaque byte
// slices; connection changes arrive as callbacks.
//
// # Concurrency
//
// Transport callbacks and player actions never touch the state directly.
// They post onto channels read by Run, so the state needs no lock. Player
// actions wait for Run to apply them and return the reducer's verdict.
// Snapshot and Notices are the read side for user interfaces.
package application
