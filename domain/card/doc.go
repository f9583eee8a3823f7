// Package card defines the cards of the game and the text players compose
// with them.
//
// # Core Types
//
// Card: an immutable value with content, kind (Prompt or Response) and the
// expansion it belongs to.
//
// ComposedText: a prompt with responses filled into its blanks, carrying the
// byte ranges of the inserted text.
//
// # Wire Format
//
// Card, sequences of Card and ComposedText expose symmetric Serialize and
// Deserialize functions backed by go.dedis.ch/protobuf.
package card
