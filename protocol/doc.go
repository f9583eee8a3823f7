// Package protocol defines the messages devices exchange during a game and
// the way they are framed and routed.
//
// # Core Components
//
// Message: a closed set of typed variants, one per event (StartGame, Answer,
// CancelAnswer, Vote, NextCard, EndGame). Consumers switch on the concrete
// type, so each case knows its payload statically.
//
// Encode/Decode: a frame carries the event name, the sender's round number
// and the variant body, all encoded with go.dedis.ch/protobuf. Decoding
// validates the body before handing it out.
//
// Router: one handler per event name. Registering nil removes the handler;
// unknown events are ignored and malformed frames are reported to the caller.
package protocol
