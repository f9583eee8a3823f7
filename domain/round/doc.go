// Package round implements the round state machine every device runs on its
// own, without a leader.
//
// # Core Types
//
// State: the local device's view of the game: seated players, scores and
// the current Round (prompt, hand, phase, answers, votes).
//
// Input: local actions (Place, Retract, CastVote, ResolveTie, Quit), peer
// messages (Deliver) and mesh changes (Connect, Disconnect).
//
// Effect: what the caller must do after a transition: broadcast a message,
// deal the next round, ask the local player to break a tie, and so on.
//
// # Round Flow
//
// A round moves PickingCard → WaitingForOthers → PickingWinner and back to
// PickingCard when a NextCard message arrives. Transitions depend on counts
// (everyone answered, everyone voted), never on arrival order across peers.
//
// Reduce is a pure function of (State, Input): devices that see the same
// messages reach the same state. Messages tagged with a future round are
// buffered until this device gets there; messages from past rounds are
// dropped.
//
// # Authority
//
// The lowest-sorting seated player deals every next round and is the only
// one asked to break ties. If it leaves, the next one in order takes over.
package round
