package round

import (
	"github.com/luca-patrignani/cards-against/domain/player"
	"github.com/luca-patrignani/cards-against/protocol"
)

// Input is anything that can change a State: local actions, messages from
// peers and connection changes.
type Input interface {
	isInput()
}

// Place puts the hand card at Index into the next blank of the prompt.
type Place struct{ Index int }

// Retract takes back the last placed card.
type Retract struct{}

// CastVote is the local player's vote.
type CastVote struct{ Votee player.Player }

// ResolveTie is the authority's choice of winner after a tie.
type ResolveTie struct{ Winner player.Player }

// Quit ends the game for everyone.
type Quit struct{}

// Deliver is a message received from From while it was in round Round.
// Locally dealt StartGame and NextCard messages are delivered with From
// set to the local player.
type Deliver struct {
	From    player.Player
	Round   int
	Message protocol.Message
}

// Connect and Disconnect report changes of the peer mesh.
type Connect struct{ Player player.Player }

type Disconnect struct{ Player player.Player }

func (Place) isInput()      {}
func (Retract) isInput()    {}
func (CastVote) isInput()   {}
func (ResolveTie) isInput() {}
func (Quit) isInput()       {}
func (Deliver) isInput()    {}
func (Connect) isInput()    {}
func (Disconnect) isInput() {}

// Effect is work the reducer asks its caller to carry out.
type Effect interface {
	isEffect()
}

// Send broadcasts Message to every connected peer, tagged with Round.
type Send struct {
	Round   int
	Message protocol.Message
}

// Began reports a new game dealt by Dealer.
type Began struct{ Dealer player.Player }

// Reveal reports that every answer is in and voting is open.
type Reveal struct{}

// Decided reports the tally of a round on every device.
type Decided struct {
	Winner player.Player
	Tie    bool
}

// Advance asks the local device to deal the next round with Winner.
type Advance struct{ Winner player.Player }

// TieBreak asks the local player to choose a winner among Candidates.
type TieBreak struct{ Candidates []player.Player }

// Closed carries the record of a round that just ended.
type Closed struct{ Record Record }

// Ended reports the end of the game.
type Ended struct{}

// Dropped reports an inbound message that was discarded.
type Dropped struct {
	From   player.Player
	Event  protocol.Event
	Round  int
	Reason string
}

func (Send) isEffect()     {}
func (Began) isEffect()    {}
func (Reveal) isEffect()   {}
func (Decided) isEffect()  {}
func (Advance) isEffect()  {}
func (TieBreak) isEffect() {}
func (Closed) isEffect()   {}
func (Ended) isEffect()    {}
func (Dropped) isEffect()  {}
