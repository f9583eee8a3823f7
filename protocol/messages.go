package protocol

import (
	"fmt"

	"github.com/luca-patrignani/cards-against/domain/card"
	"github.com/luca-patrignani/cards-against/domain/player"
)

// Event names a message variant on the wire.
type Event string

const (
	EventStartGame    Event = "StartGame"
	EventAnswer       Event = "Answer"
	EventCancelAnswer Event = "CancelAnswer"
	EventVote         Event = "Vote"
	EventNextCard     Event = "NextCard"
	EventEndGame      Event = "EndGame"
)

// Events lists every event in the protocol.
var Events = []Event{EventStartGame, EventAnswer, EventCancelAnswer, EventVote, EventNextCard, EventEndGame}

// Message is implemented by the six message variants of this package and
// by nothing else.
type Message interface {
	Event() Event
	validate() error
}

// StartGame opens a new game session: the first prompt and the receiver's
// full hand.
type StartGame struct {
	Prompt card.Card
	Hand   []card.Card
}

// Answer carries the sender's composed answer for the current round.
type Answer struct {
	Answer card.ComposedText
}

// CancelAnswer withdraws the sender's answer.
type CancelAnswer struct{}

// Vote names the player the sender votes for.
type Vote struct {
	Votee player.Player
}

// NextCard closes the round: the winner, the next prompt and the cards
// that top up the receiver's hand.
type NextCard struct {
	Prompt card.Card
	Hand   []card.Card
	Winner player.Player
}

// EndGame ends the session on every device.
type EndGame struct{}

func (StartGame) Event() Event    { return EventStartGame }
func (Answer) Event() Event       { return EventAnswer }
func (CancelAnswer) Event() Event { return EventCancelAnswer }
func (Vote) Event() Event         { return EventVote }
func (NextCard) Event() Event     { return EventNextCard }
func (EndGame) Event() Event      { return EventEndGame }

func (m StartGame) validate() error {
	return validateDeal(m.Prompt, m.Hand)
}

func (m Answer) validate() error {
	if m.Answer.Text == "" {
		return fmt.Errorf("empty answer")
	}
	for _, s := range m.Answer.Spans {
		if !s.Within(len(m.Answer.Text)) {
			return fmt.Errorf("answer span %d+%d out of range", s.Start, s.Length)
		}
	}
	return nil
}

func (CancelAnswer) validate() error { return nil }

func (m Vote) validate() error {
	if m.Votee.Name == "" {
		return fmt.Errorf("vote without votee")
	}
	return nil
}

func (m NextCard) validate() error {
	if m.Winner.Name == "" {
		return fmt.Errorf("next card without winner")
	}
	return validateDeal(m.Prompt, m.Hand)
}

func (EndGame) validate() error { return nil }

func validateDeal(prompt card.Card, hand []card.Card) error {
	if prompt.Kind != card.Prompt {
		return fmt.Errorf("dealt prompt is a %s card", prompt.Kind)
	}
	for _, c := range hand {
		if c.Kind != card.Response {
			return fmt.Errorf("dealt hand contains a %s card", c.Kind)
		}
	}
	return nil
}
