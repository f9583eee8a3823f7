package round

import (
	"maps"
	"slices"

	"github.com/luca-patrignani/cards-against/domain/card"
	"github.com/luca-patrignani/cards-against/domain/player"
)

// Phase is the local step of the current round.
type Phase string

const (
	PickingCard      Phase = "picking_card"
	WaitingForOthers Phase = "waiting_for_others"
	PickingWinner    Phase = "picking_winner"
)

// Answer is a player's composed answer for the round.
type Answer struct {
	Sender  player.Player
	Content card.ComposedText
}

// Vote is one player's choice of round winner.
type Vote struct {
	Voter player.Player
	Votee player.Player
}

// Scores counts the rounds won by each player of the game.
type Scores map[player.Player]int

// Round is this device's view of the round being played.
type Round struct {
	// Number is the count of prompts played so far, starting at 1.
	Number int
	Prompt card.Card
	Hand   []card.Card
	// Placed holds the local responses put into the prompt's blanks.
	Placed  []card.Card
	Phase   Phase
	Answers []Answer
	Votes   []Vote
	Voted   bool

	// Decided is set once every seated player voted.
	Decided bool
	Winner  player.Player
	Tie     bool
	// Advancing is set once this device started dealing the next round.
	Advancing bool
}

// Record summarises a closed round.
type Record struct {
	Number  int
	Prompt  card.Card
	Winner  player.Player
	Answers []Answer
	Votes   []Vote
}

// State is everything the reducer needs to process the next input.
type State struct {
	Local player.Player
	// Peers are the connected remote players, sorted by name.
	Peers []player.Player
	// Seated are the players dealt into the current game, local included,
	// sorted by name.
	Seated  []player.Player
	Dealer  player.Player
	Started bool
	Ended   bool
	Round   Round
	Scores  Scores
	// Pending holds deliveries for rounds this device has not reached yet.
	Pending []Deliver
}

// NewState returns the state of a device before any game starts.
func NewState(local player.Player) State {
	return State{Local: local, Scores: Scores{}}
}

func (s State) clone() State {
	s.Peers = slices.Clone(s.Peers)
	s.Seated = slices.Clone(s.Seated)
	s.Scores = maps.Clone(s.Scores)
	if s.Scores == nil {
		s.Scores = Scores{}
	}
	s.Pending = slices.Clone(s.Pending)
	s.Round.Hand = slices.Clone(s.Round.Hand)
	s.Round.Placed = slices.Clone(s.Round.Placed)
	s.Round.Answers = slices.Clone(s.Round.Answers)
	s.Round.Votes = slices.Clone(s.Round.Votes)
	return s
}

// Players returns the seated players once a game started, and the local
// player with its connected peers before that.
func (s State) Players() []player.Player {
	if s.Started {
		return slices.Clone(s.Seated)
	}
	return player.Sorted(append([]player.Player{s.Local}, s.Peers...))
}

// Authority is the device that deals the next round and breaks ties: the
// lowest-sorting player still at the table.
func (s State) Authority() player.Player {
	players := s.Players()
	if len(players) == 0 {
		return s.Local
	}
	return players[0]
}

// IsAuthority reports whether the local device is the authority.
func (s State) IsAuthority() bool {
	return s.Authority() == s.Local
}

func (s State) seated(p player.Player) bool {
	_, ok := slices.BinarySearchFunc(s.Seated, p, player.Compare)
	return ok
}

// AnswerOf returns the answer p gave this round.
func (s State) AnswerOf(p player.Player) (Answer, bool) {
	i := slices.IndexFunc(s.Round.Answers, func(a Answer) bool { return a.Sender == p })
	if i < 0 {
		return Answer{}, false
	}
	return s.Round.Answers[i], true
}

// everyoneAnswered reports whether every seated remote player has an
// answer on file.
func (s State) everyoneAnswered() bool {
	for _, p := range s.Seated {
		if p == s.Local {
			continue
		}
		if _, ok := s.AnswerOf(p); !ok {
			return false
		}
	}
	return true
}

func (s State) everyoneVoted() bool {
	for _, p := range s.Seated {
		if !slices.ContainsFunc(s.Round.Votes, func(v Vote) bool { return v.Voter == p }) {
			return false
		}
	}
	return len(s.Seated) > 0
}

func insertSorted(players []player.Player, p player.Player) []player.Player {
	i, ok := slices.BinarySearchFunc(players, p, player.Compare)
	if ok {
		return players
	}
	return slices.Insert(players, i, p)
}

func removeSorted(players []player.Player, p player.Player) ([]player.Player, bool) {
	i, ok := slices.BinarySearchFunc(players, p, player.Compare)
	if !ok {
		return players, false
	}
	return slices.Delete(players, i, i+1), true
}
