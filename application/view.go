package application

import (
	"slices"

	"github.com/luca-patrignani/cards-against/domain/player"
	"github.com/luca-patrignani/cards-against/domain/round"
)

// View is a copy of the game as the local player sees it.
type View struct {
	Local   player.Player
	Peers   []player.Player
	Players []player.Player
	Dealer  player.Player
	Started bool
	Ended   bool
	Round   round.Round
	// Authority deals the next round and breaks ties.
	Authority player.Player
	// TieBreak is set while the local player has to choose the winner of a
	// tied round.
	TieBreak  bool
	Standings []round.Standing
	History   []round.Record
	GameID    string
}

// Playing reports whether a game is in progress.
func (v View) Playing() bool {
	return v.Started && !v.Ended
}

func (g *Game) buildView() View {
	s := g.state
	r := s.Round
	r.Hand = slices.Clone(r.Hand)
	r.Placed = slices.Clone(r.Placed)
	r.Answers = slices.Clone(r.Answers)
	r.Votes = slices.Clone(r.Votes)
	v := View{
		Local:     s.Local,
		Peers:     slices.Clone(s.Peers),
		Players:   s.Players(),
		Dealer:    s.Dealer,
		Started:   s.Started,
		Ended:     s.Ended,
		Round:     r,
		Authority: s.Authority(),
		TieBreak:  s.Started && !s.Ended && r.Tie && !r.Advancing && s.IsAuthority(),
		Standings: s.Scores.Standings(),
	}
	if g.ledger != nil {
		v.History = g.ledger.Records()
		v.GameID = g.ledger.Game()
	}
	return v
}

// publish refreshes the snapshot read by Snapshot.
func (g *Game) publish() {
	v := g.buildView()
	g.mu.Lock()
	g.view = v
	g.mu.Unlock()
}

// Snapshot returns the game as of the last input Run processed.
func (g *Game) Snapshot() View {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.view
}
