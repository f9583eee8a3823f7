package application

import (
	"errors"

	"github.com/luca-patrignani/cards-against/domain/card"
	"github.com/luca-patrignani/cards-against/domain/player"
	"github.com/luca-patrignani/cards-against/domain/round"
	"github.com/luca-patrignani/cards-against/protocol"
)

// start deals one prompt to the table and a full hand to every player,
// each peer getting its own cards.
func (g *Game) start() error {
	if g.state.Started && !g.state.Ended {
		return round.ErrAlreadyStarted
	}
	if len(g.state.Peers) == 0 {
		return ErrNoPeers
	}
	prompt := g.deck.Draw(card.Prompt, 1)[0]
	var errs []error
	for _, p := range g.state.Peers {
		deal := protocol.StartGame{Prompt: prompt, Hand: g.deck.Draw(card.Response, g.settings.handSize)}
		if err := g.send(p, 0, deal); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		g.logger.Warn("deal incomplete", "error", err)
	}
	return g.input(round.Deliver{
		From:    g.local,
		Message: protocol.StartGame{Prompt: prompt, Hand: g.deck.Draw(card.Response, g.settings.handSize)},
	})
}

// advance closes the current round with winner and deals the next one.
// Every seated peer spent as many cards as the closing prompt has blanks
// and gets that many back; the local hand is topped up to the hand size.
func (g *Game) advance(winner player.Player) error {
	s := g.state
	number := s.Round.Number
	prompt := g.deck.Draw(card.Prompt, 1)[0]
	spent := s.Round.Prompt.Pick()
	var errs []error
	for _, p := range s.Seated {
		if p == g.local {
			continue
		}
		next := protocol.NextCard{Prompt: prompt, Hand: g.deck.Draw(card.Response, spent), Winner: winner}
		if err := g.send(p, number, next); err != nil {
			errs = append(errs, err)
		}
	}
	topUp := max(g.settings.handSize-len(s.Round.Hand), 0)
	if err := g.input(round.Deliver{
		From:    g.local,
		Round:   number,
		Message: protocol.NextCard{Prompt: prompt, Hand: g.deck.Draw(card.Response, topUp), Winner: winner},
	}); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
