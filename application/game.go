package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/luca-patrignani/cards-against/domain/card"
	"github.com/luca-patrignani/cards-against/domain/deck"
	"github.com/luca-patrignani/cards-against/domain/player"
	"github.com/luca-patrignani/cards-against/domain/round"
	"github.com/luca-patrignani/cards-against/ledger"
	"github.com/luca-patrignani/cards-against/protocol"
)

const (
	inboxSize   = 64
	noticesSize = 32
)

type command struct {
	run   func() error
	reply chan error
}

// Game is one device's seat at the table.
type Game struct {
	local     player.Player
	transport Transport
	router    *protocol.Router
	deck      *deck.Deck
	settings  settings
	logger    *slog.Logger

	// Owned by Run.
	state  round.State
	ledger *ledger.Ledger

	inbox    chan round.Input
	commands chan command

	// Peer changes bypass inbox: transports may report them from inside
	// Broadcast or Send, on the Run goroutine.
	membersMu sync.Mutex
	members   []round.Input
	changed   chan struct{}

	notices  chan round.Effect
	done     chan struct{}
	stopOnce sync.Once

	mu   sync.RWMutex
	view View
}

// New seats local at a table reached through transport, dealing from
// cards. It registers its callbacks on transport right away; inputs are
// queued until Run starts.
func New(local player.Player, cards []card.Card, transport Transport, opts ...option) (*Game, error) {
	s := defaultSettings()
	for _, opt := range opts {
		s = opt(s)
	}
	if s.handSize < 1 {
		return nil, fmt.Errorf("invalid hand size %d", s.handSize)
	}
	prompts, responses := card.Partition(cards)
	if len(prompts) == 0 {
		return nil, ErrNoPrompts
	}
	if len(responses) < s.handSize {
		return nil, fmt.Errorf("%w: %d < %d", ErrNotEnoughResponses, len(responses), s.handSize)
	}
	var deckOpts []deck.Option
	if s.intn != nil {
		deckOpts = append(deckOpts, deck.WithIntn(s.intn))
	}
	g := &Game{
		local:     local,
		transport: transport,
		router:    protocol.NewRouter(),
		deck:      deck.New(cards, deckOpts...),
		settings:  s,
		logger:    s.logger.With("player", local.Name),
		state:     round.NewState(local),
		inbox:     make(chan round.Input, inboxSize),
		commands:  make(chan command),
		changed:   make(chan struct{}, 1),
		notices:   make(chan round.Effect, noticesSize),
		done:      make(chan struct{}),
	}
	for _, event := range protocol.Events {
		g.router.Handle(event, g.receive)
	}
	transport.OnPeerConnected(func(p player.Player) {
		g.member(round.Connect{Player: p})
	})
	transport.OnPeerDisconnected(func(p player.Player) {
		g.member(round.Disconnect{Player: p})
	})
	transport.OnMessage(func(from player.Player, data []byte) {
		if err := g.router.Dispatch(from, data); err != nil {
			g.logger.Warn("discarding message", "from", from.Name, "error", err)
		}
	})
	g.publish()
	return g, nil
}

// Local returns the player this device plays as.
func (g *Game) Local() player.Player {
	return g.local
}

// Notices reports what happened at the table: round reveals and decisions,
// games starting and ending. Notices are dropped when nobody reads them.
func (g *Game) Notices() <-chan round.Effect {
	return g.notices
}

// Run processes inputs until ctx is done. It must be called exactly once.
func (g *Game) Run(ctx context.Context) error {
	defer g.stopOnce.Do(func() { close(g.done) })
	g.logger.Debug("game loop started")
	for {
		select {
		case <-ctx.Done():
			g.logger.Debug("game loop stopped")
			return ctx.Err()
		case <-g.changed:
			g.applyMembers()
		case in := <-g.inbox:
			g.applyMembers()
			g.apply(in)
		case cmd := <-g.commands:
			g.applyMembers()
			cmd.reply <- cmd.run()
		}
	}
}

// Start deals a new game to every connected peer.
func (g *Game) Start(ctx context.Context) error {
	return g.do(ctx, g.start)
}

// Place puts the card at index of the hand into the next blank of the
// prompt.
func (g *Game) Place(ctx context.Context, index int) error {
	return g.do(ctx, func() error {
		return g.input(round.Place{Index: index})
	})
}

// Retract takes back the last placed card.
func (g *Game) Retract(ctx context.Context) error {
	return g.do(ctx, func() error {
		return g.input(round.Retract{})
	})
}

// Vote picks the answer of votee as the best of the round.
func (g *Game) Vote(ctx context.Context, votee player.Player) error {
	return g.do(ctx, func() error {
		return g.input(round.CastVote{Votee: votee})
	})
}

// ResolveTie chooses the winner of a tied round.
func (g *Game) ResolveTie(ctx context.Context, winner player.Player) error {
	return g.do(ctx, func() error {
		return g.input(round.ResolveTie{Winner: winner})
	})
}

// Quit ends the game for everyone.
func (g *Game) Quit(ctx context.Context) error {
	return g.do(ctx, func() error {
		return g.input(round.Quit{})
	})
}

// do runs fn on the Run goroutine and waits for its result.
func (g *Game) do(ctx context.Context, fn func() error) error {
	cmd := command{run: fn, reply: make(chan error, 1)}
	select {
	case g.commands <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-g.done:
		return ErrStopped
	}
	select {
	case err := <-cmd.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-g.done:
		return ErrStopped
	}
}

// post queues an input from the transport.
func (g *Game) post(in round.Input) {
	select {
	case g.inbox <- in:
	case <-g.done:
	}
}

// member queues a peer change without ever blocking.
func (g *Game) member(in round.Input) {
	g.membersMu.Lock()
	g.members = append(g.members, in)
	g.membersMu.Unlock()
	select {
	case g.changed <- struct{}{}:
	default:
	}
}

// applyMembers feeds the queued peer changes to the reducer. Changes are
// applied before any later input so a peer is seated before its messages.
func (g *Game) applyMembers() {
	for {
		g.membersMu.Lock()
		members := g.members
		g.members = nil
		g.membersMu.Unlock()
		if len(members) == 0 {
			return
		}
		for _, in := range members {
			g.apply(in)
		}
	}
}

func (g *Game) apply(in round.Input) {
	if err := g.input(in); err != nil {
		g.logger.Warn("input rejected", "input", fmt.Sprintf("%T", in), "error", err)
	}
}

func (g *Game) receive(from player.Player, env protocol.Envelope) {
	g.post(round.Deliver{From: from, Round: env.Round, Message: env.Message})
}

// input feeds in through the reducer and performs the resulting effects.
func (g *Game) input(in round.Input) error {
	s, fx, err := round.Reduce(g.state, in)
	if err != nil {
		return err
	}
	g.state = s
	var errs []error
	for _, e := range fx {
		if err := g.perform(e); err != nil {
			errs = append(errs, err)
		}
	}
	g.publish()
	if len(errs) > 0 {
		g.logger.Error("effect failed", "error", errors.Join(errs...))
	}
	return nil
}

func (g *Game) perform(e round.Effect) error {
	switch e := e.(type) {
	case round.Send:
		return g.broadcast(e.Round, e.Message)
	case round.Began:
		g.ledger = ledger.New(g.settings.newID())
		g.logger.Info("game started", "dealer", e.Dealer.Name, "game", g.ledger.Game(), "players", len(g.state.Seated))
	case round.Advance:
		if err := g.advance(e.Winner); err != nil {
			return fmt.Errorf("deal next round: %w", err)
		}
	case round.Closed:
		if g.ledger == nil {
			return nil
		}
		if err := g.ledger.Append(e.Record); err != nil {
			return fmt.Errorf("record round %d: %w", e.Record.Number, err)
		}
		g.logger.Info("round closed", "round", e.Record.Number, "winner", e.Record.Winner.Name)
	case round.Decided:
		g.logger.Debug("round decided", "winner", e.Winner.Name, "tie", e.Tie)
	case round.Ended:
		g.logger.Info("game ended")
	case round.Dropped:
		g.logger.Debug("message dropped", "from", e.From.Name, "event", e.Event, "round", e.Round, "reason", e.Reason)
		return nil
	}
	g.notify(e)
	return nil
}

func (g *Game) notify(e round.Effect) {
	switch e.(type) {
	case round.Send, round.Advance:
		return
	}
	select {
	case g.notices <- e:
	default:
		g.logger.Debug("notice dropped", "notice", fmt.Sprintf("%T", e))
	}
}

func (g *Game) broadcast(number int, m protocol.Message) error {
	data, err := protocol.Encode(number, m)
	if err != nil {
		return err
	}
	if err := g.transport.Broadcast(data); err != nil {
		return fmt.Errorf("broadcast %s: %w", m.Event(), err)
	}
	return nil
}

func (g *Game) send(to player.Player, number int, m protocol.Message) error {
	data, err := protocol.Encode(number, m)
	if err != nil {
		return err
	}
	if err := g.transport.Send(to, data); err != nil {
		return fmt.Errorf("send %s to %s: %w", m.Event(), to.Name, err)
	}
	return nil
}
