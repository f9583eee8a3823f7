package round

import (
	"slices"

	"github.com/luca-patrignani/cards-against/domain/card"
	"github.com/luca-patrignani/cards-against/domain/player"
	"github.com/luca-patrignani/cards-against/protocol"
)

// maxPending bounds the deliveries buffered for future rounds.
const maxPending = 256

// step accumulates the effects of one Reduce call on a private copy of
// the state.
type step struct {
	s  State
	fx []Effect
}

func (st *step) emit(fx ...Effect) {
	st.fx = append(st.fx, fx...)
}

// Reduce applies in to s. It never mutates s: the new state is returned
// together with the effects the caller must carry out, in order. Local
// actions that break the rules return an Error and leave the state as it
// was. Inbound messages never fail; discarded ones show up as Dropped.
func Reduce(s State, in Input) (State, []Effect, error) {
	st := &step{s: s.clone()}
	var err error
	switch in := in.(type) {
	case Place:
		err = st.place(in.Index)
	case Retract:
		err = st.retract()
	case CastVote:
		err = st.castVote(in.Votee)
	case ResolveTie:
		err = st.resolveTie(in.Winner)
	case Quit:
		err = st.quit()
	case Deliver:
		started, number := st.s.Started, st.s.Round.Number
		st.deliver(in)
		if st.s.Started != started || st.s.Round.Number != number {
			st.replay()
		}
	case Connect:
		st.connect(in.Player)
	case Disconnect:
		st.disconnect(in.Player)
	}
	if err != nil {
		return s, nil, err
	}
	return st.s, st.fx, nil
}

func (st *step) playing() error {
	if !st.s.Started || st.s.Ended {
		return ErrNotStarted
	}
	return nil
}

func (st *step) place(i int) error {
	if err := st.playing(); err != nil {
		return err
	}
	r := &st.s.Round
	if r.Phase != PickingCard {
		return ErrInvalidPhase
	}
	if i < 0 || i >= len(r.Hand) {
		return ErrInvalidCard
	}
	r.Placed = append(r.Placed, r.Hand[i])
	r.Hand = slices.Delete(r.Hand, i, i+1)
	if len(r.Placed) < r.Prompt.Pick() {
		return nil
	}
	text, err := card.Compose(r.Prompt, r.Placed)
	if err != nil {
		return err
	}
	st.setAnswer(Answer{Sender: st.s.Local, Content: text})
	r.Phase = WaitingForOthers
	st.emit(Send{Round: r.Number, Message: protocol.Answer{Answer: text}})
	st.checkAnswers()
	return nil
}

func (st *step) retract() error {
	if err := st.playing(); err != nil {
		return err
	}
	r := &st.s.Round
	if r.Phase == PickingWinner {
		return ErrInvalidPhase
	}
	if len(r.Placed) == 0 {
		return ErrNothingToRetract
	}
	last := r.Placed[len(r.Placed)-1]
	r.Placed = r.Placed[:len(r.Placed)-1]
	r.Hand = append(r.Hand, last)
	if r.Phase == WaitingForOthers {
		st.removeAnswer(st.s.Local)
		r.Phase = PickingCard
	}
	st.emit(Send{Round: r.Number, Message: protocol.CancelAnswer{}})
	return nil
}

func (st *step) castVote(votee player.Player) error {
	if err := st.playing(); err != nil {
		return err
	}
	r := &st.s.Round
	if r.Phase != PickingWinner {
		return ErrInvalidPhase
	}
	if r.Voted {
		return ErrAlreadyVoted
	}
	if !st.s.seated(votee) {
		return ErrUnknownPlayer
	}
	st.setVote(Vote{Voter: st.s.Local, Votee: votee})
	r.Voted = true
	st.emit(Send{Round: r.Number, Message: protocol.Vote{Votee: votee}})
	st.checkVotes()
	return nil
}

func (st *step) resolveTie(winner player.Player) error {
	if err := st.playing(); err != nil {
		return err
	}
	r := &st.s.Round
	if !r.Tie || r.Advancing {
		return ErrNoTie
	}
	if !st.s.IsAuthority() {
		return ErrNotAuthority
	}
	if !st.s.seated(winner) {
		return ErrUnknownPlayer
	}
	r.Tie = false
	r.Winner = winner
	r.Advancing = true
	st.emit(Advance{Winner: winner})
	return nil
}

func (st *step) quit() error {
	if err := st.playing(); err != nil {
		return err
	}
	st.s.Ended = true
	st.discardPending("game over")
	st.emit(Send{Round: st.s.Round.Number, Message: protocol.EndGame{}}, Ended{})
	return nil
}

func (st *step) deliver(d Deliver) {
	s := &st.s
	switch m := d.Message.(type) {
	case protocol.StartGame:
		st.start(d.From, m)
		return
	case protocol.EndGame:
		if s.Started && !s.Ended {
			s.Ended = true
			st.discardPending("game over")
			st.emit(Ended{})
		}
		return
	}
	switch {
	case s.Ended:
		st.drop(d, "game over")
	case !s.Started || d.Round > s.Round.Number:
		st.buffer(d)
	case d.Round < s.Round.Number:
		st.drop(d, "stale round")
	case d.From != s.Local && !s.seated(d.From):
		st.drop(d, "sender not seated")
	default:
		st.apply(d)
	}
}

func (st *step) apply(d Deliver) {
	local := d.From == st.s.Local
	switch m := d.Message.(type) {
	case protocol.NextCard:
		st.nextCard(m)
	case protocol.Answer:
		if local {
			st.drop(d, "local answer delivered as message")
			return
		}
		st.setAnswer(Answer{Sender: d.From, Content: m.Answer})
		st.checkAnswers()
	case protocol.CancelAnswer:
		st.removeAnswer(d.From)
	case protocol.Vote:
		if local {
			st.drop(d, "local vote delivered as message")
			return
		}
		st.setVote(Vote{Voter: d.From, Votee: m.Votee})
		st.checkVotes()
	}
}

// start opens a new game. While the first round of a game is still open,
// a deal from a lower-sorting dealer replaces the current one so that
// simultaneous starts settle on the same deal everywhere.
func (st *step) start(from player.Player, m protocol.StartGame) {
	s := &st.s
	if s.Started && !s.Ended {
		if s.Round.Number != 1 || s.Round.Decided || player.Compare(from, s.Dealer) >= 0 {
			st.drop(Deliver{From: from, Message: m}, "game already dealt by "+s.Dealer.Name)
			return
		}
	}
	if s.Started {
		st.discardPending("previous game")
	}
	s.Seated = player.Sorted(append([]player.Player{s.Local}, s.Peers...))
	s.Dealer = from
	s.Started = true
	s.Ended = false
	s.Scores = make(Scores, len(s.Seated))
	for _, p := range s.Seated {
		s.Scores[p] = 0
	}
	s.Round = Round{
		Number: 1,
		Prompt: m.Prompt,
		Hand:   slices.Clone(m.Hand),
		Phase:  PickingCard,
	}
	st.emit(Began{Dealer: from})
}

func (st *step) nextCard(m protocol.NextCard) {
	s := &st.s
	r := s.Round
	s.Scores[m.Winner]++
	st.emit(Closed{Record: Record{
		Number:  r.Number,
		Prompt:  r.Prompt,
		Winner:  m.Winner,
		Answers: r.Answers,
		Votes:   r.Votes,
	}})
	hand := r.Hand
	if r.Phase == PickingCard {
		hand = append(hand, r.Placed...)
	}
	s.Round = Round{
		Number: r.Number + 1,
		Prompt: m.Prompt,
		Hand:   append(hand, m.Hand...),
		Phase:  PickingCard,
	}
}

func (st *step) checkAnswers() {
	r := &st.s.Round
	if r.Phase == WaitingForOthers && st.s.everyoneAnswered() {
		r.Phase = PickingWinner
		st.emit(Reveal{})
	}
}

func (st *step) checkVotes() {
	r := &st.s.Round
	if r.Decided || !st.s.everyoneVoted() {
		return
	}
	winner, ok := Tally(r.Votes)
	r.Decided = true
	r.Winner = winner
	r.Tie = !ok
	st.emit(Decided{Winner: winner, Tie: !ok})
	st.claim()
}

// claim makes the authority act on a decided round.
func (st *step) claim() {
	r := &st.s.Round
	if !r.Decided || r.Advancing || !st.s.IsAuthority() {
		return
	}
	if r.Tie {
		st.emit(TieBreak{Candidates: st.s.Players()})
		return
	}
	r.Advancing = true
	st.emit(Advance{Winner: r.Winner})
}

func (st *step) connect(p player.Player) {
	if p == st.s.Local {
		return
	}
	st.s.Peers = insertSorted(st.s.Peers, p)
}

// disconnect removes p from the counts of the round. If p was the
// authority of a decided round, the next authority takes over.
func (st *step) disconnect(p player.Player) {
	s := &st.s
	wasAuthority := s.IsAuthority()
	s.Peers, _ = removeSorted(s.Peers, p)
	var seated bool
	s.Seated, seated = removeSorted(s.Seated, p)
	if !s.Started || s.Ended || !seated {
		return
	}
	decided := s.Round.Decided
	st.removeAnswer(p)
	st.removeVote(p)
	st.checkAnswers()
	st.checkVotes()
	if decided && !wasAuthority && s.IsAuthority() {
		st.claim()
	}
}

func (st *step) buffer(d Deliver) {
	if len(st.s.Pending) >= maxPending {
		st.drop(st.s.Pending[0], "pending buffer full")
		st.s.Pending = slices.Delete(st.s.Pending, 0, 1)
	}
	st.s.Pending = append(st.s.Pending, d)
}

// discardPending drops every buffered delivery.
func (st *step) discardPending(reason string) {
	for _, d := range st.s.Pending {
		st.drop(d, reason)
	}
	st.s.Pending = nil
}

// replay delivers buffered messages that became current, until the round
// stops moving.
func (st *step) replay() {
	for {
		started, number := st.s.Started, st.s.Round.Number
		pending := st.s.Pending
		st.s.Pending = nil
		for _, d := range pending {
			st.deliver(d)
		}
		if st.s.Started == started && st.s.Round.Number == number {
			return
		}
	}
}

func (st *step) drop(d Deliver, reason string) {
	var event protocol.Event
	if d.Message != nil {
		event = d.Message.Event()
	}
	st.emit(Dropped{From: d.From, Event: event, Round: d.Round, Reason: reason})
}

func (st *step) setAnswer(a Answer) {
	r := &st.s.Round
	if i := slices.IndexFunc(r.Answers, func(x Answer) bool { return x.Sender == a.Sender }); i >= 0 {
		r.Answers[i] = a
		return
	}
	r.Answers = append(r.Answers, a)
}

func (st *step) removeAnswer(p player.Player) {
	r := &st.s.Round
	r.Answers = slices.DeleteFunc(r.Answers, func(a Answer) bool { return a.Sender == p })
}

// setVote records v, replacing an earlier vote from the same voter.
func (st *step) setVote(v Vote) {
	r := &st.s.Round
	if i := slices.IndexFunc(r.Votes, func(x Vote) bool { return x.Voter == v.Voter }); i >= 0 {
		r.Votes[i] = v
		return
	}
	r.Votes = append(r.Votes, v)
}

func (st *step) removeVote(p player.Player) {
	r := &st.s.Round
	r.Votes = slices.DeleteFunc(r.Votes, func(v Vote) bool { return v.Voter == p })
}
