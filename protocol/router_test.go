package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.dedis.ch/protobuf"

	"github.com/luca-patrignani/cards-against/domain/player"
)

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()
	bob := player.Player{Name: "bob"}
	var got []Envelope
	r.Handle(EventVote, func(from player.Player, env Envelope) {
		assert.Equal(t, bob, from)
		got = append(got, env)
	})

	data, err := Encode(4, Vote{Votee: player.Player{Name: "carol"}})
	require.NoError(t, err)
	require.NoError(t, r.Dispatch(bob, data))
	require.Len(t, got, 1)
	assert.Equal(t, Envelope{Round: 4, Message: Vote{Votee: player.Player{Name: "carol"}}}, got[0])
}

func TestRouterReplaceAndRemove(t *testing.T) {
	r := NewRouter()
	calls := map[string]int{}
	r.Handle(EventEndGame, func(player.Player, Envelope) { calls["first"]++ })
	r.Handle(EventEndGame, func(player.Player, Envelope) { calls["second"]++ })

	data, err := Encode(1, EndGame{})
	require.NoError(t, err)
	require.NoError(t, r.Dispatch(player.Player{Name: "bob"}, data))
	assert.Equal(t, map[string]int{"second": 1}, calls)

	r.Handle(EventEndGame, nil)
	assert.False(t, r.Registered(EventEndGame))
	require.NoError(t, r.Dispatch(player.Player{Name: "bob"}, data))
	assert.Equal(t, map[string]int{"second": 1}, calls)
}

func TestRouterIgnoresUnknownEvent(t *testing.T) {
	r := NewRouter()
	called := false
	for _, ev := range Events {
		r.Handle(ev, func(player.Player, Envelope) { called = true })
	}
	data, err := protobuf.Encode(&frame{Event: "Dance", Round: 1})
	require.NoError(t, err)
	assert.NoError(t, r.Dispatch(player.Player{Name: "bob"}, data))
	assert.False(t, called)
}

func TestRouterReportsMalformed(t *testing.T) {
	r := NewRouter()
	called := false
	r.Handle(EventAnswer, func(player.Player, Envelope) { called = true })
	data, err := protobuf.Encode(&frame{Event: string(EventAnswer), Round: 1, Body: []byte{0xff, 0xff}})
	require.NoError(t, err)
	assert.ErrorIs(t, r.Dispatch(player.Player{Name: "bob"}, data), ErrMalformed)
	assert.False(t, called)
}
