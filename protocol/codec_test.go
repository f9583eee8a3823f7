package protocol

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.dedis.ch/protobuf"

	"github.com/luca-patrignani/cards-against/domain/card"
	"github.com/luca-patrignani/cards-against/domain/player"
)

var (
	prompt = card.Card{Content: "What's my secret power? " + card.Placeholder + ".", Kind: card.Prompt, Expansion: "base"}
	hand   = []card.Card{
		{Content: "Being fabulous.", Kind: card.Response, Expansion: "base"},
		{Content: "Flying monkeys.", Kind: card.Response},
	}
)

func TestEncodeDecodeEveryVariant(t *testing.T) {
	answer, err := card.Compose(prompt, hand[:1])
	require.NoError(t, err)

	tests := []struct {
		name  string
		round int
		msg   Message
	}{
		{name: "start game", round: 0, msg: StartGame{Prompt: prompt, Hand: hand}},
		{name: "answer", round: 3, msg: Answer{Answer: answer}},
		{name: "cancel answer", round: 3, msg: CancelAnswer{}},
		{name: "vote", round: 7, msg: Vote{Votee: player.Player{Name: "bob"}}},
		{name: "next card", round: 7, msg: NextCard{Prompt: prompt, Hand: hand, Winner: player.Player{Name: "bob"}}},
		{name: "end game", round: 9, msg: EndGame{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.round, tt.msg)
			require.NoError(t, err)
			env, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.round, env.Round)
			assert.Equal(t, tt.msg.Event(), env.Message.Event())
			assert.Equal(t, tt.msg, env.Message)
		})
	}
}

func TestEncodeRejectsNegativeRound(t *testing.T) {
	_, err := Encode(-1, EndGame{})
	assert.Error(t, err)
}

func TestDecodeUnknownEvent(t *testing.T) {
	data, err := protobuf.Encode(&frame{Event: "Shrug", Round: 1})
	require.NoError(t, err)
	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestDecodeMalformed(t *testing.T) {
	t.Run("garbage frame", func(t *testing.T) {
		_, err := Decode([]byte{0xff, 0xff, 0xff})
		assert.ErrorIs(t, err, ErrMalformed)
	})
	t.Run("garbage body", func(t *testing.T) {
		data, err := protobuf.Encode(&frame{Event: string(EventVote), Round: 1, Body: []byte{0xff, 0xff, 0xff}})
		require.NoError(t, err)
		_, err = Decode(data)
		assert.ErrorIs(t, err, ErrMalformed)
	})
	t.Run("invalid body", func(t *testing.T) {
		data, err := Encode(2, NextCard{Prompt: hand[0], Hand: hand, Winner: player.Player{Name: "bob"}})
		require.NoError(t, err)
		_, err = Decode(data)
		assert.ErrorIs(t, err, ErrMalformed)
	})
	t.Run("answer span past the text", func(t *testing.T) {
		data, err := Encode(2, Answer{Answer: card.ComposedText{Text: "ab", Spans: []card.Span{{Start: math.MaxUint32, Length: 2}}}})
		require.NoError(t, err)
		_, err = Decode(data)
		assert.ErrorIs(t, err, ErrMalformed)
	})
	t.Run("vote without votee", func(t *testing.T) {
		data, err := Encode(2, Vote{})
		require.NoError(t, err)
		_, err = Decode(data)
		assert.ErrorIs(t, err, ErrMalformed)
	})
}
