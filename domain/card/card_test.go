package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		content string
		kind    Kind
		wantErr bool
	}{
		{name: "prompt", content: "Why can't I sleep at night? " + Placeholder + ".", kind: Prompt},
		{name: "response", content: "A bag of magic beans.", kind: Response},
		{name: "unknown kind", content: "Something.", kind: Kind("X"), wantErr: true},
		{name: "empty content", content: "   ", kind: Response, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.content, tt.kind, "base")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.content, c.Content)
			assert.Equal(t, tt.kind, c.Kind)
			assert.Equal(t, "base", c.Expansion)
		})
	}
}

func TestPick(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want int
	}{
		{name: "one blank", card: Card{Content: "I drink to forget " + Placeholder + ".", Kind: Prompt}, want: 1},
		{name: "two blanks", card: Card{Content: Placeholder + " + " + Placeholder + " = love.", Kind: Prompt}, want: 2},
		{name: "no blanks", card: Card{Content: "What's that smell?", Kind: Prompt}, want: 1},
		{name: "response", card: Card{Content: "Puppies.", Kind: Response}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.card.Pick())
		})
	}
}

func TestPartition(t *testing.T) {
	cards := []Card{
		{Content: "Q1 " + Placeholder, Kind: Prompt},
		{Content: "A1", Kind: Response},
		{Content: "A2", Kind: Response},
		{Content: "Q2", Kind: Prompt},
	}
	prompts, responses := Partition(cards)
	assert.Equal(t, []Card{cards[0], cards[3]}, prompts)
	assert.Equal(t, []Card{cards[1], cards[2]}, responses)
}

func TestCardSerializeRoundTrip(t *testing.T) {
	c := Card{Content: "Grandma's secret " + Placeholder + ".", Kind: Prompt, Expansion: "base"}
	data, err := c.Serialize()
	require.NoError(t, err)
	got, err := DeserializeCard(data)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestCardsSerializeRoundTrip(t *testing.T) {
	cards := []Card{
		{Content: "Puppies.", Kind: Response, Expansion: "base"},
		{Content: "Crippling debt.", Kind: Response},
		{Content: "Dying.", Kind: Response, Expansion: "second"},
	}
	data, err := SerializeCards(cards)
	require.NoError(t, err)
	got, err := DeserializeCards(data)
	require.NoError(t, err)
	assert.Equal(t, cards, got)
}

func TestCardsSerializeEmpty(t *testing.T) {
	data, err := SerializeCards([]Card{})
	require.NoError(t, err)
	got, err := DeserializeCards(data)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestDeserializeCardRejectsUnknownKind(t *testing.T) {
	data, err := Card{Content: "x", Kind: Kind("Z")}.Serialize()
	require.NoError(t, err)
	_, err = DeserializeCard(data)
	assert.Error(t, err)
}

func TestDeserializeCardGarbage(t *testing.T) {
	_, err := DeserializeCard([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}
