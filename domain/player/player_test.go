package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrimsName(t *testing.T) {
	p, err := New("  alice ")
	require.NoError(t, err)
	assert.Equal(t, Player{Name: "alice"}, p)

	_, err = New(" ")
	assert.Error(t, err)
}

func TestDisplayStrings(t *testing.T) {
	local := Player{Name: "alice"}
	bob := Player{Name: "bob"}

	assert.Equal(t, "You", local.DisplayName(local))
	assert.Equal(t, "bob", bob.DisplayName(local))
	assert.Equal(t, "You win this round!", local.WinningString(local))
	assert.Equal(t, "bob wins this round!", bob.WinningString(local))
	assert.True(t, Player{Name: "alice"}.IsLocal(local))
	assert.False(t, bob.IsLocal(local))
}

func TestSerializeRoundTrip(t *testing.T) {
	p := Player{Name: "Zoë"}
	data, err := p.Serialize()
	require.NoError(t, err)
	got, err := Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestSorted(t *testing.T) {
	in := []Player{{Name: "carol"}, {Name: "alice"}, {Name: "bob"}}
	got := Sorted(in)
	assert.Equal(t, []Player{{Name: "alice"}, {Name: "bob"}, {Name: "carol"}}, got)
	assert.Equal(t, "carol", in[0].Name)
}
