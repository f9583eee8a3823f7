// Package player defines the identity of a participant in the mesh.
package player

import (
	"fmt"
	"slices"
	"strings"

	"go.dedis.ch/protobuf"
)

// Player is identified by name only. Two devices with the same name are
// the same player.
type Player struct {
	Name string
}

// New trims name and rejects empty names.
func New(name string) (Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, fmt.Errorf("empty player name")
	}
	return Player{Name: name}, nil
}

// IsLocal reports whether p is the player running this device.
func (p Player) IsLocal(local Player) bool {
	return p.Name == local.Name
}

// DisplayName returns "You" for the local player and the name otherwise.
func (p Player) DisplayName(local Player) string {
	if p.IsLocal(local) {
		return "You"
	}
	return p.Name
}

// WinningString announces p as the winner of a round.
func (p Player) WinningString(local Player) string {
	if p.IsLocal(local) {
		return "You win this round!"
	}
	return p.Name + " wins this round!"
}

func (p Player) String() string {
	return p.Name
}

// Serialize encodes the player for the wire.
func (p Player) Serialize() ([]byte, error) {
	return protobuf.Encode(&p)
}

// Deserialize is the inverse of Player.Serialize.
func Deserialize(data []byte) (Player, error) {
	var p Player
	if err := protobuf.Decode(data, &p); err != nil {
		return Player{}, fmt.Errorf("decode player: %w", err)
	}
	return p, nil
}

// Compare orders players by name.
func Compare(a, b Player) int {
	return strings.Compare(a.Name, b.Name)
}

// Sorted returns a sorted copy of players.
func Sorted(players []Player) []Player {
	out := slices.Clone(players)
	slices.SortFunc(out, Compare)
	return out
}
