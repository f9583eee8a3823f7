package round

import (
	"testing"

	"github.com/luca-patrignani/cards-against/domain/player"
)

func TestTally(t *testing.T) {
	a, b, c, d := player.Player{Name: "a"}, player.Player{Name: "b"}, player.Player{Name: "c"}, player.Player{Name: "d"}
	x, y, z := player.Player{Name: "x"}, player.Player{Name: "y"}, player.Player{Name: "z"}
	tests := []struct {
		name       string
		votes      []Vote
		wantWinner player.Player
		wantOk     bool
	}{
		{
			name:       "two votes same votee",
			votes:      []Vote{{Voter: a, Votee: x}, {Voter: b, Votee: x}},
			wantWinner: x,
			wantOk:     true,
		},
		{
			name:   "one to one tie",
			votes:  []Vote{{Voter: a, Votee: x}, {Voter: b, Votee: y}},
			wantOk: false,
		},
		{
			name:       "majority",
			votes:      []Vote{{Voter: a, Votee: x}, {Voter: b, Votee: x}, {Voter: c, Votee: y}},
			wantWinner: x,
			wantOk:     true,
		},
		{
			name:       "single vote",
			votes:      []Vote{{Voter: a, Votee: y}},
			wantWinner: y,
			wantOk:     true,
		},
		{
			name:   "no votes",
			votes:  nil,
			wantOk: false,
		},
		{
			name:   "three way tie",
			votes:  []Vote{{Voter: a, Votee: x}, {Voter: b, Votee: y}, {Voter: c, Votee: z}},
			wantOk: false,
		},
		{
			name:       "strict maximum among three votees",
			votes:      []Vote{{Voter: a, Votee: x}, {Voter: b, Votee: y}, {Voter: c, Votee: y}, {Voter: d, Votee: z}},
			wantWinner: y,
			wantOk:     true,
		},
		{
			name:   "tie at the top with a trailing votee",
			votes:  []Vote{{Voter: a, Votee: x}, {Voter: b, Votee: x}, {Voter: c, Votee: y}, {Voter: d, Votee: y}, {Voter: x, Votee: z}},
			wantOk: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, ok := Tally(tt.votes)
			if ok != tt.wantOk {
				t.Fatalf("expected ok=%v, got %v", tt.wantOk, ok)
			}
			if winner != tt.wantWinner {
				t.Errorf("expected winner %q, got %q", tt.wantWinner.Name, winner.Name)
			}
		})
	}
}

func TestVoteCountString(t *testing.T) {
	tests := map[int]string{0: "no votes", 1: "1 vote", 2: "2 votes", 11: "11 votes"}
	for n, want := range tests {
		if got := VoteCountString(n); got != want {
			t.Errorf("VoteCountString(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestStandings(t *testing.T) {
	scores := Scores{
		{Name: "carol"}: 2,
		{Name: "alice"}: 1,
		{Name: "bob"}:   2,
	}
	got := scores.Standings()
	want := []Standing{
		{Player: player.Player{Name: "bob"}, Points: 2},
		{Player: player.Player{Name: "carol"}, Points: 2},
		{Player: player.Player{Name: "alice"}, Points: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d standings, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("standing %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
