package round

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/luca-patrignani/cards-against/domain/player"
)

// Count groups votes by votee.
func Count(votes []Vote) map[player.Player]int {
	counts := make(map[player.Player]int)
	for _, v := range votes {
		counts[v.Votee]++
	}
	return counts
}

// Tally returns the winner of a round, or false on a tie. A single distinct
// votee always wins; otherwise the votee with the strictly highest count
// wins and equal top counts are a tie. No votes at all is a tie too.
func Tally(votes []Vote) (player.Player, bool) {
	counts := Count(votes)
	votees := make([]player.Player, 0, len(counts))
	for p := range counts {
		votees = append(votees, p)
	}
	switch len(votees) {
	case 0:
		return player.Player{}, false
	case 1:
		return votees[0], true
	}
	slices.SortFunc(votees, func(a, b player.Player) int {
		return cmp.Or(cmp.Compare(counts[b], counts[a]), player.Compare(a, b))
	})
	if counts[votees[0]] == counts[votees[1]] {
		return player.Player{}, false
	}
	return votees[0], true
}

// VoteCountString describes a number of votes.
func VoteCountString(n int) string {
	switch n {
	case 0:
		return "no votes"
	case 1:
		return "1 vote"
	default:
		return fmt.Sprintf("%d votes", n)
	}
}

// Standing is one line of the scoreboard.
type Standing struct {
	Player player.Player
	Points int
}

// Standings orders the scores by points, then by name.
func (s Scores) Standings() []Standing {
	out := make([]Standing, 0, len(s))
	for p, points := range s {
		out = append(out, Standing{Player: p, Points: points})
	}
	slices.SortFunc(out, func(a, b Standing) int {
		return cmp.Or(cmp.Compare(b.Points, a.Points), player.Compare(a.Player, b.Player))
	})
	return out
}
