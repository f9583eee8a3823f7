package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/cards-against/application"
	"github.com/luca-patrignani/cards-against/domain/card"
	"github.com/luca-patrignani/cards-against/domain/player"
	"github.com/luca-patrignani/cards-against/domain/round"
)

func roundTitle(r round.Round) string {
	return fmt.Sprintf("Card %d", r.Number)
}

// describe turns a notice of the game into a line for the player. Notices
// the player does not care about give false.
func describe(e round.Effect, local player.Player) (string, bool) {
	switch e := e.(type) {
	case round.Began:
		return fmt.Sprintf("%s dealt a new game", e.Dealer.DisplayName(local)), true
	case round.Reveal:
		return "Every answer is in, time to vote", true
	case round.Decided:
		if e.Tie {
			return "The vote is tied", true
		}
		return e.Winner.WinningString(local), true
	case round.TieBreak:
		names := make([]string, len(e.Candidates))
		for i, p := range e.Candidates {
			names[i] = p.DisplayName(local)
		}
		return fmt.Sprintf("Tie between %s: you pick the winner", strings.Join(names, ", ")), true
	case round.Closed:
		return fmt.Sprintf("Card %d goes to %s", e.Record.Number, e.Record.Winner.DisplayName(local)), true
	case round.Ended:
		return "The game is over", true
	}
	return "", false
}

func playerStatus(v application.View, p player.Player) string {
	if !v.Playing() {
		return pterm.LightGreen("Connected")
	}
	switch v.Round.Phase {
	case round.PickingWinner:
		for _, vote := range v.Round.Votes {
			if vote.Voter == p {
				return pterm.LightGreen("Voted")
			}
		}
		return pterm.LightYellow("Voting")
	default:
		for _, a := range v.Round.Answers {
			if a.Sender == p {
				return pterm.LightGreen("Answered")
			}
		}
		return pterm.LightYellow("Picking")
	}
}

func points(v application.View, p player.Player) int {
	for _, s := range v.Standings {
		if s.Player == p {
			return s.Points
		}
	}
	return 0
}

func printPlayerInfo(v application.View, p player.Player) string {
	hpadding := 4
	if p == v.Local {
		hpadding = 10
	}
	pbox := pterm.DefaultBox.WithHorizontalPadding(hpadding).WithTopPadding(1).WithBottomPadding(1)
	title := p.Name
	if p == v.Authority {
		title += " *"
	}
	return pbox.WithTitle(title).WithTitleTopLeft().Sprintf("%s\nPoints: %d", playerStatus(v, p), points(v, p))
}

// promptText is the prompt of the round with the local cards placed so
// far filled in.
func promptText(r round.Round) string {
	return card.Preview(r.Prompt, r.Placed).Styled(pterm.LightCyan)
}

func printPromptInfo(v application.View) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	body := promptText(v.Round)
	if pick := v.Round.Prompt.Pick(); pick > 1 {
		body += pterm.Sprintf("\n\nPick %d", pick)
	}
	return pbox.WithTitle(pterm.LightYellow("|"+roundTitle(v.Round)+"|")).WithTitleTopCenter().Sprint(body)
}

func handText(hand []card.Card) string {
	var b strings.Builder
	for i, c := range hand {
		b.WriteString(pterm.Sprintfln("%2d. %s", i+1, c.Content))
	}
	return b.String()
}

// answersText lists the answers of the round with their votes once every
// vote is in.
func answersText(v application.View) string {
	counts := round.Count(v.Round.Votes)
	var b strings.Builder
	for _, a := range v.Round.Answers {
		line := a.Content.Styled(pterm.LightCyan)
		if v.Round.Decided {
			line = pterm.Sprintf("%s: %s (%s)", a.Sender.DisplayName(v.Local), line, round.VoteCountString(counts[a.Sender]))
		}
		b.WriteString(line + "\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func printState(v application.View, notes []string) {
	var panels []pterm.Panel
	var mainPlayer pterm.Panel
	for _, p := range v.Players {
		if p == v.Local {
			mainPlayer = pterm.Panel{Data: printPlayerInfo(v, p)}
			continue
		}
		panels = append(panels, pterm.Panel{Data: printPlayerInfo(v, p)})
	}
	rows := [][]pterm.Panel{panels}
	if v.Playing() {
		rows = append(rows, []pterm.Panel{{Data: printPromptInfo(v)}})
		pbox := pterm.DefaultBox.WithHorizontalPadding(2)
		if v.Round.Phase == round.PickingWinner {
			rows = append(rows, []pterm.Panel{{Data: pbox.WithTitle("Answers").Sprint(answersText(v))}})
		} else {
			rows = append(rows, []pterm.Panel{{Data: pbox.WithTitle("Your hand").Sprint(handText(v.Round.Hand))}})
		}
	}
	dashboard := []pterm.Panel{mainPlayer}
	if len(notes) > 0 {
		pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
		dashboard = append(dashboard, pterm.Panel{Data: pbox.WithTitle(pterm.LightGreen("|LATEST|")).WithTitleTopCenter().Sprint(strings.Join(notes, "\n"))})
	}
	rows = append(rows, dashboard)
	_ = pterm.DefaultPanel.WithPanels(rows).Render()
}

func standingsTable(v application.View) pterm.TableData {
	data := pterm.TableData{{"Player", "Points"}}
	for _, s := range v.Standings {
		data = append(data, []string{s.Player.DisplayName(v.Local), strconv.Itoa(s.Points)})
	}
	return data
}

func historyTable(v application.View) pterm.TableData {
	data := pterm.TableData{{"Card", "Prompt", "Winner", "Answer"}}
	for _, rec := range v.History {
		answer := ""
		for _, a := range rec.Answers {
			if a.Sender == rec.Winner {
				answer = a.Content.String()
			}
		}
		data = append(data, []string{strconv.Itoa(rec.Number), rec.Prompt.Content, rec.Winner.DisplayName(v.Local), answer})
	}
	return data
}

func printStats(v application.View) {
	pterm.DefaultSection.Println("Scores")
	_ = pterm.DefaultTable.WithHasHeader().WithData(standingsTable(v)).Render()
	if len(v.History) == 0 {
		return
	}
	pterm.DefaultSection.Printfln("Rounds of game %s", v.GameID)
	_ = pterm.DefaultTable.WithHasHeader().WithData(historyTable(v)).Render()
}
