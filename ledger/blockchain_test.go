package ledger

import (
	"fmt"
	"sync"
	"testing"

	"github.com/luca-patrignani/cards-against/domain/card"
	"github.com/luca-patrignani/cards-against/domain/player"
	"github.com/luca-patrignani/cards-against/domain/round"
)

func record(n int) round.Record {
	prompt := card.Card{Content: fmt.Sprintf("Prompt %d: %s", n, card.Placeholder), Kind: card.Prompt}
	alice, bob := player.Player{Name: "alice"}, player.Player{Name: "bob"}
	text := card.Preview(prompt, []card.Card{{Content: "cake", Kind: card.Response}})
	return round.Record{
		Number:  n,
		Prompt:  prompt,
		Winner:  bob,
		Answers: []round.Answer{{Sender: bob, Content: text}},
		Votes:   []round.Vote{{Voter: alice, Votee: bob}, {Voter: bob, Votee: bob}},
	}
}

func TestNewLedger(t *testing.T) {
	l := New("game-1")
	if l.Game() != "game-1" {
		t.Fatalf("expected game id game-1, got %s", l.Game())
	}
	if len(l.Records()) != 0 {
		t.Fatalf("expected no records, got %d", len(l.Records()))
	}
	if err := l.Verify(); err != nil {
		t.Fatalf("fresh ledger does not verify: %v", err)
	}
}

func TestAppendAndVerify(t *testing.T) {
	l := New("game-1")
	for i := 1; i <= 5; i++ {
		if err := l.Append(record(i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if err := l.Verify(); err != nil {
		t.Fatalf("verify: %v", err)
	}
	records := l.Records()
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}
	for i, r := range records {
		if r.Number != i+1 {
			t.Errorf("record %d has number %d", i, r.Number)
		}
	}
	latest := l.Latest()
	if latest.Index != 5 || latest.Record.Number != 5 {
		t.Errorf("unexpected latest block %d for round %d", latest.Index, latest.Record.Number)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	tests := []struct {
		name   string
		tamper func(l *Ledger)
	}{
		{
			name: "winner rewritten",
			tamper: func(l *Ledger) {
				l.blocks[2].Record.Winner = player.Player{Name: "mallory"}
			},
		},
		{
			name: "vote removed",
			tamper: func(l *Ledger) {
				l.blocks[1].Record.Votes = l.blocks[1].Record.Votes[:1]
			},
		},
		{
			name: "answer text changed",
			tamper: func(l *Ledger) {
				l.blocks[3].Record.Answers[0].Content.Text = "something else"
			},
		},
		{
			name: "link broken",
			tamper: func(l *Ledger) {
				l.blocks[2].PrevHash = "deadbeef"
			},
		},
		{
			name: "genesis renamed",
			tamper: func(l *Ledger) {
				l.blocks[0].Game = "other"
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New("game-1")
			for i := 1; i <= 3; i++ {
				if err := l.Append(record(i)); err != nil {
					t.Fatal(err)
				}
			}
			tt.tamper(l)
			if err := l.Verify(); err == nil {
				t.Fatal("expected verification to fail")
			}
		})
	}
}

func TestConcurrentReaders(t *testing.T) {
	l := New("game-1")
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_ = l.Records()
				_ = l.Verify()
			}
		}()
	}
	for i := 1; i <= 50; i++ {
		if err := l.Append(record(i)); err != nil {
			t.Fatal(err)
		}
	}
	wg.Wait()
	if err := l.Verify(); err != nil {
		t.Fatal(err)
	}
}
