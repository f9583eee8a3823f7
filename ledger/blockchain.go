package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/luca-patrignani/cards-against/domain/round"
)

// Block is one closed round in the chain.
type Block struct {
	Index     int
	Timestamp int64
	PrevHash  string
	Hash      string
	Game      string
	Record    round.Record
}

// Ledger is safe for concurrent use: the game appends while the UI reads.
type Ledger struct {
	mu     sync.RWMutex
	blocks []Block
	now    func() time.Time
}

// New creates a ledger for the game identified by game, with its genesis
// block already in place.
func New(game string) *Ledger {
	l := &Ledger{now: time.Now}
	genesis := Block{
		Index:     0,
		Timestamp: l.now().Unix(),
		PrevHash:  "0",
		Game:      game,
	}
	genesis.Hash = calculateHash(genesis)
	l.blocks = []Block{genesis}
	return l
}

// Append links the record of a closed round to the chain.
func (l *Ledger) Append(rec round.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	latest := l.blocks[len(l.blocks)-1]
	b := Block{
		Index:     latest.Index + 1,
		Timestamp: l.now().Unix(),
		PrevHash:  latest.Hash,
		Game:      latest.Game,
		Record:    rec,
	}
	b.Hash = calculateHash(b)
	if err := validateBlock(b, latest); err != nil {
		return fmt.Errorf("invalid block: %w", err)
	}
	l.blocks = append(l.blocks, b)
	return nil
}

// Game returns the identifier the ledger was created with.
func (l *Ledger) Game() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.blocks[0].Game
}

// Latest returns the most recent block.
func (l *Ledger) Latest() Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.blocks[len(l.blocks)-1]
}

// Records returns the recorded rounds, oldest first.
func (l *Ledger) Records() []round.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]round.Record, 0, len(l.blocks)-1)
	for _, b := range l.blocks[1:] {
		out = append(out, b.Record)
	}
	return out
}

// Verify checks the genesis block and every link of the chain.
func (l *Ledger) Verify() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.blocks[0].PrevHash != "0" || l.blocks[0].Hash != calculateHash(l.blocks[0]) {
		return fmt.Errorf("invalid genesis block")
	}
	for i := 1; i < len(l.blocks); i++ {
		if err := validateBlock(l.blocks[i], l.blocks[i-1]); err != nil {
			return fmt.Errorf("block %d invalid: %w", i, err)
		}
	}
	return nil
}

func validateBlock(current, previous Block) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}
	if current.PrevHash != previous.Hash {
		return fmt.Errorf("invalid prev hash: expected %s, got %s", previous.Hash, current.PrevHash)
	}
	if expected := calculateHash(current); current.Hash != expected {
		return fmt.Errorf("invalid hash: expected %s, got %s", expected, current.Hash)
	}
	return nil
}

// calculateHash hashes the block header and the wire encoding of its
// record.
func calculateHash(b Block) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%d|%s|%s|%d|", b.Index, b.Timestamp, b.PrevHash, b.Game, b.Record.Number)
	write := func(data []byte, err error) {
		if err != nil {
			fmt.Fprintf(h, "!%v", err)
			return
		}
		fmt.Fprintf(h, "%d:", len(data))
		h.Write(data)
	}
	write(b.Record.Prompt.Serialize())
	write(b.Record.Winner.Serialize())
	for _, a := range b.Record.Answers {
		write(a.Sender.Serialize())
		write(a.Content.Serialize())
	}
	for _, v := range b.Record.Votes {
		write(v.Voter.Serialize())
		write(v.Votee.Serialize())
	}
	return hex.EncodeToString(h.Sum(nil))
}
