// Package catalog loads the cards a game is dealt from.
//
// A dataset is a JSON array of objects with the keys "text", "cardType"
// ("Q" for prompts, "A" for responses) and "expansion". The "base" dataset
// is built into the binary; any other name is read as a file path.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/luca-patrignani/cards-against/domain/card"
)

// Base is the name of the built-in dataset.
const Base = "base"

//go:embed base.json
var base []byte

type entry struct {
	Text      string `json:"text"`
	CardType  string `json:"cardType"`
	Expansion string `json:"expansion"`
}

// Load returns the cards of the named dataset.
func Load(name string) ([]card.Card, error) {
	if name == Base || name == "" {
		return Parse(base)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", name, err)
	}
	cards, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", name, err)
	}
	return cards, nil
}

// Parse decodes a dataset. Every entry must be a valid card.
func Parse(data []byte) ([]card.Card, error) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	cards := make([]card.Card, 0, len(entries))
	for i, e := range entries {
		c, err := card.New(e.Text, card.Kind(e.CardType), e.Expansion)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}
