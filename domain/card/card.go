package card

import (
	"fmt"
	"strings"

	"go.dedis.ch/protobuf"
)

// Kind distinguishes the round's fill-in-the-blank cards from the cards
// players play into the blanks. The values match the dataset encoding.
type Kind string

const (
	Prompt   Kind = "Q"
	Response Kind = "A"
)

// Placeholder marks a blank in a prompt card.
const Placeholder = "________"

// Card is an immutable game card.
type Card struct {
	Content   string
	Kind      Kind
	Expansion string
}

// New creates a new Card with validation.
//
// Parameters:
//   - content: the text printed on the card
//   - kind: Prompt or Response
//   - expansion: the name of the set the card comes from, may be empty
//
// Returns the Card or an error if the kind is unknown or the content is empty.
func New(content string, kind Kind, expansion string) (Card, error) {
	if err := kind.validate(); err != nil {
		return Card{}, err
	}
	if strings.TrimSpace(content) == "" {
		return Card{}, fmt.Errorf("empty %s card", kind)
	}
	return Card{Content: content, Kind: kind, Expansion: expansion}, nil
}

func (k Kind) validate() error {
	switch k {
	case Prompt, Response:
		return nil
	default:
		return fmt.Errorf("invalid card kind %q", string(k))
	}
}

// String returns "prompt" or "response".
func (k Kind) String() string {
	switch k {
	case Prompt:
		return "prompt"
	case Response:
		return "response"
	default:
		return "unknown"
	}
}

// Pick returns how many response cards a prompt asks for: one per
// placeholder, and one for prompts that carry no placeholder at all.
func (c Card) Pick() int {
	if c.Kind != Prompt {
		return 0
	}
	return max(strings.Count(c.Content, Placeholder), 1)
}

func (c Card) String() string {
	return c.Content
}

// Serialize encodes the card for the wire.
func (c Card) Serialize() ([]byte, error) {
	return protobuf.Encode(&c)
}

// DeserializeCard is the inverse of Card.Serialize.
func DeserializeCard(data []byte) (Card, error) {
	var c Card
	if err := protobuf.Decode(data, &c); err != nil {
		return Card{}, fmt.Errorf("decode card: %w", err)
	}
	if err := c.Kind.validate(); err != nil {
		return Card{}, err
	}
	return c, nil
}

type cardSequence struct {
	Cards []Card
}

// SerializeCards encodes an ordered sequence of cards.
func SerializeCards(cards []Card) ([]byte, error) {
	return protobuf.Encode(&cardSequence{Cards: cards})
}

// DeserializeCards is the inverse of SerializeCards. An empty sequence
// decodes to an empty, non-nil slice.
func DeserializeCards(data []byte) ([]Card, error) {
	var seq cardSequence
	if err := protobuf.Decode(data, &seq); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}
	for _, c := range seq.Cards {
		if err := c.Kind.validate(); err != nil {
			return nil, err
		}
	}
	if seq.Cards == nil {
		return []Card{}, nil
	}
	return seq.Cards, nil
}

// Partition splits cards into the prompt and the response pools.
func Partition(cards []Card) (prompts []Card, responses []Card) {
	for _, c := range cards {
		switch c.Kind {
		case Prompt:
			prompts = append(prompts, c)
		case Response:
			responses = append(responses, c)
		}
	}
	return prompts, responses
}
