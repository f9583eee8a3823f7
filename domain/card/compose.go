package card

import (
	"fmt"
	"strings"

	"go.dedis.ch/protobuf"
)

// Span is a highlighted range of a ComposedText, in bytes.
type Span struct {
	Start  uint32
	Length uint32
}

// ComposedText is a prompt with the played responses filled into its
// blanks. Spans cover the inserted response text so renderers can style it.
type ComposedText struct {
	Text  string
	Spans []Span
}

// Compose fills every blank of prompt with responses, in order.
// It fails unless exactly prompt.Pick() responses are given.
func Compose(prompt Card, responses []Card) (ComposedText, error) {
	if prompt.Kind != Prompt {
		return ComposedText{}, fmt.Errorf("cannot compose onto a %s card", prompt.Kind)
	}
	if len(responses) != prompt.Pick() {
		return ComposedText{}, fmt.Errorf("prompt needs %d responses, got %d", prompt.Pick(), len(responses))
	}
	return Preview(prompt, responses), nil
}

// Preview fills as many blanks as there are responses. Responses left over
// once the blanks run out are appended on their own lines.
func Preview(prompt Card, responses []Card) ComposedText {
	text := prompt.Content
	var spans []Span
	for _, r := range responses {
		if i := strings.Index(text, Placeholder); i >= 0 {
			text = text[:i] + r.Content + text[i+len(Placeholder):]
			spans = append(spans, Span{Start: uint32(i), Length: uint32(len(r.Content))})
			continue
		}
		text += "\n"
		spans = append(spans, Span{Start: uint32(len(text)), Length: uint32(len(r.Content))})
		text += r.Content
	}
	return ComposedText{Text: text, Spans: spans}
}

// Within reports whether the span lies inside a text of length n.
func (s Span) Within(n int) bool {
	return uint64(s.Start)+uint64(s.Length) <= uint64(n)
}

// Highlighted returns the inserted fragments in order.
func (t ComposedText) Highlighted() []string {
	out := make([]string, 0, len(t.Spans))
	for _, s := range t.Spans {
		if !s.Within(len(t.Text)) {
			continue
		}
		out = append(out, t.Text[s.Start:s.Start+s.Length])
	}
	return out
}

// Styled renders the text with style applied to every span.
func (t ComposedText) Styled(style func(a ...any) string) string {
	var b strings.Builder
	last := 0
	for _, s := range t.Spans {
		if !s.Within(len(t.Text)) || int(s.Start) < last {
			continue
		}
		start, end := int(s.Start), int(s.Start+s.Length)
		b.WriteString(t.Text[last:start])
		b.WriteString(style(t.Text[start:end]))
		last = end
	}
	b.WriteString(t.Text[last:])
	return b.String()
}

func (t ComposedText) String() string {
	return t.Text
}

// Serialize encodes the composed text for the wire.
func (t ComposedText) Serialize() ([]byte, error) {
	return protobuf.Encode(&t)
}

// DeserializeComposedText is the inverse of ComposedText.Serialize.
func DeserializeComposedText(data []byte) (ComposedText, error) {
	var t ComposedText
	if err := protobuf.Decode(data, &t); err != nil {
		return ComposedText{}, fmt.Errorf("decode composed text: %w", err)
	}
	for _, s := range t.Spans {
		if !s.Within(len(t.Text)) {
			return ComposedText{}, fmt.Errorf("span %d+%d outside text of length %d", s.Start, s.Length, len(t.Text))
		}
	}
	return t, nil
}
