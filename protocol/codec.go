package protocol

import (
	"errors"
	"fmt"

	"go.dedis.ch/protobuf"
)

var (
	// ErrUnknownEvent is returned by Decode for event names outside the protocol.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrMalformed is returned by Decode when a frame or its body cannot be decoded.
	ErrMalformed = errors.New("malformed message")
)

// frame is the wire layout of every message.
type frame struct {
	Event string
	Round uint32
	Body  []byte
}

// Envelope is a decoded message together with the round its sender was in.
type Envelope struct {
	Round   int
	Message Message
}

// Encode serializes m as sent during round.
func Encode(round int, m Message) ([]byte, error) {
	if round < 0 {
		return nil, fmt.Errorf("negative round %d", round)
	}
	var (
		body []byte
		err  error
	)
	switch m := m.(type) {
	case StartGame:
		body, err = protobuf.Encode(&m)
	case Answer:
		body, err = protobuf.Encode(&m)
	case CancelAnswer:
		body, err = protobuf.Encode(&m)
	case Vote:
		body, err = protobuf.Encode(&m)
	case NextCard:
		body, err = protobuf.Encode(&m)
	case EndGame:
		body, err = protobuf.Encode(&m)
	default:
		return nil, fmt.Errorf("cannot encode %T", m)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", m.Event(), err)
	}
	return protobuf.Encode(&frame{Event: string(m.Event()), Round: uint32(round), Body: body})
}

// Decode parses a frame produced by Encode. Unknown event names yield
// ErrUnknownEvent, undecodable or invalid content yields ErrMalformed.
func Decode(data []byte) (Envelope, error) {
	var f frame
	if err := protobuf.Decode(data, &f); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var (
		m   Message
		err error
	)
	switch Event(f.Event) {
	case EventStartGame:
		m, err = decodeBody[StartGame](f.Body)
	case EventAnswer:
		m, err = decodeBody[Answer](f.Body)
	case EventCancelAnswer:
		m, err = decodeBody[CancelAnswer](f.Body)
	case EventVote:
		m, err = decodeBody[Vote](f.Body)
	case EventNextCard:
		m, err = decodeBody[NextCard](f.Body)
	case EventEndGame:
		m, err = decodeBody[EndGame](f.Body)
	default:
		return Envelope{}, fmt.Errorf("%w: %q", ErrUnknownEvent, f.Event)
	}
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %s: %v", ErrMalformed, f.Event, err)
	}
	return Envelope{Round: int(f.Round), Message: m}, nil
}

func decodeBody[T Message](body []byte) (Message, error) {
	var m T
	if err := protobuf.Decode(body, &m); err != nil {
		return nil, err
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}
