package application

import (
	"log/slog"

	"github.com/google/uuid"
)

// DefaultHandSize is the number of response cards each player holds at the
// start of a round.
const DefaultHandSize = 10

type settings struct {
	handSize int
	logger   *slog.Logger
	intn     func(n int) int
	newID    func() string
}

type option func(settings) settings

func defaultSettings() settings {
	return settings{
		handSize: DefaultHandSize,
		logger:   slog.Default(),
		newID:    uuid.NewString,
	}
}

func WithHandSize(n int) option {
	return func(s settings) settings {
		s.handSize = n
		return s
	}
}

func WithLogger(logger *slog.Logger) option {
	return func(s settings) settings {
		s.logger = logger
		return s
	}
}

// WithIntn replaces the randomness of the deck shuffle.
func WithIntn(intn func(n int) int) option {
	return func(s settings) settings {
		s.intn = intn
		return s
	}
}

// WithGameID replaces the generator of game identifiers used to label the
// round history.
func WithGameID(newID func() string) option {
	return func(s settings) settings {
		s.newID = newID
		return s
	}
}
