package application

import "errors"

var (
	ErrNoPeers            = errors.New("no peers connected")
	ErrNoPrompts          = errors.New("catalog has no prompt cards")
	ErrNotEnoughResponses = errors.New("catalog has fewer response cards than a hand")
	ErrStopped            = errors.New("game loop stopped")
)
