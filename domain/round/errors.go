package round

// Error is a rule violation in a local action. The state is left untouched
// whenever one is returned.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrNotStarted       Error = "no game in progress"
	ErrAlreadyStarted   Error = "a game is already in progress"
	ErrInvalidPhase     Error = "action not allowed in the current phase"
	ErrInvalidCard      Error = "no such card in hand"
	ErrNothingToRetract Error = "no card to take back"
	ErrAlreadyVoted     Error = "already voted this round"
	ErrUnknownPlayer    Error = "player is not seated in this game"
	ErrNoTie            Error = "there is no tie to break"
	ErrNotAuthority     Error = "another device breaks ties this round"
)
