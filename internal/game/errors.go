package game

// ErrorKind classifies a rejected guess.
type ErrorKind int

const (
	IncompleteGuess   ErrorKind = iota + 1 // fewer than five letters entered
	UnknownWord                            // not in the dictionary or accent map
	HardModeViolation                      // ignores a revealed letter
	GameOver                               // game already finished
)

func (k ErrorKind) String() string {
	switch k {
	case IncompleteGuess:
		return "incomplete_guess"
	case UnknownWord:
		return "unknown_word"
	case HardModeViolation:
		return "hard_mode_violation"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// GuessError is returned by ProcessGuess. Message is shown to the player.
// Every GuessError is recoverable: the state handed back is the input state.
type GuessError struct {
	Kind    ErrorKind
	Message string
}

func (e *GuessError) Error() string { return e.Message }

// Is matches any GuessError of the same kind, so errors.Is(err, ErrHardMode)
// holds whatever letter the message names.
func (e *GuessError) Is(target error) bool {
	t, ok := target.(*GuessError)
	return ok && t.Kind == e.Kind
}

var (
	ErrIncompleteGuess = &GuessError{Kind: IncompleteGuess, Message: "Palavra incompleta"}
	ErrUnknownWord     = &GuessError{Kind: UnknownWord, Message: "Palavra desconhecida"}
	ErrHardMode        = &GuessError{Kind: HardModeViolation, Message: "Respeite as dicas!"}
	ErrGameOver        = &GuessError{Kind: GameOver, Message: "Jogo encerrado"}
)
