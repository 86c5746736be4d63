package terminal

import "errors"

// Precondition errors. They never indicate a fault; hosts typically log
// them at debug level and carry on.
var (
	ErrPuzzleNotVisible     = errors.New("terminal: puzzle not visible")
	ErrAlreadyAuthenticated = errors.New("terminal: already authenticated")
	ErrNotAuthenticated     = errors.New("terminal: not authenticated")
	ErrTerminalNotReady     = errors.New("terminal: not ready for commands")
)
