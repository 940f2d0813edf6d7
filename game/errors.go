package game

import "errors"

// Kind classifies engine errors so callers can map them to transport codes.
type Kind int

const (
	KindInvalidEntryPrice Kind = iota
	KindSessionNotFound
	KindIllegalState
	KindDuplicateParticipant
	KindUnknownParticipant
	KindCartelaTaken
	KindCapacityExceeded
	KindUnmarkedOrUncalled
)

// Error is an engine-level error with a kind for classification.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf extracts the engine error kind, if err carries one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func illegalState(msg string) error {
	return &Error{Kind: KindIllegalState, Message: msg}
}
