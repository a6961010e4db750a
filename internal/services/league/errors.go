package league

import (
	"errors"
	"fmt"
)

// Static errors. The message strings double as the ready-to-display
// text relayed by the chat front-end.
var (
	ErrNoChallengeToAccept  = errors.New("No challenge to accept.")
	ErrNoChallengeToDecline = errors.New("No challenge to decline.")
	ErrChallengeNotAccepted = errors.New("Challenge needs to be accepted before recording match.")

	ErrNilConfig        = errors.New("config cannot be nil")
	ErrNilPlayerRepo    = errors.New("player repository cannot be nil")
	ErrNilChallengeRepo = errors.New("challenge repository cannot be nil")
	ErrNilRating        = errors.New("rating calculator cannot be nil")
	ErrNilClock         = errors.New("clock cannot be nil")
	ErrNilUUIDGenerator = errors.New("UUID generator cannot be nil")
)

// NotFoundError is returned when a named player is not on the roster.
// Name carries the sigil-stripped form of whatever the caller sent.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Player '%s' does not exist.", e.Name)
}

// AlreadyRegisteredError is returned when registering a taken name
type AlreadyRegisteredError struct {
	Name string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("Player '%s' is already registered.", e.Name)
}

// ExtraHandsError is returned when the same player is named more than
// once for a challenge. Hands is two per occurrence.
type ExtraHandsError struct {
	Name  string
	Hands int
}

func (e *ExtraHandsError) Error() string {
	return fmt.Sprintf("Does %s have %d hands?", e.Name, e.Hands)
}

// ActiveChallengeError is returned when a participant is already tied
// up in another proposed or accepted challenge
type ActiveChallengeError struct {
	PlayerOne string
	PlayerTwo string
}

func (e *ActiveChallengeError) Error() string {
	return fmt.Sprintf("There's already an active challenge between %s and %s.", e.PlayerOne, e.PlayerTwo)
}

// AlreadyAcceptedError is returned when accepting a challenge twice
type AlreadyAcceptedError struct {
	Challenger string
}

func (e *AlreadyAcceptedError) Error() string {
	return fmt.Sprintf("You have already accepted %s's challenge.", e.Challenger)
}
