package models

import (
	"time"
)

// ChallengeState represents the current state of a challenge
type ChallengeState string

const (
	// ChallengeStateProposed indicates a challenge is waiting to be accepted or declined
	ChallengeStateProposed ChallengeState = "Proposed"

	// ChallengeStateAccepted indicates a challenge has been accepted and awaits a result
	ChallengeStateAccepted ChallengeState = "Accepted"

	// ChallengeStateDeclined indicates a challenge was declined; terminal
	ChallengeStateDeclined ChallengeState = "Declined"

	// ChallengeStateCompleted indicates a match result has been recorded; terminal
	ChallengeStateCompleted ChallengeState = "Completed"
)

// ChallengeType represents the size of a challenge
type ChallengeType string

const (
	// ChallengeTypeSingles is a one-on-one challenge
	ChallengeTypeSingles ChallengeType = "Singles"

	// ChallengeTypeDoubles is a two-on-two challenge
	ChallengeTypeDoubles ChallengeType = "Doubles"
)

// Challenge represents a proposed match between two sides
type Challenge struct {
	// ID is the unique identifier for the challenge
	ID string

	// State is the current lifecycle state of the challenge
	State ChallengeState

	// Type is Singles or Doubles
	Type ChallengeType

	// Date is when the challenge was created
	Date time.Time

	// Challenger holds the proposing side, in the order it was named.
	// Length 1 for Singles, 2 for Doubles.
	Challenger []string

	// Challenged holds the receiving side, same sizing as Challenger.
	Challenged []string
}

// IsActive reports whether the challenge still occupies its
// participants' CurrentChallengeID slot.
func (c *Challenge) IsActive() bool {
	return c.State == ChallengeStateProposed || c.State == ChallengeStateAccepted
}

// Participants returns every player name on the challenge,
// challenger side first.
func (c *Challenge) Participants() []string {
	names := make([]string, 0, len(c.Challenger)+len(c.Challenged))
	names = append(names, c.Challenger...)
	names = append(names, c.Challenged...)
	return names
}

// Sides splits the participants around the named player: the side the
// player is on, then the opposing side. Team order is preserved exactly
// as stored. Returns false when the player is not on the challenge.
func (c *Challenge) Sides(name string) (with []string, against []string, ok bool) {
	for _, n := range c.Challenger {
		if n == name {
			return c.Challenger, c.Challenged, true
		}
	}
	for _, n := range c.Challenged {
		if n == name {
			return c.Challenged, c.Challenger, true
		}
	}
	return nil, nil, false
}
