package models

// Player represents a competitor in the league
type Player struct {
	// Name is the unique user name of the player
	Name string

	// Wins is the number of recorded match wins
	Wins int

	// Losses is the number of recorded match losses
	Losses int

	// Elo is the player's current rating
	Elo int

	// Tau tracks how many matches have fed the rating estimate;
	// it grows by half a point per recorded match
	Tau float64

	// CurrentChallengeID is the ID of the player's active challenge,
	// empty when the player has no challenge in flight
	CurrentChallengeID string
}

// HasActiveChallenge reports whether the player is part of a
// proposed or accepted challenge.
func (p *Player) HasActiveChallenge() bool {
	return p.CurrentChallengeID != ""
}
