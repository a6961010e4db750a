package elo

import (
	"math"

	"github.com/KirkDiggler/pongbot/internal/models"
)

// DefaultDeltaTau is the rating-confidence decay applied per recorded match
const DefaultDeltaTau = 0.94

// Calculator computes rating changes for recorded matches
type Calculator struct {
	deltaTau float64
}

// Config for the rating calculator
type Config struct {
	// DeltaTau overrides the confidence decay constant; zero means the default
	DeltaTau float64
}

// New creates a new rating calculator
func New(cfg *Config) *Calculator {
	deltaTau := DefaultDeltaTau
	if cfg != nil && cfg.DeltaTau != 0 {
		deltaTau = cfg.DeltaTau
	}

	return &Calculator{
		deltaTau: deltaTau,
	}
}

// TeamRating returns the composite rating of a two-player side,
// the arithmetic mean of both ratings. It is never persisted.
func (c *Calculator) TeamRating(a, b *models.Player) float64 {
	return float64(a.Elo+b.Elo) / 2
}

// ApplySingles records a singles result: the winner gains what the
// loser gives up, and both players' tau advances.
func (c *Calculator) ApplySingles(winner, loser *models.Player) {
	gain := expectedGain(float64(winner.Elo), float64(loser.Elo))
	c.award(winner, gain)
	c.penalize(loser, gain)
}

// ApplyDoubles records a doubles result. The gain is computed from the
// two team composite ratings; each player is then adjusted as if they
// had played a singles match against the opposing composite.
func (c *Calculator) ApplyDoubles(w1, w2, l1, l2 *models.Player) {
	gain := expectedGain(c.TeamRating(w1, w2), c.TeamRating(l1, l2))
	c.award(w1, gain)
	c.award(w2, gain)
	c.penalize(l1, gain)
	c.penalize(l2, gain)
}

// expectedGain is the classic Elo expectation over a 400-point scale,
// expressed as points out of 100.
func expectedGain(winnerElo, loserElo float64) float64 {
	return 100 - math.Round(100/(1+math.Pow(10, (loserElo-winnerElo)/400)))
}

func (c *Calculator) award(p *models.Player, gain float64) {
	p.Elo += c.delta(p, gain)
}

func (c *Calculator) penalize(p *models.Player, gain float64) {
	p.Elo -= c.delta(p, gain)
}

// delta advances the player's tau and scales the gain by the decayed
// K-factor. Established players (higher tau) move less per match.
func (c *Calculator) delta(p *models.Player, gain float64) int {
	p.Tau += 0.5
	return int(math.Round(gain * math.Pow(c.deltaTau, p.Tau)))
}
