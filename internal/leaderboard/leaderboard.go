// Package leaderboard renders ranked player standings for the chat
// front-end.
package leaderboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KirkDiggler/pongbot/internal/models"
)

// FormatPlayer renders a single player summary line, for example
// "ZhangJike: 2 wins 1 loss (elo: 96)".
func FormatPlayer(p *models.Player) string {
	return fmt.Sprintf("%s: %d %s %d %s (elo: %d)",
		p.Name,
		p.Wins, pluralize(p.Wins, "win", "wins"),
		p.Losses, pluralize(p.Losses, "loss", "losses"),
		p.Elo)
}

// FormatStandings renders one numbered line per player. The input is
// assumed to already be in display order; SortPlayers produces it.
// Competition ranking applies: entries tied with the previous entry on
// elo and wins repeat its rank, and ranks skip after a tie block.
func FormatStandings(players []*models.Player) string {
	var b strings.Builder
	rank := 1
	for i, p := range players {
		if i > 0 && (players[i-1].Elo != p.Elo || players[i-1].Wins != p.Wins) {
			rank = i + 1
		}
		fmt.Fprintf(&b, "%d. %s\n", rank, FormatPlayer(p))
	}
	return b.String()
}

// SortPlayers orders players for display: highest elo first, wins as
// the tie breaker. The sort is stable so equal records keep their
// roster order.
func SortPlayers(players []*models.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Elo != players[j].Elo {
			return players[i].Elo > players[j].Elo
		}
		return players[i].Wins > players[j].Wins
	})
}

func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
