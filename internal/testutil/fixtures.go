package testutil

import (
	"time"

	"github.com/preston-bernstein/ktowers-overlay/internal/domain"
	"github.com/preston-bernstein/ktowers-overlay/internal/scoreboard"
)

// SamplePlayer builds a player on team with the given raw objective values.
func SamplePlayer(team, name string, objectives map[string]string) *domain.Player {
	scores := make(map[string]scoreboard.Value, len(objectives))
	for k, v := range objectives {
		scores[k] = scoreboard.ParseValue(v)
	}
	return &domain.Player{
		Name: name,
		Team: team,
		Scores: scoreboard.ScoreListing{
			Entity: name,
			Count:  len(scores),
			Scores: scores,
		},
	}
}

// SampleSnapshot returns two teams, Red and Blue, with one player each.
// Blue's player is spectated.
func SampleSnapshot() domain.Snapshot {
	return domain.Snapshot{
		TakenAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Teams: []*domain.Team{
			{
				Name:   "Red",
				Points: 3,
				Players: []*domain.Player{
					SamplePlayer("Red", "Alex", map[string]string{
						"Health": "18", "Player Points": "4", "Kills": "2", "Deaths": "1",
					}),
				},
			},
			{
				Name:   "Blue",
				Points: 5,
				Players: []*domain.Player{
					SamplePlayer("Blue", "Jordan", map[string]string{
						"Health": "25", "beingSpectated": "1",
					}),
				},
			},
		},
	}
}
