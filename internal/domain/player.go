package domain

import (
	"context"
	"fmt"

	"github.com/preston-bernstein/ktowers-overlay/internal/scoreboard"
)

// Objective names tracked on the game server.
const (
	ObjectiveHealth       = "Health"
	ObjectivePlayerPoints = "Player Points"
	ObjectiveKills        = "Kills"
	ObjectiveDeaths       = "Deaths"
	ObjectiveSpectated    = "beingSpectated"
	ObjectiveTeamPoints   = "Points"
)

// ScoreboardClient is the query surface the entity model needs from the game server.
type ScoreboardClient interface {
	ListScores(ctx context.Context, entity string) (scoreboard.ScoreListing, error)
	ListTeam(ctx context.Context, team string) (scoreboard.TeamListing, error)
}

// Player is one scoreboard entity on a team.
type Player struct {
	Name string
	// Team names the enclosing team. It is assigned by the team after the
	// player is built and does not own the player.
	Team   string
	Scores scoreboard.ScoreListing

	client ScoreboardClient
}

// NewPlayer builds a player without touching the server.
func NewPlayer(client ScoreboardClient, name string) *Player {
	return &Player{Name: name, client: client}
}

// Update replaces the player's scores with a fresh listing.
func (p *Player) Update(ctx context.Context) error {
	if p.client == nil {
		return fmt.Errorf("player %s: scoreboard client not configured", p.Name)
	}
	listing, err := p.client.ListScores(ctx, p.Name)
	if err != nil {
		return fmt.Errorf("player %s: %w", p.Name, err)
	}
	p.Scores = listing
	return nil
}

func (p *Player) Health() int { return p.Scores.IntOr(ObjectiveHealth, 0) }
func (p *Player) Points() int { return p.Scores.IntOr(ObjectivePlayerPoints, 0) }
func (p *Player) Kills() int  { return p.Scores.IntOr(ObjectiveKills, 0) }
func (p *Player) Deaths() int { return p.Scores.IntOr(ObjectiveDeaths, 0) }

// BeingSpectated reports whether the server flags this player as the camera target.
func (p *Player) BeingSpectated() bool {
	v, ok := p.Scores.Lookup(ObjectiveSpectated)
	if !ok {
		return false
	}
	f, ok := v.Float()
	return ok && f == 1
}

// PAM formats points/kills/deaths for the overlay stat file.
func (p *Player) PAM() string {
	return fmt.Sprintf("%d/%d/%d", p.Points(), p.Kills(), p.Deaths())
}

func (p *Player) String() string {
	return fmt.Sprintf("%s %s %d | PAM %s | Spectated %t", p.Team, p.Name, p.Health(), p.PAM(), p.BeingSpectated())
}
