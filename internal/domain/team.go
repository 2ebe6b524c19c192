package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/preston-bernstein/ktowers-overlay/internal/scoreboard"
)

// Team is a server team with its roster rebuilt on every update.
type Team struct {
	Name    string
	Points  int
	Players []*Player
	Listing scoreboard.TeamListing

	client ScoreboardClient
}

// NewTeam builds an empty team without touching the server.
func NewTeam(client ScoreboardClient, name string) *Team {
	return &Team{Name: name, client: client}
}

// Update fetches the member listing, the team's own points, then every member
// other than the team's own scoreboard entity, in listing order.
func (t *Team) Update(ctx context.Context) error {
	if t.client == nil {
		return fmt.Errorf("team %s: scoreboard client not configured", t.Name)
	}

	listing, err := t.client.ListTeam(ctx, t.Name)
	if err != nil {
		return fmt.Errorf("team %s: %w", t.Name, err)
	}

	own, err := t.client.ListScores(ctx, t.Name)
	if err != nil {
		return fmt.Errorf("team %s: %w", t.Name, err)
	}

	players := make([]*Player, 0, len(listing.Members))
	seen := make(map[string]struct{}, len(listing.Members))
	for _, member := range listing.Members {
		if member == t.Name {
			continue
		}
		if _, dup := seen[member]; dup {
			continue
		}
		seen[member] = struct{}{}

		p := NewPlayer(t.client, member)
		if err := p.Update(ctx); err != nil {
			return fmt.Errorf("team %s: %w", t.Name, err)
		}
		p.Team = t.Name
		players = append(players, p)
	}

	t.Listing = listing
	t.Points = own.IntOr(ObjectiveTeamPoints, 0)
	t.Players = players
	return nil
}

func (t *Team) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Team %s has %d points;", t.Name, t.Points))
	for _, p := range t.Players {
		sb.WriteString("\n\t")
		sb.WriteString(p.String())
	}
	return sb.String()
}
