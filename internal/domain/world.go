package domain

import (
	"context"
	"time"
)

// Snapshot is the full set of teams produced by one update cycle.
type Snapshot struct {
	Teams   []*Team
	TakenAt time.Time
}

// Spectated returns the player the server flags as spectated. When more than
// one is flagged, the last one in team/roster order wins.
func (s Snapshot) Spectated() (*Player, bool) {
	var found *Player
	for _, t := range s.Teams {
		for _, p := range t.Players {
			if p.BeingSpectated() {
				found = p
			}
		}
	}
	return found, found != nil
}

// Spectating returns the spectated player's name, or "" when nobody is spectated.
func (s Snapshot) Spectating() string {
	if p, ok := s.Spectated(); ok {
		return p.Name
	}
	return ""
}

// PlayerCount sums the roster sizes of every team.
func (s Snapshot) PlayerCount() int {
	n := 0
	for _, t := range s.Teams {
		n += len(t.Players)
	}
	return n
}

// World rebuilds every configured team from scratch on each Update.
type World struct {
	client    ScoreboardClient
	teamNames []string
	now       func() time.Time
}

// NewWorld tracks the given teams, in order.
func NewWorld(client ScoreboardClient, teamNames []string) *World {
	names := make([]string, len(teamNames))
	copy(names, teamNames)
	return &World{
		client:    client,
		teamNames: names,
		now:       time.Now,
	}
}

// TeamNames returns the configured team order.
func (w *World) TeamNames() []string {
	out := make([]string, len(w.teamNames))
	copy(out, w.teamNames)
	return out
}

// Update refreshes each team sequentially and returns the resulting snapshot.
// Any failure aborts the whole update.
func (w *World) Update(ctx context.Context) (Snapshot, error) {
	teams := make([]*Team, 0, len(w.teamNames))
	for _, name := range w.teamNames {
		if err := ctx.Err(); err != nil {
			return Snapshot{}, err
		}
		t := NewTeam(w.client, name)
		if err := t.Update(ctx); err != nil {
			return Snapshot{}, err
		}
		teams = append(teams, t)
	}
	return Snapshot{Teams: teams, TakenAt: w.now()}, nil
}
