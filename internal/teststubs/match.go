package teststubs

import (
	"fmt"

	"github.com/preston-bernstein/ktowers-overlay/internal/rcon/fixture"
)

// MatchObjective is one objective/value pair reported for an entity.
type MatchObjective = fixture.Objective

// MatchPlayer describes one scripted player and the objectives the server reports for them.
type MatchPlayer struct {
	Name       string
	Objectives []MatchObjective
}

// MatchTeam describes one scripted team.
type MatchTeam struct {
	Name    string
	Points  string
	Players []MatchPlayer
}

// NewMatchChannel scripts a channel answering team and score listings for the given teams.
// Each team's own entity is listed as a member, like on the live server.
func NewMatchChannel(teams ...MatchTeam) *StubChannel {
	responses := make(map[string][]string)
	for _, t := range teams {
		members := make([]string, 0, len(t.Players)+1)
		for _, p := range t.Players {
			members = append(members, p.Name)
			responses[fmt.Sprintf("scoreboard players list %s", p.Name)] = []string{fixture.ScoreLine(p.Name, p.Objectives...)}
		}
		members = append(members, t.Name)
		responses[fmt.Sprintf("team list %s", t.Name)] = []string{fixture.TeamLine(t.Name, members...)}

		var own []MatchObjective
		if t.Points != "" {
			own = append(own, MatchObjective{Name: "Points", Value: t.Points})
		}
		responses[fmt.Sprintf("scoreboard players list %s", t.Name)] = []string{fixture.ScoreLine(t.Name, own...)}
	}
	return &StubChannel{Responses: responses}
}

// Obj is shorthand for a MatchObjective.
func Obj(name, value string) MatchObjective {
	return MatchObjective{Name: name, Value: value}
}
