package fixture

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Objective is one bracketed name/value pair in a score response.
type Objective struct {
	Name  string
	Value string
}

// ScoreLine renders a score listing the way the server prints it.
func ScoreLine(entity string, objectives ...Objective) string {
	if len(objectives) == 0 {
		return fmt.Sprintf("%s has no scores", entity)
	}
	noun := "scores"
	if len(objectives) == 1 {
		noun = "score"
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s has %d %s:", entity, len(objectives), noun))
	for _, o := range objectives {
		sb.WriteString(fmt.Sprintf("[%s]: %s", o.Name, o.Value))
	}
	return sb.String()
}

// TeamLine renders a team member listing the way the server prints it.
func TeamLine(team string, members ...string) string {
	if len(members) == 0 {
		return fmt.Sprintf("There are no members on team [%s]", team)
	}
	noun := "members"
	if len(members) == 1 {
		noun = "member"
	}
	return fmt.Sprintf("Team [%s] has %d %s: %s", team, len(members), noun, strings.Join(members, ", "))
}

type player struct {
	name   string
	offset int
}

// Channel is an in-process stand-in for the game server. It answers score and
// team listings for two teams with values that drift over time so an overlay
// can be laid out without a live match.
type Channel struct {
	now   func() time.Time
	teams map[string][]player
	order []string

	mu        sync.Mutex
	connected bool
}

// New returns a fixture with teams Red and Blue, two players each.
func New() *Channel {
	return &Channel{
		now: time.Now,
		teams: map[string][]player{
			"Red":  {{name: "Alex", offset: 0}, {name: "Sam", offset: 7}},
			"Blue": {{name: "Jordan", offset: 13}, {name: "Riley", offset: 29}},
		},
		order: []string{"Red", "Blue"},
	}
}

func (c *Channel) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = true
	return nil
}

func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	return nil
}

// Send answers "scoreboard players list <entity>" and "team list <team>".
// Anything else gets the server's unknown-command reply.
func (c *Channel) Send(ctx context.Context, command string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	connected := c.connected
	c.mu.Unlock()
	if !connected {
		return nil, fmt.Errorf("fixture: not connected")
	}

	fields := strings.Fields(command)
	switch {
	case len(fields) == 4 && fields[0] == "scoreboard" && fields[1] == "players" && fields[2] == "list":
		return []string{c.scores(fields[3])}, nil
	case len(fields) == 3 && fields[0] == "team" && fields[1] == "list":
		return []string{c.members(fields[2])}, nil
	default:
		return []string{fmt.Sprintf("Unknown or incomplete command, see below for error: %s", command)}, nil
	}
}

func (c *Channel) members(team string) string {
	roster, ok := c.teams[team]
	if !ok {
		return fmt.Sprintf("Unknown team '%s'", team)
	}
	names := make([]string, 0, len(roster)+1)
	for _, p := range roster {
		names = append(names, p.name)
	}
	// The team's own scoreboard entity is a member, like on the live server.
	names = append(names, team)
	return TeamLine(team, names...)
}

func (c *Channel) scores(entity string) string {
	tick := int(c.now().Unix())
	for i, team := range c.order {
		if entity == team {
			return ScoreLine(entity, Objective{Name: "Points", Value: fmt.Sprint((tick/10 + i*3) % 50)})
		}
	}

	idx := 0
	for _, team := range c.order {
		for _, p := range c.teams[team] {
			if p.name == entity {
				return c.playerScores(p, idx, tick)
			}
			idx++
		}
	}
	return ScoreLine(entity)
}

func (c *Channel) playerScores(p player, idx, tick int) string {
	health := (tick + p.offset) % 41
	spectated := 0
	if (tick/10)%4 == idx {
		spectated = 1
	}
	return ScoreLine(p.name,
		Objective{Name: "Health", Value: fmt.Sprint(health)},
		Objective{Name: "Player Points", Value: fmt.Sprint((tick/30 + p.offset) % 20)},
		Objective{Name: "Kills", Value: fmt.Sprint((tick/60 + idx) % 10)},
		Objective{Name: "Deaths", Value: fmt.Sprint((tick/90 + p.offset) % 10)},
		Objective{Name: "beingSpectated", Value: fmt.Sprint(spectated)},
	)
}
