package scoreboard

import (
	"context"
	"fmt"
)

// Sender issues one command and returns the response lines.
type Sender interface {
	Send(ctx context.Context, command string) ([]string, error)
}

// Client issues scoreboard and team queries over a command channel and parses the replies.
type Client struct {
	sender Sender
}

// NewClient wraps a command channel.
func NewClient(sender Sender) *Client {
	return &Client{sender: sender}
}

// ScoreCommand is the command listing every objective tracked for entity.
func ScoreCommand(entity string) string {
	return fmt.Sprintf("scoreboard players list %s", entity)
}

// TeamCommand is the command listing the members of team.
func TeamCommand(team string) string {
	return fmt.Sprintf("team list %s", team)
}

// ListScores fetches and parses the score listing for entity.
func (c *Client) ListScores(ctx context.Context, entity string) (ScoreListing, error) {
	lines, err := c.send(ctx, ScoreCommand(entity))
	if err != nil {
		return ScoreListing{}, err
	}
	listing, err := ParseScores(lines)
	if err != nil {
		return ScoreListing{}, fmt.Errorf("scores for %s: %w", entity, err)
	}
	return listing, nil
}

// ListTeam fetches and parses the member listing for team.
func (c *Client) ListTeam(ctx context.Context, team string) (TeamListing, error) {
	lines, err := c.send(ctx, TeamCommand(team))
	if err != nil {
		return TeamListing{}, err
	}
	listing, err := ParseTeam(lines)
	if err != nil {
		return TeamListing{}, fmt.Errorf("members of %s: %w", team, err)
	}
	return listing, nil
}

func (c *Client) send(ctx context.Context, command string) ([]string, error) {
	if c == nil || c.sender == nil {
		return nil, fmt.Errorf("scoreboard client not configured")
	}
	lines, err := c.sender.Send(ctx, command)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", command, err)
	}
	return lines, nil
}
