package scoreboard

import (
	"strconv"
	"strings"
)

const (
	noScoresToken      = "no"
	emptyTeamPrefix    = "There are no members on team "
	memberSeparator    = ", "
	scoreCountPosition = 2
	teamCountPosition  = 3
)

// Parse applies the grammar for kind to the first line of a raw response.
// Additional lines are ignored.
func Parse(kind Kind, lines []string) (Listing, error) {
	switch kind {
	case KindScore:
		l, err := ParseScores(lines)
		if err != nil {
			return nil, err
		}
		return l, nil
	case KindTeam:
		l, err := ParseTeam(lines)
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return nil, ErrUnknownKind
	}
}

// ParseScores parses a "scoreboard players list <entity>" response:
//
//	Alex has 2 scores:[Health]: 18[Points]: 4.5
//	Sam has no scores
func ParseScores(lines []string) (ScoreListing, error) {
	if len(lines) == 0 {
		return ScoreListing{}, ErrEmptyResponse
	}
	line := lines[0]

	parts := strings.Split(line, ":")
	head := strings.Fields(parts[0])
	if len(head) <= scoreCountPosition {
		return ScoreListing{}, malformed(KindScore, line, "short header")
	}

	listing := ScoreListing{
		Entity: head[0],
		Scores: map[string]Value{},
	}
	if head[scoreCountPosition] == noScoresToken {
		return listing, nil
	}

	count, err := strconv.Atoi(head[scoreCountPosition])
	if err != nil {
		return ScoreListing{}, malformed(KindScore, line, "objective count is not an integer")
	}
	listing.Count = count

	// Colons only separate objective names from values; drop them.
	tail := strings.Join(parts[1:], "")
	fragments := strings.Split(tail, "[")
	for _, fragment := range fragments[1:] {
		objective, raw, ok := strings.Cut(fragment, "]")
		if !ok {
			return ScoreListing{}, malformed(KindScore, line, "unterminated objective name")
		}
		listing.Scores[objective] = ParseValue(raw)
	}
	return listing, nil
}

// ParseTeam parses a "team list <team>" response:
//
//	Team [Red] has 3 members: Alex, Sam, Red
//	There are no members on team [Red]
func ParseTeam(lines []string) (TeamListing, error) {
	if len(lines) == 0 {
		return TeamListing{}, ErrEmptyResponse
	}
	line := lines[0]

	if strings.HasPrefix(line, emptyTeamPrefix) {
		id, ok := bracketed(line)
		if !ok {
			return TeamListing{}, malformed(KindTeam, line, "missing team name")
		}
		return TeamListing{TeamID: id, Members: []string{}}, nil
	}

	head, tail, found := strings.Cut(line, ":")
	if !found {
		return TeamListing{}, malformed(KindTeam, line, "missing member list")
	}

	id, ok := bracketed(head)
	if !ok {
		return TeamListing{}, malformed(KindTeam, line, "missing team name")
	}

	fields := strings.Fields(head)
	if len(fields) <= teamCountPosition {
		return TeamListing{}, malformed(KindTeam, line, "short header")
	}
	count, err := strconv.Atoi(fields[teamCountPosition])
	if err != nil {
		return TeamListing{}, malformed(KindTeam, line, "member count is not an integer")
	}

	members := []string{}
	if tail = strings.TrimSpace(tail); tail != "" {
		members = strings.Split(tail, memberSeparator)
	}

	return TeamListing{
		TeamID:  id,
		Count:   count,
		Members: members,
	}, nil
}

// bracketed returns the text between the first '[' and the next ']'.
func bracketed(s string) (string, bool) {
	_, rest, ok := strings.Cut(s, "[")
	if !ok {
		return "", false
	}
	inner, _, ok := strings.Cut(rest, "]")
	if !ok {
		return "", false
	}
	return inner, true
}
