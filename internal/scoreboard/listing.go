package scoreboard

// Kind selects which response grammar Parse applies.
type Kind string

const (
	KindScore Kind = "score"
	KindTeam  Kind = "team"
)

// Listing is implemented by every parsed response record.
type Listing interface {
	// Name is the entity or team the listing describes.
	Name() string
}

// ScoreListing holds the objectives tracked for one scoreboard entity.
// Count mirrors the server-declared objective count and is not checked against Scores.
type ScoreListing struct {
	Entity string
	Count  int
	Scores map[string]Value
}

func (s ScoreListing) Name() string { return s.Entity }

// Lookup returns the value of an objective if the server reported it.
func (s ScoreListing) Lookup(objective string) (Value, bool) {
	if s.Scores == nil {
		return Value{}, false
	}
	v, ok := s.Scores[objective]
	return v, ok
}

// IntOr returns the objective truncated to an int, or def when it is absent or not numeric.
func (s ScoreListing) IntOr(objective string, def int) int {
	v, ok := s.Lookup(objective)
	if !ok {
		return def
	}
	n, ok := v.Int()
	if !ok {
		return def
	}
	return n
}

// TeamListing holds the declared members of one team, in server order.
type TeamListing struct {
	TeamID  string
	Count   int
	Members []string
}

func (t TeamListing) Name() string { return t.TeamID }
