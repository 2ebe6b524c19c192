package teststubs

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestStubChannelTracksCalls(t *testing.T) {
	err := errors.New("boom")
	s := &StubChannel{Err: err}
	if _, got := s.Send(context.Background(), "team list Red"); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if s.Calls.Load() != 1 {
		t.Fatalf("expected call count 1, got %d", s.Calls.Load())
	}
	if cmds := s.Commands(); len(cmds) != 1 || cmds[0] != "team list Red" {
		t.Fatalf("unexpected commands %v", cmds)
	}
}

func TestStubChannelConnectLifecycle(t *testing.T) {
	s := &StubChannel{}
	if err := s.Connect(context.Background()); err != nil || !s.Connected() {
		t.Fatalf("expected connected, err=%v", err)
	}
	_ = s.Close()
	if s.Connected() || s.Closed() != 1 {
		t.Fatalf("expected closed once, connected=%v closed=%d", s.Connected(), s.Closed())
	}
	failing := &StubChannel{ConnectErr: errors.New("refused")}
	if err := failing.Connect(context.Background()); err == nil || failing.Connected() {
		t.Fatalf("expected connect failure")
	}
}

func TestStubChannelErrOnAndNotify(t *testing.T) {
	boom := errors.New("boom")
	s := &StubChannel{
		Responses: map[string][]string{"team list Red": {"ok"}},
		ErrOn:     map[string]error{"team list Blue": boom},
		Notify:    make(chan struct{}),
	}
	if lines, err := s.Send(context.Background(), "team list Red"); err != nil || len(lines) != 1 {
		t.Fatalf("expected scripted response, got %v %v", lines, err)
	}
	select {
	case <-s.Notify:
	default:
		t.Fatalf("expected notify closed after first send")
	}
	if _, err := s.Send(context.Background(), "team list Blue"); !errors.Is(err, boom) {
		t.Fatalf("expected per-command error, got %v", err)
	}
}

func TestNewMatchChannelScriptsListings(t *testing.T) {
	s := NewMatchChannel(MatchTeam{
		Name:    "Red",
		Points:  "4",
		Players: []MatchPlayer{{Name: "Alex", Objectives: []MatchObjective{Obj("Health", "18")}}},
	})
	team := s.Responses["team list Red"]
	if len(team) != 1 || team[0] != "Team [Red] has 2 members: Alex, Red" {
		t.Fatalf("unexpected team listing %v", team)
	}
	own := s.Responses["scoreboard players list Red"]
	if len(own) != 1 || !strings.Contains(own[0], "[Points]: 4") {
		t.Fatalf("unexpected team score listing %v", own)
	}
	alex := s.Responses["scoreboard players list Alex"]
	if len(alex) != 1 || alex[0] != "Alex has 1 score:[Health]: 18" {
		t.Fatalf("unexpected player listing %v", alex)
	}
}
