package services

import (
	"testing"
)

// voteSim replays the reaction state table for one target, tracking the
// cached karma and each user's reaction row the way the database would.
type voteSim struct {
	karma     int
	reactions map[uint]int // user id -> current value, absent = no row
}

func newVoteSim() *voteSim {
	return &voteSim{reactions: make(map[uint]int)}
}

func (s *voteSim) cast(userID uint, value int) (karma, delta int) {
	cur, exists := s.reactions[userID]
	op, delta := resolveVote(cur, exists, value)
	switch op {
	case opInsert, opUpdate:
		s.reactions[userID] = value
	case opDelete:
		delete(s.reactions, userID)
	}
	s.karma += delta
	return s.karma, delta
}

func (s *voteSim) reactionSum() int {
	sum := 0
	for _, v := range s.reactions {
		sum += v
	}
	return sum
}

func TestResolveVoteTable(t *testing.T) {
	tests := []struct {
		name      string
		cur       int
		exists    bool
		value     int
		wantOp    voteOp
		wantDelta int
	}{
		{"absent noop", 0, false, 0, opNone, 0},
		{"absent upvote", 0, false, 1, opInsert, 1},
		{"absent downvote", 0, false, -1, opInsert, -1},
		{"clear upvote", 1, true, 0, opDelete, -1},
		{"clear downvote", -1, true, 0, opDelete, 1},
		{"repeat upvote", 1, true, 1, opNone, 0},
		{"repeat downvote", -1, true, -1, opNone, 0},
		{"flip up to down", 1, true, -1, opUpdate, -2},
		{"flip down to up", -1, true, 1, opUpdate, 2},
	}
	for _, tt := range tests {
		op, delta := resolveVote(tt.cur, tt.exists, tt.value)
		if op != tt.wantOp || delta != tt.wantDelta {
			t.Errorf("%s: resolveVote(%d, %v, %d) = (%d, %d), want (%d, %d)",
				tt.name, tt.cur, tt.exists, tt.value, op, delta, tt.wantOp, tt.wantDelta)
		}
	}
}

func TestVoteIdempotence(t *testing.T) {
	sim := newVoteSim()

	karma, delta := sim.cast(1, 1)
	if karma != 1 || delta != 1 {
		t.Fatalf("first upvote: got karma=%d delta=%d", karma, delta)
	}
	karma, delta = sim.cast(1, 1)
	if karma != 1 || delta != 0 {
		t.Errorf("repeated upvote should be a no-op: got karma=%d delta=%d", karma, delta)
	}
}

func TestVoteToggleRestoresKarma(t *testing.T) {
	sim := newVoteSim()
	sim.cast(2, -1)
	sim.cast(3, 1)
	before := sim.karma

	sim.cast(1, 1)
	karma, delta := sim.cast(1, 0)
	if karma != before {
		t.Errorf("toggle-off should restore karma %d, got %d", before, karma)
	}
	if delta != -1 {
		t.Errorf("toggle-off delta = %d, want -1", delta)
	}
}

func TestVoteKarmaMatchesReactionSum(t *testing.T) {
	// Arbitrary interleaving of users and values; cached karma must always
	// equal the sum of the surviving reaction rows.
	sim := newVoteSim()
	sequence := []struct {
		user  uint
		value int
	}{
		{1, 1}, {2, -1}, {1, -1}, {3, 1}, {2, 0}, {1, -1}, {3, -1}, {1, 0}, {2, 1},
	}
	for i, step := range sequence {
		sim.cast(step.user, step.value)
		if sim.karma != sim.reactionSum() {
			t.Fatalf("step %d: cached karma %d != reaction sum %d", i, sim.karma, sim.reactionSum())
		}
	}
}

func TestVoteScenarioTwoUsers(t *testing.T) {
	// A upvotes (0->1), B downvotes (1->0), A removes vote (0->-1).
	sim := newVoteSim()

	if karma, _ := sim.cast(1, 1); karma != 1 {
		t.Fatalf("after A upvote karma = %d, want 1", karma)
	}
	if karma, _ := sim.cast(2, -1); karma != 0 {
		t.Fatalf("after B downvote karma = %d, want 0", karma)
	}
	karma, delta := sim.cast(1, 0)
	if karma != -1 || delta != -1 {
		t.Errorf("after A removes vote: karma=%d delta=%d, want karma=-1 delta=-1", karma, delta)
	}
}

func TestResolvePresenceVote(t *testing.T) {
	tests := []struct {
		name      string
		exists    bool
		value     int
		wantOp    voteOp
		wantDelta int
	}{
		{"absent noop", false, 0, opNone, 0},
		{"absent upvote inserts", false, 1, opInsert, 1},
		{"absent downvote cannot be stored", false, -1, opNone, 0},
		{"present upvote noop", true, 1, opNone, 0},
		{"present clear deletes", true, 0, opDelete, -1},
		{"present downvote deletes", true, -1, opDelete, -1},
	}
	for _, tt := range tests {
		op, delta := resolvePresenceVote(tt.exists, tt.value)
		if op != tt.wantOp || delta != tt.wantDelta {
			t.Errorf("%s: resolvePresenceVote(%v, %d) = (%d, %d), want (%d, %d)",
				tt.name, tt.exists, tt.value, op, delta, tt.wantOp, tt.wantDelta)
		}
	}
}

func TestCastVoteRejectsBadValue(t *testing.T) {
	if _, err := CastVote(1, 1, TargetThread, 2); err != ErrInvalidVote {
		t.Errorf("CastVote with value 2 returned %v, want ErrInvalidVote", err)
	}
	if _, err := CastVote(1, 1, TargetComment, -5); err != ErrInvalidVote {
		t.Errorf("CastVote with value -5 returned %v, want ErrInvalidVote", err)
	}
}
