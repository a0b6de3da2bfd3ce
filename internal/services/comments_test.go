package services

import (
	"testing"
	"time"

	"github.com/hiroshinaka/Threadly/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func row(id uint, parent *uint, text string) CommentRow {
	return CommentRow{
		ID:        id,
		ParentID:  parent,
		ThreadID:  7,
		AuthorID:  1,
		Username:  "alice",
		Text:      text,
		CreatedAt: time.Unix(int64(1700000000+id), 0),
	}
}

func TestAssembleTreeNesting(t *testing.T) {
	rows := []CommentRow{
		row(1, nil, "first"),
		row(2, uintPtr(1), "reply to first"),
		row(3, uintPtr(2), "deep reply"),
		row(4, nil, "second root"),
		row(5, uintPtr(1), "another reply to first"),
	}

	forest := AssembleTree(rows, nil)

	if len(forest) != 2 {
		t.Fatalf("got %d roots, want 2", len(forest))
	}
	if CountNodes(forest) != len(rows) {
		t.Errorf("tree holds %d nodes, want %d", CountNodes(forest), len(rows))
	}

	first := forest[0]
	if first.ID != 1 || len(first.Replies) != 2 {
		t.Fatalf("root 1: id=%d replies=%d, want id=1 replies=2", first.ID, len(first.Replies))
	}
	// Sibling order follows row order (oldest first).
	if first.Replies[0].ID != 2 || first.Replies[1].ID != 5 {
		t.Errorf("replies of 1 ordered (%d, %d), want (2, 5)", first.Replies[0].ID, first.Replies[1].ID)
	}
	if got := first.Replies[0].Replies; len(got) != 1 || got[0].ID != 3 {
		t.Errorf("comment 2 should nest comment 3, got %+v", got)
	}
	if forest[1].ID != 4 || len(forest[1].Replies) != 0 {
		t.Errorf("root 4: id=%d replies=%d, want id=4 replies=0", forest[1].ID, len(forest[1].Replies))
	}
}

func TestAssembleTreeDropsOrphans(t *testing.T) {
	rows := []CommentRow{
		row(1, nil, "root"),
		row(2, uintPtr(1), "child"),
		row(3, uintPtr(99), "parent no longer exists"),
	}

	forest := AssembleTree(rows, nil)

	if len(forest) != 1 {
		t.Fatalf("got %d roots, want 1", len(forest))
	}
	if CountNodes(forest) != 2 {
		t.Errorf("orphan should be dropped: got %d nodes, want 2", CountNodes(forest))
	}
	if forest[0].ID != 1 || len(forest[0].Replies) != 1 || forest[0].Replies[0].ID != 2 {
		t.Errorf("unexpected shape after orphan drop: %+v", forest[0])
	}
}

func TestAssembleTreeEmptyInput(t *testing.T) {
	forest := AssembleTree(nil, nil)
	if forest == nil {
		t.Fatal("empty input should yield an empty forest, not nil")
	}
	if len(forest) != 0 {
		t.Errorf("got %d roots, want 0", len(forest))
	}
}

func TestAssembleTreeViewerVotes(t *testing.T) {
	rows := []CommentRow{
		row(1, nil, "a"),
		row(2, uintPtr(1), "b"),
		row(3, nil, "c"),
	}
	votes := map[uint]int{1: 1, 2: -1}

	forest := AssembleTree(rows, votes)

	if forest[0].UserVote != 1 {
		t.Errorf("comment 1 user_vote = %d, want 1", forest[0].UserVote)
	}
	if forest[0].Replies[0].UserVote != -1 {
		t.Errorf("comment 2 user_vote = %d, want -1", forest[0].Replies[0].UserVote)
	}
	if forest[1].UserVote != 0 {
		t.Errorf("unvoted comment 3 user_vote = %d, want 0", forest[1].UserVote)
	}
}

func TestAssembleTreeRemovedMarker(t *testing.T) {
	marker := models.RemovedContent(9, "spam", time.Unix(1700000500, 0).UTC())
	encoded, err := marker.Encode()
	if err != nil {
		t.Fatal(err)
	}

	rows := []CommentRow{
		row(1, nil, encoded),
		row(2, uintPtr(1), "reply survives removal"),
	}

	forest := AssembleTree(rows, nil)

	if !forest[0].Content.IsRemoved() {
		t.Error("removed comment should carry a removal marker")
	}
	if len(forest[0].Replies) != 1 {
		t.Errorf("removed comment kept %d replies, want 1", len(forest[0].Replies))
	}
	if forest[0].Replies[0].Content.IsRemoved() {
		t.Error("reply to a removed comment should keep its text")
	}
}
