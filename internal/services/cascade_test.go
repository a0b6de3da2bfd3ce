package services

import (
	"sort"
	"testing"
)

func link(id uint, parent *uint) CommentLink {
	return CommentLink{ID: id, ParentID: parent}
}

func TestSubtreeIDsClosure(t *testing.T) {
	//       1
	//      / \
	//     2   3
	//    /   / \
	//   4   5   6
	//           |
	//           7
	links := []CommentLink{
		link(1, nil),
		link(2, uintPtr(1)),
		link(3, uintPtr(1)),
		link(4, uintPtr(2)),
		link(5, uintPtr(3)),
		link(6, uintPtr(3)),
		link(7, uintPtr(6)),
		link(8, nil), // unrelated root stays untouched
	}

	got := SubtreeIDs(links, 3)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	want := []uint{3, 5, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("subtree of 3 = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("subtree of 3 = %v, want %v", got, want)
		}
	}

	if full := SubtreeIDs(links, 1); len(full) != 7 {
		t.Errorf("subtree of 1 has %d ids, want 7", len(full))
	}
}

func TestSubtreeIDsRootFirst(t *testing.T) {
	links := []CommentLink{
		link(1, nil),
		link(2, uintPtr(1)),
	}
	got := SubtreeIDs(links, 1)
	if len(got) == 0 || got[0] != 1 {
		t.Errorf("root must come first, got %v", got)
	}
}

func TestSubtreeIDsLeaf(t *testing.T) {
	links := []CommentLink{
		link(1, nil),
		link(2, uintPtr(1)),
	}
	got := SubtreeIDs(links, 2)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("leaf subtree = %v, want [2]", got)
	}
}

func TestSubtreeIDsMissingRoot(t *testing.T) {
	links := []CommentLink{
		link(1, nil),
		link(2, uintPtr(1)),
	}
	if got := SubtreeIDs(links, 42); got != nil {
		t.Errorf("missing root should yield nil, got %v", got)
	}
	if got := SubtreeIDs(nil, 1); got != nil {
		t.Errorf("empty set should yield nil, got %v", got)
	}
}
