package utils

import (
	"strings"
	"testing"
)

func TestBasicSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  What's   up?!  ", "what-s-up"},
		{"already-a-slug", "already-a-slug"},
		{"Go 1.25 Released", "go-1-25-released"},
		{"---", ""},
		{"", ""},
		{"CamelCaseTitle", "camelcasetitle"},
	}
	for _, tt := range tests {
		if got := BasicSlug(tt.in); got != tt.want {
			t.Errorf("BasicSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBasicSlugLength(t *testing.T) {
	got := BasicSlug(strings.Repeat("a", 500))
	if len(got) > 200 {
		t.Errorf("slug length %d exceeds 200", len(got))
	}
	if got != strings.Repeat("a", 200) {
		t.Errorf("long input not truncated cleanly: %q...", got[:20])
	}
}
