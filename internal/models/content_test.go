package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseCommentContentPlainText(t *testing.T) {
	c := ParseCommentContent("hello world")
	if c.IsRemoved() {
		t.Fatal("plain text parsed as removed")
	}
	if c.Text != "hello world" {
		t.Errorf("text = %q, want %q", c.Text, "hello world")
	}
}

func TestParseCommentContentJSONLookalike(t *testing.T) {
	// Author-written text that happens to be JSON must stay plain text.
	for _, raw := range []string{
		`{"removed": false}`,
		`{"foo": "bar"}`,
		`{not actually json`,
		`  {"reason": "x"}`,
	} {
		c := ParseCommentContent(raw)
		if c.IsRemoved() {
			t.Errorf("%q parsed as removal marker", raw)
		}
		if c.Text != raw {
			t.Errorf("%q: text = %q, want input preserved", raw, c.Text)
		}
	}
}

func TestRemovedContentRoundTrip(t *testing.T) {
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	original := RemovedContent(42, "harassment", at)

	encoded, err := original.Encode()
	if err != nil {
		t.Fatal(err)
	}

	parsed := ParseCommentContent(encoded)
	if !parsed.IsRemoved() {
		t.Fatal("encoded marker did not parse as removed")
	}
	if parsed.Marker.RemovedBy != 42 {
		t.Errorf("removed_by = %d, want 42", parsed.Marker.RemovedBy)
	}
	if parsed.Marker.Reason != "harassment" {
		t.Errorf("reason = %q, want %q", parsed.Marker.Reason, "harassment")
	}
	if !parsed.Marker.RemovedAt.Equal(at) {
		t.Errorf("removed_at = %v, want %v", parsed.Marker.RemovedAt, at)
	}
}

func TestCommentContentMarshalJSON(t *testing.T) {
	plain, err := json.Marshal(TextContent("just text"))
	if err != nil {
		t.Fatal(err)
	}
	if string(plain) != `"just text"` {
		t.Errorf("plain content marshals to %s, want a JSON string", plain)
	}

	removed, err := json.Marshal(RemovedContent(7, "", time.Unix(1700000000, 0).UTC()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(removed), `"removed":true`) {
		t.Errorf("removed content marshals to %s, want a marker object", removed)
	}
	if strings.Contains(string(removed), `"reason"`) {
		t.Errorf("empty reason should be omitted, got %s", removed)
	}
}
