package models

import (
	"encoding/json"
	"strings"
	"time"
)

type ContentKind int

const (
	ContentText ContentKind = iota
	ContentRemoved
)

// RemovalMarker is the JSON object written into comment.text when a comment
// is soft-deleted. The row and its replies stay in place; renderers
// special-case this shape.
type RemovalMarker struct {
	Removed   bool      `json:"removed"`
	Reason    string    `json:"reason,omitempty"`
	RemovedBy uint      `json:"removed_by"`
	RemovedAt time.Time `json:"removed_at"`
}

// CommentContent is the decoded form of the comment.text column: either the
// author's plain text or a removal marker.
type CommentContent struct {
	Kind   ContentKind
	Text   string
	Marker RemovalMarker
}

func TextContent(text string) CommentContent {
	return CommentContent{Kind: ContentText, Text: text}
}

func RemovedContent(removedBy uint, reason string, removedAt time.Time) CommentContent {
	return CommentContent{
		Kind: ContentRemoved,
		Marker: RemovalMarker{
			Removed:   true,
			Reason:    reason,
			RemovedBy: removedBy,
			RemovedAt: removedAt,
		},
	}
}

// ParseCommentContent decodes a raw text column value. Anything that is not
// a well-formed removal marker is plain text, including author-written
// strings that merely look like JSON.
func ParseCommentContent(raw string) CommentContent {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		var m RemovalMarker
		if err := json.Unmarshal([]byte(trimmed), &m); err == nil && m.Removed {
			return CommentContent{Kind: ContentRemoved, Marker: m}
		}
	}
	return TextContent(raw)
}

// Encode returns the value to store in the text column.
func (c CommentContent) Encode() (string, error) {
	switch c.Kind {
	case ContentRemoved:
		b, err := json.Marshal(c.Marker)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return c.Text, nil
	}
}

func (c CommentContent) IsRemoved() bool {
	return c.Kind == ContentRemoved
}

// MarshalJSON renders plain text as a JSON string and removed content as the
// marker object, matching what the web client expects in the `text` field.
func (c CommentContent) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case ContentRemoved:
		return json.Marshal(c.Marker)
	default:
		return json.Marshal(c.Text)
	}
}
