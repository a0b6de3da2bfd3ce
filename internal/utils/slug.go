package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"
)

const maxSlugLen = 200

// BasicSlug lowercases the input and collapses every run of
// non-alphanumeric characters into a single dash.
func BasicSlug(input string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "-")
	}
	return slug
}

// UniqueSlug derives a slug from base and appends -1, -2, ... until it does
// not collide in table.column. Falls back to a timestamp suffix if the
// counter runs away.
func UniqueSlug(db *gorm.DB, table, column, base string) (string, error) {
	root := BasicSlug(base)
	if root == "" {
		root = fmt.Sprintf("item-%d", time.Now().UnixMilli())
	}

	slug := root
	for attempt := 1; ; attempt++ {
		var count int64
		if err := db.Table(table).Where(column+" = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		if attempt > 1000 {
			return fmt.Sprintf("%s-%d", truncate(root, 180), time.Now().UnixMilli()), nil
		}
		slug = fmt.Sprintf("%s-%d", root, attempt)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
