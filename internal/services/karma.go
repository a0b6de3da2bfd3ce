package services

import (
	"errors"
	"fmt"

	"github.com/hiroshinaka/Threadly/internal/db"
	"github.com/hiroshinaka/Threadly/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TargetKind selects which table a vote lands on.
type TargetKind string

const (
	TargetThread  TargetKind = "thread"
	TargetComment TargetKind = "comment"
)

// ErrInvalidVote rejects vote values outside {-1, 0, +1} before any
// transaction is opened.
var ErrInvalidVote = errors.New("vote value must be -1, 0 or 1")

// VoteResult reports the cached karma after the vote and the delta that was
// applied, so clients can reconcile optimistic UI state.
type VoteResult struct {
	Karma int `json:"karma"`
	Delta int `json:"delta"`
}

type voteOp int

const (
	opNone voteOp = iota
	opInsert
	opDelete
	opUpdate
)

// resolveVote maps (current reaction, requested value) to the row operation
// and the delta to apply to the cached karma counter:
//
//	absent + 0   -> no-op
//	absent + ±1  -> insert, delta = value
//	v + 0        -> delete, delta = -v
//	v + v        -> no-op (idempotent re-vote)
//	v + other ±1 -> update, delta = value - v
func resolveVote(cur int, exists bool, value int) (voteOp, int) {
	if !exists {
		if value == 0 {
			return opNone, 0
		}
		return opInsert, value
	}
	switch {
	case value == 0:
		return opDelete, -cur
	case value == cur:
		return opNone, 0
	default:
		return opUpdate, value - cur
	}
}

// resolvePresenceVote is the degraded table for the legacy presence-only
// comment_reaction shape, where an existing row reads as +1 and a downvote
// cannot be represented: a downvote while absent is a no-op, and both 0 and
// -1 while present clear the row.
func resolvePresenceVote(exists bool, value int) (voteOp, int) {
	if !exists {
		if value == 1 {
			return opInsert, 1
		}
		return opNone, 0
	}
	if value == 1 {
		return opNone, 0
	}
	return opDelete, -1
}

// CastVote atomically applies a user's vote intent to a thread or comment
// and keeps the cached karma counter in step with the reaction rows. The
// existing reaction row (or its absence) is locked FOR UPDATE so concurrent
// votes by the same user on the same target serialize.
func CastVote(userID, targetID uint, kind TargetKind, value int) (VoteResult, error) {
	if value < -1 || value > 1 {
		return VoteResult{}, ErrInvalidVote
	}
	switch kind {
	case TargetThread:
		return castThreadVote(userID, targetID, value)
	case TargetComment:
		return castCommentVote(userID, targetID, value)
	default:
		return VoteResult{}, fmt.Errorf("unknown vote target kind %q", kind)
	}
}

func castThreadVote(userID, threadID uint, value int) (VoteResult, error) {
	var res VoteResult
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var reaction models.ThreadReaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND thread_id = ?", userID, threadID).
			First(&reaction).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		exists := err == nil

		op, delta := resolveVote(reaction.Value, exists, value)
		switch op {
		case opInsert:
			if err := tx.Create(&models.ThreadReaction{
				UserID:   userID,
				ThreadID: threadID,
				Value:    value,
			}).Error; err != nil {
				return err
			}
		case opDelete:
			if err := tx.Delete(&reaction).Error; err != nil {
				return err
			}
		case opUpdate:
			if err := tx.Model(&reaction).UpdateColumn("value", value).Error; err != nil {
				return err
			}
		}

		if delta != 0 {
			if err := tx.Model(&models.Thread{}).
				Where("thread_id = ?", threadID).
				UpdateColumn("karma", gorm.Expr("COALESCE(karma, 0) + ?", delta)).
				Error; err != nil {
				return err
			}
		}

		// Re-read the cached value so the caller sees the committed state.
		// A missing thread yields zero rows and karma 0.
		karma := 0
		if err := tx.Model(&models.Thread{}).
			Where("thread_id = ?", threadID).
			Select("karma").
			Scan(&karma).Error; err != nil {
			return err
		}
		res = VoteResult{Karma: karma, Delta: delta}
		return nil
	})
	return res, err
}

func castCommentVote(userID, commentID uint, value int) (VoteResult, error) {
	caps := DetectCapabilities()
	if caps.CommentReaction == ReactionPresenceOnly {
		return castPresenceCommentVote(userID, commentID, value, caps)
	}

	var res VoteResult
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var reaction models.CommentReaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND comment_id = ?", userID, commentID).
			First(&reaction).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		exists := err == nil

		op, delta := resolveVote(reaction.Value, exists, value)
		switch op {
		case opInsert:
			if err := tx.Create(&models.CommentReaction{
				UserID:    userID,
				CommentID: commentID,
				Value:     value,
			}).Error; err != nil {
				return err
			}
		case opDelete:
			if err := tx.Delete(&reaction).Error; err != nil {
				return err
			}
		case opUpdate:
			if err := tx.Model(&reaction).UpdateColumn("value", value).Error; err != nil {
				return err
			}
		}

		karma, err := applyCommentKarma(tx, commentID, delta, caps)
		if err != nil {
			return err
		}
		res = VoteResult{Karma: karma, Delta: delta}
		return nil
	})
	return res, err
}

// castPresenceCommentVote handles the legacy table shape with raw SQL since
// the CommentReaction model's value column does not exist there.
func castPresenceCommentVote(userID, commentID uint, value int, caps Capabilities) (VoteResult, error) {
	var res VoteResult
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Raw(
			"SELECT comment_reaction_id FROM comment_reaction WHERE user_id = ? AND comment_id = ? LIMIT 1 FOR UPDATE",
			userID, commentID,
		).Scan(&ids).Error; err != nil {
			return err
		}
		exists := len(ids) > 0

		op, delta := resolvePresenceVote(exists, value)
		switch op {
		case opInsert:
			if err := tx.Exec(
				"INSERT INTO comment_reaction (user_id, comment_id) VALUES (?, ?)",
				userID, commentID,
			).Error; err != nil {
				return err
			}
		case opDelete:
			if err := tx.Exec(
				"DELETE FROM comment_reaction WHERE comment_reaction_id = ?",
				ids[0],
			).Error; err != nil {
				return err
			}
		}

		karma, err := applyCommentKarma(tx, commentID, delta, caps)
		if err != nil {
			return err
		}
		res = VoteResult{Karma: karma, Delta: delta}
		return nil
	})
	return res, err
}

// applyCommentKarma bumps the cached karma column when the schema has one,
// or falls back to aggregating the reaction rows when it does not. Returns
// the karma the caller should report.
func applyCommentKarma(tx *gorm.DB, commentID uint, delta int, caps Capabilities) (int, error) {
	if caps.CommentKarmaColumn {
		if delta != 0 {
			if err := tx.Model(&models.Comment{}).
				Where("comment_id = ?", commentID).
				UpdateColumn("karma", gorm.Expr("COALESCE(karma, 0) + ?", delta)).
				Error; err != nil {
				return 0, err
			}
		}
		karma := 0
		if err := tx.Model(&models.Comment{}).
			Where("comment_id = ?", commentID).
			Select("karma").
			Scan(&karma).Error; err != nil {
			return 0, err
		}
		return karma, nil
	}

	karma := 0
	query := "SELECT COALESCE(SUM(value), 0) FROM comment_reaction WHERE comment_id = ?"
	if caps.CommentReaction == ReactionPresenceOnly {
		query = "SELECT COUNT(*) FROM comment_reaction WHERE comment_id = ?"
	}
	if err := tx.Raw(query, commentID).Scan(&karma).Error; err != nil {
		return 0, err
	}
	return karma, nil
}
