package services

import (
	"errors"
	"time"

	"github.com/hiroshinaka/Threadly/internal/db"
	"github.com/hiroshinaka/Threadly/internal/models"

	"gorm.io/gorm"
)

// CommentLink is the minimal parent pointer used for closure computation.
type CommentLink struct {
	ID       uint
	ParentID *uint
}

// SubtreeIDs returns root plus every comment reachable from it via parent
// links, breadth-first. Returns nil when root is not in the set.
func SubtreeIDs(links []CommentLink, root uint) []uint {
	children := make(map[uint][]uint, len(links))
	present := make(map[uint]bool, len(links))
	for _, l := range links {
		present[l.ID] = true
		if l.ParentID != nil {
			children[*l.ParentID] = append(children[*l.ParentID], l.ID)
		}
	}
	if !present[root] {
		return nil
	}

	ids := []uint{root}
	for i := 0; i < len(ids); i++ {
		ids = append(ids, children[ids[i]]...)
	}
	return ids
}

// DeleteThread permanently removes a thread and every row referencing it,
// in dependency order, inside one transaction. Deleting a thread that does
// not exist is a harmless no-op.
func DeleteThread(threadID uint) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).
			Select("comment_id").
			Where("thread_id = ?", threadID)
		if err := tx.Where("comment_id IN (?)", commentIDs).
			Delete(&models.CommentReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("thread_id = ?", threadID).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("thread_id = ?", threadID).
			Delete(&models.ThreadReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("thread_id = ?", threadID).
			Delete(&models.ThreadMedia{}).Error; err != nil {
			return err
		}
		if err := tx.Where("thread_id = ?", threadID).
			Delete(&models.ViewEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Thread{}, threadID).Error
	})
}

// DeleteCommentSubtree hard-deletes a comment and all of its descendants,
// plus their reactions, in one transaction. The closure is computed with an
// in-memory walk over one flat fetch of the thread's parent pointers, which
// keeps the behavior identical across stores without recursive queries.
// Returns the number of comments deleted; a missing root yields 0, nil.
func DeleteCommentSubtree(commentID uint) (int, error) {
	var root models.Comment
	err := db.DB.Select("comment_id", "thread_id").First(&root, commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var links []CommentLink
	if err := db.DB.Model(&models.Comment{}).
		Select("comment_id AS id, parent_id").
		Where("thread_id = ?", root.ThreadID).
		Scan(&links).Error; err != nil {
		return 0, err
	}

	ids := SubtreeIDs(links, commentID)
	if len(ids) == 0 {
		return 0, nil
	}

	deleted := 0
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id IN ?", ids).
			Delete(&models.CommentReaction{}).Error; err != nil {
			return err
		}
		res := tx.Where("comment_id IN ?", ids).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		deleted = int(res.RowsAffected)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// SoftDeleteComment replaces a comment's text with a removal marker and
// resets its karma, leaving the row and its replies in place. This is the
// path the moderation UI uses; DeleteCommentSubtree is the full removal.
func SoftDeleteComment(commentID, removedBy uint, reason string) error {
	content := models.RemovedContent(removedBy, reason, time.Now().UTC())
	encoded, err := content.Encode()
	if err != nil {
		return err
	}

	updates := map[string]interface{}{"text": encoded}
	if DetectCapabilities().CommentKarmaColumn {
		updates["karma"] = 0
	}
	return db.DB.Model(&models.Comment{}).
		Where("comment_id = ?", commentID).
		Updates(updates).Error
}
