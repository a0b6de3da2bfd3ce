package services

import (
	"strings"
	"time"

	"github.com/hiroshinaka/Threadly/internal/db"
	"github.com/hiroshinaka/Threadly/internal/models"

	"gorm.io/gorm"
)

// DefaultViewWindow is the trailing dedup window for the view-event log.
const DefaultViewWindow = 60 * time.Minute

// ViewInput carries the identifiers available for a view hit. Nil fields
// are treated as absent; with no identifiers at all the event is always
// recorded.
type ViewInput struct {
	ThreadID  uint
	ViewerID  *uint
	SessionID *string
	IPHash    *string
	Window    time.Duration
}

// RecordView dedups the event log against recent hits from the same viewer,
// session, or address, and bumps the cached view counter. The counter
// counts raw hits and is incremented whether or not an event is recorded:
// the event log approximates unique visits, the counter does not.
func RecordView(in ViewInput) (recorded bool, viewCount int, err error) {
	window := in.Window
	if window <= 0 {
		window = DefaultViewWindow
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		record := true

		var conds []string
		var args []interface{}
		if in.ViewerID != nil {
			conds = append(conds, "viewer_id = ?")
			args = append(args, *in.ViewerID)
		}
		if in.SessionID != nil {
			conds = append(conds, "session_id = ?")
			args = append(args, *in.SessionID)
		}
		if in.IPHash != nil {
			conds = append(conds, "ip_hash = ?")
			args = append(args, *in.IPHash)
		}

		if len(conds) > 0 {
			var count int64
			if err := tx.Model(&models.ViewEvent{}).
				Where("thread_id = ? AND viewed_at >= ?", in.ThreadID, time.Now().Add(-window)).
				Where("("+strings.Join(conds, " OR ")+")", args...).
				Count(&count).Error; err != nil {
				return err
			}
			record = count == 0
		}

		if record {
			event := models.ViewEvent{
				ThreadID:  in.ThreadID,
				ViewerID:  in.ViewerID,
				SessionID: in.SessionID,
				IPHash:    in.IPHash,
			}
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Thread{}).
			Where("thread_id = ?", in.ThreadID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).
			Error; err != nil {
			return err
		}

		count := 0
		if err := tx.Model(&models.Thread{}).
			Where("thread_id = ?", in.ThreadID).
			Select("view_count").
			Scan(&count).Error; err != nil {
			return err
		}

		recorded = record
		viewCount = count
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return recorded, viewCount, nil
}
