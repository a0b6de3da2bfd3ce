package services

import (
	"sync"

	"github.com/hiroshinaka/Threadly/internal/db"
	"github.com/hiroshinaka/Threadly/internal/logger"
	"github.com/hiroshinaka/Threadly/internal/models"
)

// ReactionSchema describes the physical shape of the comment_reaction table.
type ReactionSchema int

const (
	// ReactionValueCapable: rows carry a signed value column.
	ReactionValueCapable ReactionSchema = iota
	// ReactionPresenceOnly: legacy shape, row existence means +1 and no
	// value is stored.
	ReactionPresenceOnly
)

// Capabilities holds the schema facts resolved once at first use. Legacy
// databases attached without migration may lack the comment value and karma
// columns; all comment vote/karma code branches on these flags instead of
// probing per call.
type Capabilities struct {
	CommentReaction    ReactionSchema
	CommentKarmaColumn bool
}

var (
	capsOnce     sync.Once
	capabilities Capabilities
)

// DetectCapabilities probes the live schema on first call and caches the
// result for the lifetime of the process.
func DetectCapabilities() Capabilities {
	capsOnce.Do(func() {
		capabilities = Capabilities{
			CommentReaction:    ReactionValueCapable,
			CommentKarmaColumn: true,
		}
		m := db.DB.Migrator()
		if !m.HasColumn(&models.CommentReaction{}, "value") {
			capabilities.CommentReaction = ReactionPresenceOnly
		}
		if !m.HasColumn(&models.Comment{}, "karma") {
			capabilities.CommentKarmaColumn = false
		}
		logger.Info("comment schema capabilities resolved",
			logger.Int("reaction_schema", int(capabilities.CommentReaction)),
			logger.String("karma_column", boolWord(capabilities.CommentKarmaColumn)))
	})
	return capabilities
}

func boolWord(b bool) string {
	if b {
		return "present"
	}
	return "missing"
}
