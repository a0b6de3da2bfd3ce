package services

import (
	"time"

	"github.com/hiroshinaka/Threadly/internal/db"
	"github.com/hiroshinaka/Threadly/internal/models"
)

// CommentNode is one comment in the nested reply structure returned to the
// client. Text is either the author's string or a removal marker object.
type CommentNode struct {
	ID        uint                  `json:"comment_id"`
	ThreadID  uint                  `json:"thread_id"`
	ParentID  *uint                 `json:"parent_id"`
	AuthorID  uint                  `json:"author_id"`
	Username  string                `json:"username"`
	Content   models.CommentContent `json:"text"`
	Karma     int                   `json:"karma"`
	UserVote  int                   `json:"user_vote"`
	CreatedAt time.Time             `json:"created_at"`
	Replies   []*CommentNode        `json:"replies"`
}

// CommentRow is one flat comment row as fetched for tree assembly.
type CommentRow struct {
	ID        uint
	ParentID  *uint
	ThreadID  uint
	AuthorID  uint
	Username  string
	Text      string
	Karma     int
	CreatedAt time.Time
}

// AssembleTree nests flat rows (ordered oldest-first) into a forest in one
// pass. Sibling order follows row order. A row whose parent is not in the
// set (e.g. deleted between fetches) is dropped, not an error. votes maps
// comment id to the viewer's vote; absent means 0.
func AssembleTree(rows []CommentRow, votes map[uint]int) []*CommentNode {
	byID := make(map[uint]*CommentNode, len(rows))
	for i := range rows {
		r := rows[i]
		byID[r.ID] = &CommentNode{
			ID:        r.ID,
			ThreadID:  r.ThreadID,
			ParentID:  r.ParentID,
			AuthorID:  r.AuthorID,
			Username:  r.Username,
			Content:   models.ParseCommentContent(r.Text),
			Karma:     r.Karma,
			UserVote:  votes[r.ID],
			CreatedAt: r.CreatedAt,
			Replies:   []*CommentNode{},
		}
	}

	roots := []*CommentNode{}
	for i := range rows {
		r := rows[i]
		node := byID[r.ID]
		if r.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := byID[*r.ParentID]
		if !ok {
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}
	return roots
}

// BuildCommentTree fetches a thread's comments oldest-first and returns the
// nested forest. When viewerID is non-zero the viewer's own votes are
// attached from a single batched query.
func BuildCommentTree(threadID uint, viewerID uint) ([]*CommentNode, error) {
	caps := DetectCapabilities()

	rows, err := fetchCommentRows(threadID, caps)
	if err != nil {
		return nil, err
	}

	votes, err := fetchViewerVotes(viewerID, rows, caps)
	if err != nil {
		return nil, err
	}

	return AssembleTree(rows, votes), nil
}

func fetchCommentRows(threadID uint, caps Capabilities) ([]CommentRow, error) {
	var rows []CommentRow
	q := db.DB.Table("comment AS c").
		Joins(`JOIN "user" u ON u.id = c.author_id`).
		Where("c.thread_id = ?", threadID).
		Order("c.created_at ASC")

	if caps.CommentKarmaColumn {
		q = q.Select("c.comment_id AS id, c.parent_id, c.thread_id, c.author_id, u.username, c.text, COALESCE(c.karma, 0) AS karma, c.created_at")
	} else {
		// Legacy fallback: no cached column, aggregate the reaction rows.
		karmaExpr := "SUM(value)"
		if caps.CommentReaction == ReactionPresenceOnly {
			karmaExpr = "COUNT(*)"
		}
		q = q.Select("c.comment_id AS id, c.parent_id, c.thread_id, c.author_id, u.username, c.text, COALESCE(cr.karma, 0) AS karma, c.created_at").
			Joins("LEFT JOIN (SELECT comment_id, " + karmaExpr + " AS karma FROM comment_reaction GROUP BY comment_id) cr ON cr.comment_id = c.comment_id")
	}

	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// fetchViewerVotes loads the viewer's reactions for exactly the fetched
// comment ids in one query, bounding the read to O(1) round trips.
func fetchViewerVotes(viewerID uint, rows []CommentRow, caps Capabilities) (map[uint]int, error) {
	if viewerID == 0 || len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uint, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}

	votes := make(map[uint]int, len(ids))
	if caps.CommentReaction == ReactionPresenceOnly {
		var present []uint
		if err := db.DB.Table("comment_reaction").
			Where("user_id = ? AND comment_id IN ?", viewerID, ids).
			Pluck("comment_id", &present).Error; err != nil {
			return nil, err
		}
		for _, id := range present {
			votes[id] = 1
		}
		return votes, nil
	}

	var reactions []models.CommentReaction
	if err := db.DB.
		Where("user_id = ? AND comment_id IN ?", viewerID, ids).
		Find(&reactions).Error; err != nil {
		return nil, err
	}
	for _, r := range reactions {
		votes[r.CommentID] = r.Value
	}
	return votes, nil
}

// CountNodes walks a forest and returns the number of nodes it contains.
func CountNodes(forest []*CommentNode) int {
	n := 0
	for _, node := range forest {
		n += 1 + CountNodes(node.Replies)
	}
	return n
}
