package handlers

import (
	"errors"
	"net/http"

	"github.com/hiroshinaka/Threadly/internal/services"
	"github.com/hiroshinaka/Threadly/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

type voteRequest struct {
	Value int `json:"value"`
}

// VoteThread applies {value: -1|0|1} to a thread for the logged-in user.
func (h *VoteHandler) VoteThread(c *gin.Context) {
	h.vote(c, utils.StringToUint(c.Param("threadId")), services.TargetThread)
}

// VoteComment applies {value: -1|0|1} to a comment for the logged-in user.
func (h *VoteHandler) VoteComment(c *gin.Context) {
	h.vote(c, utils.StringToUint(c.Param("commentId")), services.TargetComment)
}

func (h *VoteHandler) vote(c *gin.Context, targetID uint, kind services.TargetKind) {
	user := currentUser(c)

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	result, err := services.CastVote(user.ID, targetID, kind, req.Value)
	if err != nil {
		if errors.Is(err, services.ErrInvalidVote) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, "Vote failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "karma": result.Karma, "delta": result.Delta})
}
