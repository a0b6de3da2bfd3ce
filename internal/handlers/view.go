package handlers

import (
	"net/http"

	"github.com/hiroshinaka/Threadly/internal/services"
	"github.com/hiroshinaka/Threadly/internal/utils"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the session cookie set by the sessions middleware;
// its opaque value doubles as the anonymous-viewer identifier for view
// dedup.
const SessionCookieName = "threadly_session"

type ViewHandler struct{}

func NewViewHandler() *ViewHandler {
	return &ViewHandler{}
}

// Record logs a view hit for a thread. The event log is deduped per
// viewer/session/address inside the trailing window; the cached view_count
// is a raw hit counter and bumps on every call.
func (h *ViewHandler) Record(c *gin.Context) {
	in := services.ViewInput{
		ThreadID: utils.StringToUint(c.Param("threadId")),
	}

	if user := currentUser(c); user != nil {
		viewerID := user.ID
		in.ViewerID = &viewerID
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		in.SessionID = &cookie
	}
	if ipHash := utils.HashIP(c.ClientIP()); ipHash != "" {
		in.IPHash = &ipHash
	}

	recorded, viewCount, err := services.RecordView(in)
	if err != nil {
		fail(c, http.StatusInternalServerError, "DB error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "recorded": recorded, "view_count": viewCount})
}
