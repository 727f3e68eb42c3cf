package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"link_librarian/internal/event"
	"link_librarian/internal/logger"
)

// HandleButtons is the interactive-callback endpoint, hit when someone clicks
// Prev or Next under a search result. The original query rides in the
// callback id and the requested page in the clicked action's value, which is
// everything needed to rebuild the message. The response body replaces the
// clicked message in place instead of posting a new one.
func (h *SlackHandler) HandleButtons(c *gin.Context) {
	log := logger.GetLogger()

	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		log.Error("empty request body")
		c.String(http.StatusBadRequest, "empty request body")
		return
	}

	env, err := event.Normalize(body)
	if err != nil {
		log.Error("failed to parse action payload", zap.Error(err))
		c.String(http.StatusBadRequest, "Malformed event payload")
		return
	}

	if env.Token != h.verificationToken {
		log.Warn("invalid verification token received", zap.String("token", env.Token))
		c.String(http.StatusForbidden, "Invalid verification token received")
		return
	}

	cred, err := h.resolveTenant(c.Request.Context(), env)
	if err != nil {
		log.Warn("failed to resolve tenant", zap.Error(err), zap.String("team_id", tenantID(env)))
		c.String(http.StatusUnauthorized, "unknown workspace")
		return
	}

	if len(env.Actions) == 0 {
		c.String(http.StatusBadRequest, "no action in payload")
		return
	}
	page, err := strconv.Atoi(env.Actions[0].Value)
	if err != nil {
		log.Error("bad page value in action", zap.String("value", env.Actions[0].Value))
		c.String(http.StatusBadRequest, "bad page value")
		return
	}

	reply := h.Respond(c.Request.Context(), cred.TeamID, env.CallbackID, page)
	reply.ReplaceOriginal = true
	c.JSON(http.StatusOK, reply)
}
