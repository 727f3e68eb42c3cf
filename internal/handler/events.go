package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"link_librarian/internal/event"
	"link_librarian/internal/logger"
	"link_librarian/internal/model"
)

// ErrMissingTenant means no tenant id could be extracted from the envelope.
var ErrMissingTenant = errors.New("no tenant id in envelope")

// HandleEvents is the Events API endpoint. The order here is deliberate:
// parse, verify the shared token, answer the one-time handshake, and only
// then resolve the tenant — the url_verification envelope carries no team id,
// and nothing side-effecting may run before the token check passes.
func (h *SlackHandler) HandleEvents(c *gin.Context) {
	log := logger.GetLogger()

	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		log.Error("empty request body")
		c.String(http.StatusBadRequest, "empty request body")
		return
	}

	env, err := event.Normalize(body)
	if err != nil {
		log.Error("failed to parse event payload", zap.Error(err))
		c.String(http.StatusBadRequest, "Malformed event payload")
		return
	}

	if env.Token != h.verificationToken {
		log.Warn("invalid verification token received", zap.String("token", env.Token))
		c.String(http.StatusForbidden, "Invalid verification token received")
		return
	}

	// one-time endpoint verification handshake: echo the challenge verbatim
	if event.Classify(env, "url_verification") {
		c.String(http.StatusOK, env.Challenge)
		return
	}

	cred, err := h.resolveTenant(c.Request.Context(), env)
	if err != nil {
		log.Warn("failed to resolve tenant", zap.Error(err), zap.String("team_id", tenantID(env)))
		c.String(http.StatusUnauthorized, "unknown workspace")
		return
	}

	if event.Classify(env, "message") {
		h.handleMessage(c.Request.Context(), env, cred)
	} else {
		log.Debug("unsupported event kind", zap.String("kind", event.EffectiveKind(env)))
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// tenantID extracts the team id from the envelope. Events put it at the top
// level; message actions nest it under team.id.
func tenantID(env *model.EventEnvelope) string {
	if env.TeamID != "" {
		return env.TeamID
	}
	if env.Team != nil {
		return env.Team.ID
	}
	return ""
}

// resolveTenant loads the install record for the envelope's team, failing
// closed when the team is unknown.
func (h *SlackHandler) resolveTenant(ctx context.Context, env *model.EventEnvelope) (*model.TenantCredential, error) {
	id := tenantID(env)
	if id == "" {
		return nil, ErrMissingTenant
	}
	return h.credentials.Find(ctx, id)
}

// handleMessage routes one message event. Indexing runs detached from the
// request; query replies post back into the originating channel.
func (h *SlackHandler) handleMessage(ctx context.Context, env *model.EventEnvelope, cred *model.TenantCredential) {
	msg := model.ChatMessage{
		Author:    env.Event.User,
		Channel:   env.Event.Channel,
		Text:      env.Event.Text,
		Timestamp: env.Event.TS,
	}

	action, query := RouteMessage(msg, cred)
	switch action {
	case ActionIndex:
		// fire and forget: the webhook must be acknowledged quickly and the
		// per-link pipelines carry their own timeouts
		go h.indexLinks(context.Background(), cred, msg)
	case ActionQuery:
		reply := h.Respond(ctx, cred.TeamID, query, 0)
		reply.Channel = msg.Channel
		h.post(cred, reply)
	}
}

// post delivers a reply. Delivery failures are logged, never propagated: the
// request is already handled.
func (h *SlackHandler) post(cred *model.TenantCredential, reply *model.ReplyMessage) {
	chat := h.newChatAPI(cred.BotAccessToken)
	_, _, err := chat.PostMessage(
		reply.Channel,
		slack.MsgOptionText(reply.Text, false),
		slack.MsgOptionAttachments(reply.Attachments...),
		slack.MsgOptionDisableLinkUnfurl(),
		slack.MsgOptionDisableMediaUnfurl(),
	)
	if err != nil {
		logger.GetLogger().Error("failed to post message",
			zap.String("channel", reply.Channel), zap.Error(err))
	}
}
