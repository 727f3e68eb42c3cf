package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"link_librarian/internal/logger"
	"link_librarian/internal/model"
)

// botScope includes channels:history so freshly joined channels can be
// backfilled into the index.
const botScope = "bot,channels:history"

const welcomeTemplate = "Hello <@%s>! Thanks for installing me. Just invite me into any channel, and I will start indexing links that people post there. Message me to search through those links!"

func (h *SlackHandler) addToSlackButton() string {
	return fmt.Sprintf(`
    <a href="https://slack.com/oauth/authorize?scope=%s&client_id=%s&redirect_uri=%s">
      <img alt="Add to Slack" height="40" width="139" src="https://platform.slack-edge.com/img/add_to_slack.png"/>
    </a>
  `, botScope, h.clientID, h.redirectURI)
}

// HandleRoot redirects visitors to the install page
func (h *SlackHandler) HandleRoot(c *gin.Context) {
	c.Redirect(http.StatusFound, "/begin_auth")
}

// HandleBeginAuth shows the "Add to Slack" button, which links to Slack's
// authorization page for this app.
func (h *SlackHandler) HandleBeginAuth(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, h.addToSlackButton())
}

// HandleFinishAuth completes the OAuth exchange: Slack redirects here with a
// code, the code is traded for workspace tokens, and the tenant's credential
// record is written. A second install for the same team overwrites the first;
// last write wins.
func (h *SlackHandler) HandleFinishAuth(c *gin.Context) {
	log := logger.GetLogger()

	resp, err := h.oauthAccess(h.clientID, h.clientSecret, c.Query("code"), h.redirectURI)
	if err != nil {
		log.Error("oauth exchange failed", zap.Error(err))
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusForbidden, "Auth failed! Reason: %s<br/>%s", err.Error(), h.addToSlackButton())
		return
	}

	cred := &model.TenantCredential{
		TeamID:          resp.TeamID,
		UserAccessToken: resp.AccessToken,
		BotUserID:       resp.Bot.BotUserID,
		BotAccessToken:  resp.Bot.BotAccessToken,
	}
	if err := h.credentials.Save(c.Request.Context(), cred); err != nil {
		log.Error("failed to store credential", zap.String("team_id", resp.TeamID), zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to store workspace credentials")
		return
	}

	// greet the installer in a DM; failure here doesn't fail the install
	chat := h.newChatAPI(cred.BotAccessToken)
	_, _, err = chat.PostMessage(
		resp.UserID,
		slack.MsgOptionText(fmt.Sprintf(welcomeTemplate, resp.UserID), false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		log.Warn("failed to post welcome message", zap.String("user_id", resp.UserID), zap.Error(err))
	}

	c.String(http.StatusOK, "Yay! Auth succeeded! You're awesome!")
}
