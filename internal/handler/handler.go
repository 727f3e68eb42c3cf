package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"

	"link_librarian/internal/config"
	"link_librarian/internal/search"
	"link_librarian/internal/storage"
	"link_librarian/internal/webpage"
)

// ChatAPI is the outbound Slack surface the handlers need. *slack.Client
// satisfies it; tests substitute fakes.
type ChatAPI interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
	AddReaction(name string, item slack.ItemRef) error
}

// OAuthAccessFunc exchanges an OAuth code for workspace tokens.
type OAuthAccessFunc func(clientID, clientSecret, code, redirectURI string) (*slack.OAuthResponse, error)

// SlackHandler owns the webhook endpoints. Slack clients are built per tenant
// from the stored bot token; nothing here holds ambient per-request state.
type SlackHandler struct {
	clientID          string
	clientSecret      string
	redirectURI       string
	verificationToken string

	credentials storage.CredentialStore
	index       search.Index
	fetcher     *webpage.Fetcher

	newChatAPI  func(botToken string) ChatAPI
	oauthAccess OAuthAccessFunc
}

// NewSlackHandler wires the handler to its collaborators
func NewSlackHandler(cfg *config.Config, credentials storage.CredentialStore, index search.Index) *SlackHandler {
	return &SlackHandler{
		clientID:          cfg.SlackClientID,
		clientSecret:      cfg.SlackAPISecret,
		redirectURI:       cfg.SlackRedirectURI,
		verificationToken: cfg.SlackVerificationToken,
		credentials:       credentials,
		index:             index,
		fetcher:           webpage.NewFetcher(),
		newChatAPI: func(botToken string) ChatAPI {
			return slack.New(botToken)
		},
		oauthAccess: func(clientID, clientSecret, code, redirectURI string) (*slack.OAuthResponse, error) {
			return slack.GetOAuthResponse(&http.Client{Timeout: 30 * time.Second}, clientID, clientSecret, code, redirectURI)
		},
	}
}

// RegisterRoutes attaches every endpoint to the engine
func (h *SlackHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.HandleRoot)
	r.GET("/begin_auth", h.HandleBeginAuth)
	r.GET("/finish_auth", h.HandleFinishAuth)
	r.POST("/events", HandleSlackRetry(), h.HandleEvents)
	r.POST("/buttons", h.HandleButtons)
}
