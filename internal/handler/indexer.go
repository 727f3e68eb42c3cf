package handler

import (
	"context"
	"regexp"
	"strings"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"link_librarian/internal/logger"
	"link_librarian/internal/model"
	"link_librarian/internal/webpage"
)

const (
	// Algolia documents 10KB per record; rounding down keeps headroom
	maxBodyChars = 9000
	// reaction added to a message once one of its links is indexed
	reactionName = "flashlight"
	// cap on concurrent fetches per message
	maxParallelFetches = 4
)

// Slack marks links out in message text: <http://example.com> or
// <http://example.com|label>. The label is display-only and discarded.
var linkPattern = regexp.MustCompile(`<(https?://[^>]+)>`)

// extractLinks returns every marked-up link in text, in order, duplicates
// preserved.
func extractLinks(text string) []string {
	var links []string
	for _, m := range linkPattern.FindAllStringSubmatch(text, -1) {
		link, _, _ := strings.Cut(m[1], "|")
		links = append(links, link)
	}
	return links
}

// indexLinks runs one fetch-extract-upsert pipeline per link in the message,
// concurrently. Pipelines are independent: a failed fetch or upsert skips
// that link and its reaction and nothing else. Completion order is not
// meaningful; the index is keyed by link, so concurrent writes of the same
// URL settle on the last one.
func (h *SlackHandler) indexLinks(ctx context.Context, cred *model.TenantCredential, msg model.ChatMessage) {
	links := extractLinks(msg.Text)
	if len(links) == 0 {
		return
	}

	chat := h.newChatAPI(cred.BotAccessToken)
	var g errgroup.Group
	g.SetLimit(maxParallelFetches)
	for _, link := range links {
		link := link
		g.Go(func() error {
			h.indexLink(ctx, chat, cred.TeamID, msg, link)
			return nil
		})
	}
	_ = g.Wait()
}

func (h *SlackHandler) indexLink(ctx context.Context, chat ChatAPI, teamID string, msg model.ChatMessage, link string) {
	log := logger.GetLogger()

	page, err := h.fetcher.Fetch(ctx, link)
	if err != nil {
		log.Warn("failed to fetch link, skipping",
			zap.String("link", link), zap.Error(err))
		return
	}

	doc := model.IndexedDocument{
		Title: page.Title,
		Body:  webpage.Truncate(page.Body, maxBodyChars),
		Link:  link,
		TS:    msg.Timestamp,
	}
	if err := h.index.Upsert(ctx, teamID, doc); err != nil {
		log.Error("failed to index link",
			zap.String("link", link), zap.String("team_id", teamID), zap.Error(err))
		return
	}

	// visible acknowledgement on the source message
	if err := chat.AddReaction(reactionName, slack.NewRefToMessage(msg.Channel, msg.Timestamp)); err != nil {
		log.Warn("failed to add reaction",
			zap.String("channel", msg.Channel), zap.Error(err))
	}
}
