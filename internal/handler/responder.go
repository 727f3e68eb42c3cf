package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"link_librarian/internal/logger"
	"link_librarian/internal/model"
)

const (
	hitsHeader       = "I found some results for you."
	buttonsFallback  = "You cannot use message actions here"
	searchFooter     = "Powered by Algolia"
	searchFooterIcon = "https://www.algolia.com/static_assets/images/press/downloads/algolia-mark-blue.png"
)

// Respond runs the query against the tenant's index and renders one page of
// results as a postable message. Page numbers are zero-indexed here and
// 1-indexed in the rendered caption.
func (h *SlackHandler) Respond(ctx context.Context, teamID, query string, page int) *model.ReplyMessage {
	res, err := h.index.Search(ctx, teamID, query, page)
	if err != nil {
		logger.GetLogger().Error("search failed",
			zap.String("team_id", teamID), zap.String("query", query), zap.Error(err))
		res = &model.SearchResultPage{}
	}

	// footer credits the search provider on every response
	footer := slack.Attachment{
		Text:       "",
		Footer:     searchFooter,
		FooterIcon: searchFooterIcon,
	}

	if len(res.Hits) == 0 {
		return &model.ReplyMessage{
			Text:        fmt.Sprintf("I am sorry to say that I found no hits for \"%s\"", query),
			Attachments: []slack.Attachment{footer},
		}
	}

	var text strings.Builder
	text.WriteString(hitsHeader)
	for _, hit := range res.Hits {
		fmt.Fprintf(&text, "\n  • <%s|%s>", hit.Link, strings.TrimSpace(hit.Title))
	}

	var buttons []slack.AttachmentAction
	if res.Page > 0 {
		buttons = append(buttons, slack.AttachmentAction{
			Name:  "prev",
			Text:  "Prev",
			Type:  slack.ActionType("button"),
			Value: strconv.Itoa(res.Page - 1),
		})
	}
	if res.Page < res.NbPages-1 {
		buttons = append(buttons, slack.AttachmentAction{
			Name:  "next",
			Text:  "Next",
			Type:  slack.ActionType("button"),
			Value: strconv.Itoa(res.Page + 1),
		})
	}

	var attachments []slack.Attachment
	if len(buttons) > 0 {
		// the callback id carries the query string unmodified so the click
		// handler can rebuild the exact same search
		attachments = append(attachments, slack.Attachment{
			Text:       fmt.Sprintf("Page %d of %d", res.Page+1, res.NbPages),
			Fallback:   buttonsFallback,
			CallbackID: query,
			Actions:    buttons,
		})
	}
	attachments = append(attachments, footer)

	return &model.ReplyMessage{
		Text:        text.String(),
		Attachments: attachments,
	}
}
