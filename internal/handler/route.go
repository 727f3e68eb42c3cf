package handler

import (
	"strings"

	"link_librarian/internal/model"
)

// Action is the router's verdict for one chat message.
type Action int

const (
	ActionIgnore Action = iota
	ActionIndex
	ActionQuery
)

// mentionToken is the Slack markup identifying a user reference in message
// text.
func mentionToken(userID string) string {
	return "<@" + userID + ">"
}

// RouteMessage applies the archival policy: a message is content to index
// unless it is private or explicitly directed at the bot, in which case it is
// a search query. The bot's own messages are never processed, which keeps it
// from indexing or answering its own output. For queries, the returned string
// is the message text with a single leading mention (and optional colon)
// stripped and whitespace trimmed.
func RouteMessage(msg model.ChatMessage, cred *model.TenantCredential) (Action, string) {
	if msg.Author == cred.BotUserID {
		return ActionIgnore, ""
	}

	mention := mentionToken(cred.BotUserID)
	addressedToUs := strings.Contains(msg.Text, mention)

	switch class := msg.ChannelClass(); {
	case class == model.ChannelPublic && !addressedToUs:
		return ActionIndex, ""
	case class == model.ChannelDirectMessage || addressedToUs:
		return ActionQuery, queryText(msg.Text, mention)
	default:
		return ActionIgnore, ""
	}
}

// queryText strips one leading mention token, an optional colon after it, and
// surrounding whitespace.
func queryText(text, mention string) string {
	if rest, ok := strings.CutPrefix(text, mention); ok {
		text = strings.TrimPrefix(rest, ":")
	}
	return strings.TrimSpace(text)
}
