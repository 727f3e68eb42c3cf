package model

// ChannelClass buckets a channel id by its first character.
type ChannelClass int

const (
	ChannelOther ChannelClass = iota
	ChannelDirectMessage
	ChannelPublic
)

// ChatMessage is the routed view of a message event.
type ChatMessage struct {
	Author    string
	Channel   string
	Text      string
	Timestamp string
}

// ChannelClass classifies the message's channel: 'D' prefixes are direct
// messages, 'C' prefixes are public channels, everything else (groups, shared
// channels) is neither.
func (m ChatMessage) ChannelClass() ChannelClass {
	switch {
	case len(m.Channel) == 0:
		return ChannelOther
	case m.Channel[0] == 'D':
		return ChannelDirectMessage
	case m.Channel[0] == 'C':
		return ChannelPublic
	default:
		return ChannelOther
	}
}
