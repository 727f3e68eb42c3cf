package model

import "github.com/slack-go/slack"

// EventEnvelope is the raw inbound Slack payload before domain interpretation.
// The same shape covers Events API callbacks, the one-time URL verification
// handshake, and interactive message actions; unused fields stay empty.
type EventEnvelope struct {
	Token      string           `json:"token"`
	TeamID     string           `json:"team_id"`
	APIAppID   string           `json:"api_app_id"`
	Type       string           `json:"type"`
	Challenge  string           `json:"challenge"`
	Event      *Event           `json:"event"`
	Team       *Team            `json:"team"`
	CallbackID string           `json:"callback_id"`
	Actions    []EnvelopeAction `json:"actions"`
}

// Team carries the tenant id for payloads that nest it instead of putting it
// at the top level. Message actions do this.
type Team struct {
	ID     string `json:"id"`
	Domain string `json:"domain"`
}

// Event is the inner event of an event_callback envelope.
type Event struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
	User    string `json:"user"`
	Text    string `json:"text"`
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}

// EnvelopeAction is one clicked button in an interactive callback. Value holds
// the requested page number as a string.
type EnvelopeAction struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ReplyMessage is a chat.postMessage-shaped payload. It doubles as the JSON
// body returned to interactive callbacks, where ReplaceOriginal is set so the
// clicked message is rewritten in place. The unfurl flags carry no omitempty
// on purpose: both must serialize as false so Slack does not auto-preview the
// links we already render as bullets.
type ReplyMessage struct {
	Channel         string             `json:"channel,omitempty"`
	Text            string             `json:"text"`
	UnfurlLinks     bool               `json:"unfurl_links"`
	UnfurlMedia     bool               `json:"unfurl_media"`
	ReplaceOriginal bool               `json:"replace_original,omitempty"`
	Attachments     []slack.Attachment `json:"attachments,omitempty"`
}
