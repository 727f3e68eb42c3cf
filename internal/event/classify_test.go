package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"link_librarian/internal/model"
)

func TestClassifyDirectEvent(t *testing.T) {
	env := &model.EventEnvelope{Type: "url_verification", Challenge: "c0ffee"}

	assert.True(t, Classify(env, "url_verification"))
	assert.False(t, Classify(env, "message"))
}

func TestClassifyWrappedEvent(t *testing.T) {
	env := &model.EventEnvelope{
		Type:  "event_callback",
		Event: &model.Event{Type: "message"},
	}

	assert.True(t, Classify(env, "message"))
	assert.False(t, Classify(env, "message.bot_message"))
	assert.False(t, Classify(env, "reaction_added"))
}

func TestClassifySubtypeUsesDottedKey(t *testing.T) {
	env := &model.EventEnvelope{
		Type:  "event_callback",
		Event: &model.Event{Type: "message", Subtype: "bot_message"},
	}

	// a subtyped event matches only its dotted key, never the bare type
	assert.True(t, Classify(env, "message.bot_message"))
	assert.False(t, Classify(env, "message"))
}

func TestClassifyNilSafety(t *testing.T) {
	assert.False(t, Classify(nil, "message"))
	assert.False(t, Classify(&model.EventEnvelope{Type: "event_callback"}, "message"))
}

func TestEffectiveKind(t *testing.T) {
	assert.Equal(t, "url_verification", EffectiveKind(&model.EventEnvelope{Type: "url_verification"}))
	assert.Equal(t, "message", EffectiveKind(&model.EventEnvelope{
		Type:  "event_callback",
		Event: &model.Event{Type: "message"},
	}))
	assert.Equal(t, "message.channel_join", EffectiveKind(&model.EventEnvelope{
		Type:  "event_callback",
		Event: &model.Event{Type: "message", Subtype: "channel_join"},
	}))
}
