package event

import "link_librarian/internal/model"

// CallbackType wraps the real event kind inside an Events API envelope.
const CallbackType = "event_callback"

// EffectiveKind returns the envelope's logical event kind. Direct events (the
// URL verification handshake) carry it at the top level; event_callback
// wrappers nest it at event.type, refined to "type.subtype" when the inner
// event has a subtype.
func EffectiveKind(env *model.EventEnvelope) string {
	if env.Type == CallbackType && env.Event != nil {
		kind := env.Event.Type
		if env.Event.Subtype != "" {
			kind = kind + "." + env.Event.Subtype
		}
		return kind
	}
	return env.Type
}

// Classify reports whether the envelope matches the wanted kind. It is the
// predicate gate in front of every handler. Callers ask for subtyped events
// with the same dotted convention: "message.bot_message" matches only messages
// with that subtype, and a plain "message" never matches them.
func Classify(env *model.EventEnvelope, wanted string) bool {
	if env == nil {
		return false
	}
	if env.Type == wanted {
		return true
	}
	if env.Type != CallbackType || env.Event == nil {
		return false
	}
	return EffectiveKind(env) == wanted
}
