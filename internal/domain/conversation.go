package domain

import (
	"strings"
)

// Chat roles used across the conversation pipeline.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single message in a conversation. Slice order is temporal order.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NormalizeRole maps external role spellings to the canonical set.
// Frontends send "ai" and some providers use "model" for assistant turns.
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "ai", "model", RoleAssistant:
		return RoleAssistant
	case RoleSystem:
		return RoleSystem
	default:
		return RoleUser
	}
}
