package core

import "strings"

// chatKeyPrefix namespaces conversation logs in the store.
const chatKeyPrefix = "messages:"

// ChatKey derives the canonical identifier for a two-party conversation.
// Participants are sorted lexicographically, so ChatKey(a, b) == ChatKey(b, a).
func ChatKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return chatKeyPrefix + a + ":" + b
}

// ParseChatKey splits a canonical key back into its two participants.
// Returns false for keys that are not conversation keys.
func ParseChatKey(key string) (string, string, bool) {
	rest, ok := strings.CutPrefix(key, chatKeyPrefix)
	if !ok {
		return "", "", false
	}
	a, b, ok := strings.Cut(rest, ":")
	if !ok || a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}
