package game

import "strings"

// NormalizeRoomID lowercases and strips everything outside [a-z0-9_-].
// Empty results fall back to the default room.
func NormalizeRoomID(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return DefaultRoomID
	}
	return b.String()
}

// SanitizeUsername trims, collapses inner whitespace and caps the length.
// Returns "" when nothing usable remains; callers fall back to the next
// name source.
func SanitizeUsername(raw string) string {
	fields := strings.Fields(raw)
	name := strings.Join(fields, " ")
	if len(name) > MaxUsernameLength {
		name = name[:MaxUsernameLength]
	}
	return name
}
