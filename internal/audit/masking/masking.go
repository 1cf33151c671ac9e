// Package masking redacts credential material from audit snapshots before
// they are persisted.
package masking

import "strings"

const maskToken = "****"

var sensitiveKeys = map[string]struct{}{
	"password":           {},
	"password_hash":      {},
	"session_token_hash": {},
	"token":              {},
	"secret":             {},
}

// RedactSensitive returns a copy of the snapshot with credential fields
// replaced by a mask. Nested maps and slices are walked recursively.
func RedactSensitive(input map[string]any) map[string]any {
	if len(input) == 0 {
		return nil
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		trimmedKey := strings.TrimSpace(key)
		if trimmedKey == "" {
			continue
		}
		if isSensitive(trimmedKey) {
			out[trimmedKey] = maskToken
			continue
		}
		out[trimmedKey] = redactValue(value)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func isSensitive(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

func redactValue(value any) any {
	switch cast := value.(type) {
	case map[string]any:
		return RedactSensitive(cast)
	case []any:
		out := make([]any, 0, len(cast))
		for _, item := range cast {
			out = append(out, redactValue(item))
		}
		return out
	default:
		return value
	}
}
