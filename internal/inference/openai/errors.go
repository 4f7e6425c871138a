package openai

import (
	"encoding/json"
	"fmt"

	"github.com/at-ishikawa/lunaword/internal/inference"
)

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// classifyResponseError converts a non-2xx response into an error that callers can match with errors.Is.
func classifyResponseError(statusCode int, body string) error {
	var decoded errorResponse
	_ = json.Unmarshal([]byte(body), &decoded)

	// A 429 is also returned for short-lived throttling, so only the error type tells quota exhaustion apart.
	if decoded.Error.Type == "insufficient_quota" || decoded.Error.Code == "insufficient_quota" {
		return fmt.Errorf("response error %d: %s > %w", statusCode, body, inference.ErrInsufficientQuota)
	}
	return fmt.Errorf("response error %d: %s", statusCode, body)
}

// extractJSONObject returns the first complete JSON object in content.
// Models sometimes wrap the object in prose or code fences.
func extractJSONObject(content string) string {
	firstBrace := -1
	braceCount := 0
	inString := false
	escapeNext := false

	for i, ch := range content {
		if escapeNext {
			escapeNext = false
			continue
		}
		if ch == '\\' && inString {
			escapeNext = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case '{':
			if firstBrace == -1 {
				firstBrace = i
			}
			braceCount++
		case '}':
			if firstBrace == -1 {
				continue
			}
			braceCount--
			if braceCount == 0 {
				return content[firstBrace : i+1]
			}
		}
	}
	return content
}
