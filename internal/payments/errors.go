package payments

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UpstreamError is returned when the provider answers with a non-2xx status.
type UpstreamError struct {
	Op     string
	Status int
	Body   []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("pakasir %s failed: http=%d body=%s", e.Op, e.Status, strings.TrimSpace(string(e.Body)))
}

// Message extracts a human readable reason from the provider body.
func (e *UpstreamError) Message() string {
	return ExtractMessage(e.Body)
}

// ExtractMessage looks for the usual message keys in a JSON error body and falls back
// to the raw text.
func ExtractMessage(body []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, key := range []string{"message", "error", "msg"} {
			switch v := obj[key].(type) {
			case string:
				if v != "" {
					return v
				}
			case map[string]any:
				if raw, err := json.Marshal(v); err == nil {
					if msg := ExtractMessage(raw); msg != "" {
						return msg
					}
				}
			}
		}
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(body))
}
