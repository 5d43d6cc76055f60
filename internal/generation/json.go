package generation

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ParseJSONObject extracts a JSON object from model output, tolerating
// markdown code fences and surrounding prose. It returns the compacted object.
func ParseJSONObject(raw string) (json.RawMessage, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if obj, ok := compactObject(cleaned); ok {
		return obj, true
	}
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		return compactObject(cleaned[start : end+1])
	}
	return nil, false
}

func compactObject(s string) (json.RawMessage, bool) {
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		return nil, false
	}
	return json.RawMessage(buf.Bytes()), true
}
