package extract

import (
	"encoding/json"
	"strings"
)

// ExtractJSON isolates and parses a JSON object from a free-form model
// completion. Completions routinely wrap the payload in prose or markdown
// code fences, so the substring between the first '{' and the last '}'
// (inclusive) is taken as the candidate payload. Deliberately permissive:
// a minimal regex match would break on multi-line preambles and trailing
// remarks.
func ExtractJSON(completion string) (map[string]any, error) {
	if strings.TrimSpace(completion) == "" {
		return nil, &ExtractionError{Reason: ReasonEmptyCompletion}
	}

	start := strings.Index(completion, "{")
	end := strings.LastIndex(completion, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &ExtractionError{Reason: ReasonNoJSONObject}
	}

	payload := completion[start : end+1]

	var raw map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, &ExtractionError{Reason: ReasonMalformedJSON, Err: err}
	}
	return raw, nil
}
