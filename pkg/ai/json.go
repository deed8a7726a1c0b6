package ai

import (
	"encoding/json"
	"regexp"
)

// Vision models routinely wrap their JSON in prose or markdown fences.
// The greedy match takes everything between the first '{' and the last '}'.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ParseModelJSON extracts the JSON object embedded in a model reply.
// When no parseable object is present it returns the raw text under
// "rawResponse" and ok=false so callers treat the reply as unverifiable.
func ParseModelJSON(text string) (map[string]interface{}, bool) {
	match := jsonObjectPattern.FindString(text)
	if match != "" {
		var extracted map[string]interface{}
		if err := json.Unmarshal([]byte(match), &extracted); err == nil {
			return extracted, true
		}
	}

	return map[string]interface{}{"rawResponse": text}, false
}
