package ai

import (
	"encoding/json"
	"regexp"
)

// Model responses wrap JSON in prose more often than not, so extraction scans
// for delimited fragments instead of unmarshalling the whole reply.
//
// The object scan is non-greedy and single-level: a nested object is never
// captured whole, only its innermost braces. Callers that get nothing
// useful back fall back to their static defaults.
var (
	objectPattern = regexp.MustCompile(`\{[^{}]*\}`)
	arrayPattern  = regexp.MustCompile(`(?s)\[\s*\{.*?\}\s*\]`)
)

// ExtractJSONObject returns the first parseable single-level JSON object
// found in text, or nil when none parses.
func ExtractJSONObject(text string) map[string]interface{} {
	for _, match := range objectPattern.FindAllString(text, -1) {
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(match), &obj); err == nil {
			return obj
		}
	}
	return nil
}

// ExtractJSONArray returns the first parseable JSON array of objects found
// in text, or nil when none parses.
func ExtractJSONArray(text string) []map[string]interface{} {
	for _, match := range arrayPattern.FindAllString(text, -1) {
		var arr []map[string]interface{}
		if err := json.Unmarshal([]byte(match), &arr); err == nil {
			return arr
		}
	}
	return nil
}
