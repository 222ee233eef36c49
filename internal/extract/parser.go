// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ActionItem is a single item as returned by the AI backend.
type ActionItem struct {
	Action      string `json:"action"`
	Category    string `json:"category"`
	VillageName string `json:"village_name"`
	ReportDate  string `json:"report_date"`
}

// ResponseParser turns a model's raw reply into action items. The reply
// format is not under our control, so the heuristic is pluggable.
type ResponseParser interface {
	Parse(raw string) ([]ActionItem, error)
}

// jsonArrayRe locates the first JSON array of objects in a reply. Models
// often wrap the array in prose or markdown fences despite instructions.
var jsonArrayRe = regexp.MustCompile(`(?s)\[\s*\{.*?\}\s*\]`)

// JSONListParser parses replies shaped as a JSON array of
// {action, category, village_name, report_date} objects.
type JSONListParser struct{}

// Parse extracts the first JSON array of objects from raw and decodes it.
// A reply containing only an empty array yields zero items without error.
func (p *JSONListParser) Parse(raw string) ([]ActionItem, error) {
	block := jsonArrayRe.FindString(raw)
	if block == "" {
		if strings.Contains(stripFences(raw), "[]") {
			return nil, nil
		}
		return nil, fmt.Errorf("no JSON array found in model response")
	}

	var items []ActionItem
	if err := json.Unmarshal([]byte(block), &items); err != nil {
		return nil, fmt.Errorf("parsing model response JSON: %w", err)
	}
	return items, nil
}

// stripFences removes markdown code fences so an empty array inside one is
// still recognized.
func stripFences(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	return strings.ReplaceAll(raw, "```", "")
}
