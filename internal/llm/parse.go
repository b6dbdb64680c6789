package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// listParser is one strategy for recovering a string list from free-form
// model output. Strategies are tried in order; the first non-empty result
// wins. The model's output format is not guaranteed, so this graceful
// degradation is part of the contract, not defensive excess.
type listParser func(content string) []string

var listParsers = []listParser{
	parseDirectJSON,
	parseFencedBlock,
	parseBracketLiteral,
	parseLines,
}

// ParseList extracts a list of strings from a model reply using the layered
// fallback strategies. It never fails: output that defeats every strategy
// yields an empty list.
func ParseList(content string) []string {
	for _, parse := range listParsers {
		if items := parse(content); len(items) > 0 {
			return items
		}
	}
	return nil
}

// parseDirectJSON handles a reply that is already a JSON array, or an object
// wrapping one under a "suggestions" key.
func parseDirectJSON(content string) []string {
	var asList []any
	if err := json.Unmarshal([]byte(content), &asList); err == nil {
		return stringify(asList)
	}

	var asObject struct {
		Suggestions []any `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(content), &asObject); err == nil {
		return stringify(asObject.Suggestions)
	}
	return nil
}

// parseFencedBlock extracts a ```json (or plain ```) fenced block and parses
// its contents as a JSON array.
func parseFencedBlock(content string) []string {
	inner, ok := extractFenced(content)
	if !ok {
		return nil
	}
	var asList []any
	if err := json.Unmarshal([]byte(inner), &asList); err != nil {
		return nil
	}
	return stringify(asList)
}

// parseBracketLiteral handles output where the trimmed reply itself looks
// like a list literal, possibly with trailing prose already removed.
func parseBracketLiteral(content string) []string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil
	}
	var asList []any
	if err := json.Unmarshal([]byte(trimmed), &asList); err != nil {
		return nil
	}
	return stringify(asList)
}

// parseLines is the last resort: treat each line as an item, stripping
// bullet markers, numbering and quotes, and discarding near-empty lines.
func parseLines(content string) []string {
	var items []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		for _, prefix := range []string{"- ", "* ", "• "} {
			line = strings.TrimPrefix(line, prefix)
		}
		line = strings.Trim(line, `"'`)
		line = strings.TrimLeft(line, "0123456789. ")
		if len(line) > 3 {
			items = append(items, line)
		}
	}
	return items
}

// extractFenced returns the body of the first markdown code fence, skipping
// a language identifier on the opening line if present.
func extractFenced(content string) (string, bool) {
	start := strings.Index(content, "```")
	if start < 0 {
		return "", false
	}
	rest := content[start+3:]

	// Drop the language tag (e.g. "json") up to the first newline.
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		firstLine := strings.TrimSpace(rest[:nl])
		if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			rest = rest[nl+1:]
		}
	}

	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

func stringify(values []any) []string {
	items := make([]string, 0, len(values))
	for _, v := range values {
		switch s := v.(type) {
		case string:
			if s != "" {
				items = append(items, s)
			}
		default:
			items = append(items, fmt.Sprintf("%v", v))
		}
	}
	return items
}
