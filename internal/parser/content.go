package parser

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractText flattens a message content field into plain text.
// Exports disagree on content shape: a bare string, an object
// with a parts array, an object with scalar text or text.value,
// or an array of heterogeneous blocks. Unrecognized shapes
// degrade to the empty string.
func ExtractText(content gjson.Result) string {
	switch {
	case content.Type == gjson.String:
		return strings.TrimSpace(content.Str)

	case content.IsArray():
		return extractBlocks(content)

	case content.IsObject():
		if parts := content.Get("parts"); parts.IsArray() {
			return joinParts(parts)
		}
		if text := content.Get("text"); text.Type == gjson.String {
			return strings.TrimSpace(text.Str)
		}
		if value := content.Get("text.value"); value.Exists() {
			return strings.TrimSpace(value.String())
		}
	}
	return ""
}

// joinParts joins the string entries of a legacy parts array,
// skipping empty and non-string entries.
func joinParts(parts gjson.Result) string {
	var pieces []string
	parts.ForEach(func(_, p gjson.Result) bool {
		if p.Type == gjson.String && p.Str != "" {
			pieces = append(pieces, p.Str)
		}
		return true
	})
	return strings.TrimSpace(strings.Join(pieces, "\n"))
}

// extractBlocks handles assistants-style content arrays where
// each block is a string or an object exposing text, text.value,
// or a typed input_text field.
func extractBlocks(content gjson.Result) string {
	var pieces []string
	content.ForEach(func(_, block gjson.Result) bool {
		switch {
		case block.Type == gjson.String:
			pieces = append(pieces, block.Str)
		case block.Get("text.value").Exists():
			pieces = append(pieces, block.Get("text.value").String())
		case block.Get("text").Type == gjson.String:
			pieces = append(pieces, block.Get("text").Str)
		case block.Get("type").Str == "input_text" &&
			block.Get("input_text").Type == gjson.String:
			pieces = append(pieces, block.Get("input_text").Str)
		}
		return true
	})
	return strings.TrimSpace(strings.Join(pieces, "\n"))
}
