package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Normalize resolves a raw export document into threads. Shapes
// are tried in priority order and the first structural match
// wins:
//
//  1. object with a conversations array (full export; each item
//     carries a mapping graph of message nodes)
//  2. object with a flat messages array (single conversation)
//  3. bare array of conversation-like objects
//
// Anything else yields zero threads. Missing sub-fields degrade
// to defaults; Normalize never fails.
func Normalize(root gjson.Result) Export {
	if convs := root.Get("conversations"); convs.IsArray() {
		return normalizeConversations(convs)
	}
	if msgs := root.Get("messages"); msgs.IsArray() {
		return Export{Threads: []Thread{normalizeFlat(root, msgs)}}
	}
	if root.IsArray() {
		return normalizeBareArray(root)
	}
	return Export{}
}

func normalizeConversations(convs gjson.Result) Export {
	var threads []Thread
	convs.ForEach(func(_, conv gjson.Result) bool {
		threads = append(threads, normalizeMapped(conv, len(threads)))
		return true
	})
	return Export{Threads: threads}
}

func normalizeBareArray(root gjson.Result) Export {
	var threads []Thread
	root.ForEach(func(_, conv gjson.Result) bool {
		threads = append(threads, normalizeMapped(conv, len(threads)))
		return true
	})
	return Export{Threads: threads}
}

// normalizeMapped builds a thread from a conversation object
// whose messages live in a mapping graph. n is the zero-based
// position, used to synthesize missing ids and titles.
func normalizeMapped(conv gjson.Result, n int) Thread {
	return Thread{
		ID:        orSynth(conv.Get("id").Str, "conv-%d", n+1),
		Title:     orSynth(conv.Get("title").Str, "Conversation %d", n+1),
		CreatedAt: firstTime(conv.Get("create_time"), conv.Get("update_time")),
		Messages:  extractFromMapping(conv.Get("mapping")),
	}
}

// extractFromMapping pulls message nodes out of a mapping graph,
// keeping only nodes that carry both an author role and content,
// ordered by create_time (fallback update_time, fallback 0)
// ascending. The sort is stable so ties keep document order.
func extractFromMapping(mapping gjson.Result) []Message {
	if !mapping.IsObject() {
		return nil
	}

	type node struct {
		msg     gjson.Result
		sortKey float64
	}
	var nodes []node
	mapping.ForEach(func(_, entry gjson.Result) bool {
		msg := entry.Get("message")
		if msg.Get("author.role").Str == "" || !msg.Get("content").Exists() {
			return true
		}
		key := msg.Get("create_time").Num
		if key == 0 {
			key = msg.Get("update_time").Num
		}
		nodes = append(nodes, node{msg: msg, sortKey: key})
		return true
	})

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].sortKey < nodes[j].sortKey
	})

	messages := make([]Message, 0, len(nodes))
	for _, n := range nodes {
		messages = append(messages, Message{
			Role:      normalizeRole(n.msg.Get("author.role").Str),
			CreatedAt: firstTime(n.msg.Get("create_time"), n.msg.Get("update_time")),
			Text:      ExtractText(n.msg.Get("content")),
		})
	}
	return messages
}

// normalizeFlat builds a thread from the shared/single
// conversation shape with a flat messages array.
func normalizeFlat(conv, msgs gjson.Result) Thread {
	thread := Thread{
		ID:        orSynth(conv.Get("id").Str, "conv-%d", 1),
		Title:     orDefault(conv.Get("title").Str, "Conversation"),
		CreatedAt: firstTime(conv.Get("create_time"), conv.Get("update_time")),
	}
	msgs.ForEach(func(_, m gjson.Result) bool {
		role := m.Get("author.role").Str
		if role == "" {
			role = m.Get("role").Str
		}
		if role == "" {
			role = string(RoleUser)
		}
		thread.Messages = append(thread.Messages, Message{
			Role:      normalizeRole(role),
			CreatedAt: firstTime(m.Get("create_time"), m.Get("update_time")),
			Text:      ExtractText(m.Get("content")),
		})
		return true
	})
	return thread
}

// normalizeRole lowercases a raw role string so downstream
// comparisons never depend on export casing.
func normalizeRole(role string) RoleType {
	return RoleType(strings.ToLower(strings.TrimSpace(role)))
}

func orSynth(s, format string, n int) string {
	if s != "" {
		return s
	}
	return fmt.Sprintf(format, n)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
