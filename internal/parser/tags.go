// Package parser turns the body of a ledger command into validated field values.
//
// A body is a whitespace separated sequence of tokens. A token of the form
// name/value starts a tag; the tag's value runs until the next token that
// starts a recognized tag, or to the end of the body. Tags may appear in any
// order.
package parser

import (
	"strings"
	"unicode"
)

const (
	TagCategory    = "category"
	TagDescription = "desc"
	TagAmount      = "amt"
	TagDate        = "d"
)

// Fields holds the trimmed raw values of the recognized tags found in a body.
// A tag that does not appear has no entry.
type Fields struct {
	values map[string]string
	// Leading is the text before the first tag, e.g. the index of an update.
	Leading string
}

func (f Fields) Get(tag string) (string, bool) {
	v, ok := f.values[tag]
	return v, ok
}

func (f Fields) Has(tag string) bool {
	_, ok := f.values[tag]
	return ok
}

func (f Fields) Len() int {
	return len(f.values)
}

// Extract collects the values of the tags in recognized. A value runs until
// the next recognized marker, so an unrecognized name/ token inside a value is
// kept as text. Unrecognized markers after the last recognized one end the
// value and are dropped. When a tag repeats, the first occurrence wins.
func Extract(body string, recognized ...string) Fields {
	known := make(map[string]bool, len(recognized))
	for _, tag := range recognized {
		known[tag] = true
	}

	tokens := scanTokens(body)
	lastKnown := -1
	for _, tok := range tokens {
		if name, ok := markerName(body[tok.start:tok.end]); ok && known[name] {
			lastKnown = tok.start
		}
	}

	fields := Fields{values: make(map[string]string)}

	current := ""
	valueStart := 0
	leadingEnd := len(body)
	seenTag := false

	closeSegment := func(end int) {
		if current == "" {
			return
		}
		if _, dup := fields.values[current]; !dup {
			fields.values[current] = strings.TrimSpace(body[valueStart:end])
		}
	}

	for _, tok := range tokens {
		name, ok := markerName(body[tok.start:tok.end])
		if !ok || (!known[name] && tok.start < lastKnown) {
			continue
		}
		if !seenTag {
			leadingEnd = tok.start
			seenTag = true
		}
		closeSegment(tok.start)
		current = ""
		if known[name] {
			current = name
			valueStart = tok.start + len(name) + 1
		}
	}
	closeSegment(len(body))

	fields.Leading = strings.TrimSpace(body[:leadingEnd])
	return fields
}

type token struct {
	start, end int
}

// scanTokens returns the byte spans of the whitespace separated tokens of body.
func scanTokens(body string) []token {
	var tokens []token
	i := 0
	for i < len(body) {
		for i < len(body) && isSpace(body[i]) {
			i++
		}
		start := i
		for i < len(body) && !isSpace(body[i]) {
			i++
		}
		if start == i {
			break
		}
		tokens = append(tokens, token{start: start, end: i})
	}
	return tokens
}

// markerName reports whether token starts with letters followed by '/'.
func markerName(token string) (string, bool) {
	slash := strings.IndexByte(token, '/')
	if slash <= 0 {
		return "", false
	}
	for _, r := range token[:slash] {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return "", false
		}
	}
	return token[:slash], true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// SplitCommand separates the command word from its body.
func SplitCommand(input string) (name string, body string) {
	input = strings.TrimSpace(input)
	idx := strings.IndexFunc(input, unicode.IsSpace)
	if idx < 0 {
		return input, ""
	}
	return input[:idx], strings.TrimSpace(input[idx:])
}
