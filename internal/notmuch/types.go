package notmuch

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SearchRow is one result line from a search query, newest first in the
// order the index tool returned them.
type SearchRow struct {
	// ID is the query term that names this result, e.g. "thread:000...abc".
	ID          string
	Authors     string
	Subject     string
	Tags        []string
	Timestamp   int64
	DateDisplay string
}

// Message is the first message of a show query: its interesting headers
// plus the root content parts.
type Message struct {
	Subject string
	From    string
	To      string
	Date    string
	Body    []*Part
}

// Part is a node in a message's MIME part tree. A part carries either
// inline Content (text parts emitted by the index tool) or Children
// (multipart containers); attachments typically carry neither and are
// fetched by part ID on demand.
type Part struct {
	ID          int
	ContentType string
	Disposition string
	Filename    string
	Content     string
	Children    []*Part
}

// partJSON mirrors the wire shape of a part. The "content" field is
// polymorphic: a string for inline text, an array of parts for containers.
type partJSON struct {
	ID          int             `json:"id"`
	ContentType string          `json:"content-type"`
	Disposition string          `json:"content-disposition"`
	Filename    string          `json:"filename"`
	Content     json.RawMessage `json:"content"`
}

// UnmarshalJSON decodes a part, splitting the polymorphic "content" field
// into Content or Children. Content of an unexpected shape is ignored
// rather than failing the whole show parse.
func (p *Part) UnmarshalJSON(data []byte) error {
	var raw partJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.ID = raw.ID
	p.ContentType = raw.ContentType
	p.Disposition = raw.Disposition
	p.Filename = raw.Filename
	p.Content = ""
	p.Children = nil

	content := bytes.TrimSpace(raw.Content)
	if len(content) == 0 {
		return nil
	}
	switch content[0] {
	case '"':
		_ = json.Unmarshal(content, &p.Content)
	case '[':
		_ = json.Unmarshal(content, &p.Children)
	}
	return nil
}

// messageJSON is the wire shape of a message node inside show output.
type messageJSON struct {
	Headers map[string]string `json:"headers"`
	Body    []*Part           `json:"body"`
}

// findFirstMessage walks the nested array structure of show output looking
// for the first object that carries both headers and a body. The nesting
// depth varies with threading, so the walk is shape-agnostic like the index
// tool's own consumers.
func findFirstMessage(raw json.RawMessage) *Message {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil
		}
		for _, item := range items {
			if m := findFirstMessage(item); m != nil {
				return m
			}
		}
	case '{':
		var node messageJSON
		if err := json.Unmarshal(data, &node); err == nil && node.Headers != nil && node.Body != nil {
			return newMessage(node)
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil
		}
		for _, v := range fields {
			if m := findFirstMessage(v); m != nil {
				return m
			}
		}
	}
	return nil
}

// newMessage builds a Message from a wire node, normalizing header names
// and degrading missing headers to placeholders.
func newMessage(node messageJSON) *Message {
	headers := make(map[string]string, len(node.Headers))
	for k, v := range node.Headers {
		headers[strings.ToLower(k)] = v
	}
	subject := headers["subject"]
	if subject == "" {
		subject = "???"
	}
	return &Message{
		Subject: subject,
		From:    headers["from"],
		To:      headers["to"],
		Date:    headers["date"],
		Body:    node.Body,
	}
}
