// Package message reconstructs a readable body and an attachment manifest
// from a message's MIME part tree.
package message

import (
	"strings"

	"github.com/notmuch-tui/nmtui/internal/notmuch"
	"github.com/notmuch-tui/nmtui/internal/render"
	"github.com/notmuch-tui/nmtui/internal/textutil"
)

// NoContentPlaceholder is the body shown when a message has no readable
// text or HTML part.
const NoContentPlaceholder = "[no readable content]"

// Attachment names one saveable part of a message.
type Attachment struct {
	PartID      int
	Filename    string
	ContentType string
}

// FetchFunc retrieves the raw bytes of a part that the index tool did not
// inline. A failed fetch yields empty content; extraction never aborts.
type FetchFunc func(partID int) ([]byte, error)

// accumulator carries the fold state through the part-tree walk.
type accumulator struct {
	plain       []string
	html        []string
	attachments []Attachment
}

// Extract walks the part tree depth-first and returns the message body plus
// the attachment manifest. HTML content is preferred over plain text
// because plain-text alternatives are frequently missing or degraded;
// HTML is flattened through render.Reduce. Parts explicitly disposed as
// attachments are recorded but their subtrees contribute nothing to the
// body.
func Extract(root *notmuch.Part, fetch FetchFunc) (string, []Attachment) {
	return ExtractAll([]*notmuch.Part{root}, fetch)
}

// ExtractAll folds a message's root parts in document order.
func ExtractAll(parts []*notmuch.Part, fetch FetchFunc) (string, []Attachment) {
	acc := accumulator{}
	for _, p := range parts {
		acc = walk(p, fetch, acc)
	}
	switch {
	case len(acc.html) > 0:
		return render.Reduce(strings.Join(acc.html, "\n")), acc.attachments
	case len(acc.plain) > 0:
		return strings.Join(acc.plain, "\n"), acc.attachments
	default:
		return NoContentPlaceholder, acc.attachments
	}
}

// walk folds one part into the accumulator, then its children in listed
// order.
func walk(p *notmuch.Part, fetch FetchFunc, acc accumulator) accumulator {
	if p == nil {
		return acc
	}

	if p.Filename != "" {
		acc.attachments = append(acc.attachments, Attachment{
			PartID:      p.ID,
			Filename:    p.Filename,
			ContentType: p.ContentType,
		})
	}

	// Declared attachments are listed in the manifest only; accumulating
	// their payload (or their subtree's) would pollute the body.
	if p.Disposition == "attachment" {
		return acc
	}

	switch mediaType(p.ContentType) {
	case "text/html":
		if content := partText(p, fetch); content != "" {
			acc.html = append(acc.html, content)
		}
	case "text/plain":
		if content := partText(p, fetch); content != "" {
			acc.plain = append(acc.plain, content)
		}
	}

	for _, child := range p.Children {
		acc = walk(child, fetch, acc)
	}
	return acc
}

// partText returns a part's inline content, or fetches it by ID when the
// index tool left it out of line. Fetched bytes are salvaged to UTF-8.
func partText(p *notmuch.Part, fetch FetchFunc) string {
	if p.Content != "" {
		return p.Content
	}
	if fetch == nil {
		return ""
	}
	raw, err := fetch(p.ID)
	if err != nil {
		return ""
	}
	return textutil.EnsureUTF8(string(raw))
}

// mediaType normalizes a content-type string: lower-cased, parameters
// stripped.
func mediaType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
