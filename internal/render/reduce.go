// Package render converts message payloads into display-ready text:
// Reduce flattens HTML to plain text, Reflow wraps it to the terminal width.
package render

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags are elements whose start and end both force a line break in the
// reduced output. Adjacent breaks are not collapsed here; Reflow squeezes
// vertical whitespace later.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "tr": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "title": true, "table": true, "ul": true, "ol": true,
}

// ignoredTags are elements whose text content is dropped entirely.
var ignoredTags = map[string]bool{
	"style": true, "script": true, "head": true, "meta": true, "link": true,
}

// invisibleReplacer strips zero-width characters and turns non-breaking
// spaces into ordinary ones before whitespace collapsing.
var invisibleReplacer = strings.NewReplacer(
	"‌", "", // zero-width non-joiner
	"‍", "", // zero-width joiner
	"\ufeff", "", // BOM
	" ", " ", // non-breaking space
)

// Reduce converts an HTML fragment into a flat text stream. Block-level tags
// contribute newlines, ignored tags suppress their text, and everything else
// is passed through with whitespace runs collapsed. Malformed markup never
// fails; unparseable input reduces to the empty string.
//
// Suppression tracks only the most recent start tag, not a nesting stack:
// text inside an ignored container leaks once a nested non-ignored start tag
// takes over the register.
func Reduce(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var out strings.Builder
	currentTag := ""

	for {
		switch z.Next() {
		case html.ErrorToken:
			return out.String()

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			currentTag = string(name)
			if blockTags[currentTag] {
				out.WriteByte('\n')
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if blockTags[string(name)] {
				out.WriteByte('\n')
			}

		case html.TextToken:
			if ignoredTags[currentTag] {
				continue
			}
			text := invisibleReplacer.Replace(string(z.Text()))
			fields := strings.Fields(text)
			if len(fields) == 0 {
				continue
			}
			out.WriteString(strings.Join(fields, " "))
			out.WriteByte(' ')
		}
	}
}
