// Package notmuch wraps the external notmuch binary: search queries,
// message show output, and raw part content. The index itself is a black
// box; this package only shells out and decodes JSON.
package notmuch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
)

// Index is the query surface the UI depends on. The concrete Client shells
// out to notmuch; tests substitute notmuchtest.MockIndex.
type Index interface {
	// Search returns at most limit result rows for a free-text query,
	// newest first.
	Search(ctx context.Context, query string, limit int) ([]SearchRow, error)

	// Show returns the first message matching the id term, with headers
	// and the nested part tree.
	Show(ctx context.Context, idTerm string) (*Message, error)

	// PartContent returns the raw bytes of one part of the matched
	// message.
	PartContent(ctx context.Context, idTerm string, partID int) ([]byte, error)
}

// Client runs the notmuch binary. The zero value uses "notmuch" from PATH.
type Client struct {
	Bin string
}

var _ Index = (*Client)(nil)

func (c *Client) bin() string {
	if c.Bin != "" {
		return c.Bin
	}
	return "notmuch"
}

// run executes notmuch with the given arguments and returns stdout.
// Failures carry the tail of stderr so query syntax errors surface intact.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.bin(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, eris.Wrap(err, fmt.Sprintf("notmuch %s: %s", args[0], detail))
	}
	return stdout.Bytes(), nil
}

// searchItem is the wire shape of one search result.
type searchItem struct {
	Thread       string   `json:"thread"`
	Timestamp    int64    `json:"timestamp"`
	DateRelative string   `json:"date_relative"`
	Authors      string   `json:"authors"`
	Subject      string   `json:"subject"`
	Tags         []string `json:"tags"`
}

// Search implements Index.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchRow, error) {
	args := []string{"search", "--format=json"}
	if limit > 0 {
		args = append(args, fmt.Sprintf("--limit=%d", limit))
	}
	args = append(args, query)

	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}

	var items []searchItem
	if err := json.Unmarshal(out, &items); err != nil {
		return nil, eris.Wrap(err, "parse notmuch search output")
	}

	rows := make([]SearchRow, 0, len(items))
	for _, item := range items {
		authors := item.Authors
		if authors == "" {
			authors = "???"
		}
		subject := item.Subject
		if subject == "" {
			subject = "???"
		}
		rows = append(rows, SearchRow{
			ID:          "thread:" + item.Thread,
			Authors:     authors,
			Subject:     subject,
			Tags:        item.Tags,
			Timestamp:   item.Timestamp,
			DateDisplay: item.DateRelative,
		})
	}
	return rows, nil
}

// Show implements Index.
func (c *Client) Show(ctx context.Context, idTerm string) (*Message, error) {
	out, err := c.run(ctx, "show", "--format=json", "--entire-thread=false", idTerm)
	if err != nil {
		return nil, err
	}
	msg := findFirstMessage(out)
	if msg == nil {
		return nil, eris.New("no message found in notmuch show output")
	}
	return msg, nil
}

// PartContent implements Index.
func (c *Client) PartContent(ctx context.Context, idTerm string, partID int) ([]byte, error) {
	return c.run(ctx, "show", "--format=raw", "--entire-thread=false",
		fmt.Sprintf("--part=%d", partID), idTerm)
}
