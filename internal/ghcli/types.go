package ghcli

import (
	"bytes"
	"encoding/json"
)

// Actor is a GitHub user reference.
type Actor struct {
	Login string `json:"login"`
}

// PullRequest mirrors the fields requested from "gh pr view --json".
type PullRequest struct {
	Title         string         `json:"title"`
	Body          string         `json:"body"`
	Author        Actor          `json:"author"`
	Reviews       []Review       `json:"reviews"`
	Comments      []IssueComment `json:"comments"`
	ReviewThreads []ReviewThread `json:"reviewThreads"`
}

// Review is a top-level pull request review.
type Review struct {
	ID     ID     `json:"id"`
	Author Actor  `json:"author"`
	Body   string `json:"body"`
	State  string `json:"state"`
}

// IssueComment is a conversation-tab comment on the pull request.
type IssueComment struct {
	Author Actor  `json:"author"`
	Body   string `json:"body"`
}

// ReviewThread groups inline comments anchored to one diff location.
// The location lives on the thread, not on the individual comments.
type ReviewThread struct {
	Path     string          `json:"path"`
	Line     int             `json:"line"`
	Side     string          `json:"side"`
	Comments []ThreadComment `json:"comments"`
}

// ThreadComment is a single comment inside a review thread.
type ThreadComment struct {
	Author Actor  `json:"author"`
	Body   string `json:"body"`
}

// ReviewDetail is the REST shape of a single pull request review.
type ReviewDetail struct {
	User  Actor  `json:"user"`
	Body  string `json:"body"`
	State string `json:"state"`
}

// ReviewComment is the REST shape of an inline comment attached to a review.
type ReviewComment struct {
	User         Actor  `json:"user"`
	Body         string `json:"body"`
	Path         string `json:"path"`
	Line         int    `json:"line"`
	OriginalLine int    `json:"original_line"`
	Side         string `json:"side"`
}

// ID tolerates both REST numeric ids and GraphQL node-id strings, which gh
// emits depending on the endpoint.
type ID string

// UnmarshalJSON accepts a JSON number, string or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}
