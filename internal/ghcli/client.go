// Package ghcli wraps the authenticated GitHub CLI (gh) used for all
// platform access. Failed invocations degrade to empty results after
// logging, so callers never deal with transport errors directly.
package ghcli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// prViewFields lists the JSON fields requested from "gh pr view".
const prViewFields = "reviews,comments,reviewThreads,title,body,author"

// Client exposes typed operations over the gh binary.
type Client struct {
	logger *slog.Logger
	runner Runner
}

// NewClient constructs a Client. A nil runner falls back to ExecRunner.
func NewClient(logger *slog.Logger, runner Runner) *Client {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Client{logger: logger, runner: runner}
}

// ViewPullRequest fetches the pull request with its reviews, conversation
// comments and review threads. Repo may be empty to use the current directory.
func (c *Client) ViewPullRequest(ctx context.Context, number, repo string) PullRequest {
	args := []string{"pr", "view", number, "--json", prViewFields}
	if repo != "" {
		args = append(args, "--repo", repo)
	}

	var pr PullRequest
	c.structuredQuery(ctx, &pr, args...)
	return pr
}

// ReviewByID fetches a single review through the REST API.
func (c *Client) ReviewByID(ctx context.Context, repo, number, reviewID string) ReviewDetail {
	var detail ReviewDetail
	c.structuredQuery(ctx, &detail, "api", fmt.Sprintf("repos/%s/pulls/%s/reviews/%s", repo, number, reviewID))
	return detail
}

// ReviewComments fetches the inline comments belonging to one review.
func (c *Client) ReviewComments(ctx context.Context, repo, number, reviewID string) []ReviewComment {
	var comments []ReviewComment
	c.structuredQuery(ctx, &comments, "api", fmt.Sprintf("repos/%s/pulls/%s/reviews/%s/comments", repo, number, reviewID))
	return comments
}

// CurrentRepository resolves the owner/name slug of the repository in the
// working directory, or empty when gh cannot determine one.
func (c *Client) CurrentRepository(ctx context.Context) string {
	var out struct {
		NameWithOwner string `json:"nameWithOwner"`
	}
	c.structuredQuery(ctx, &out, "repo", "view", "--json", "nameWithOwner")
	return strings.TrimSpace(out.NameWithOwner)
}

// ChangedFiles lists the file paths touched by the pull request. The output
// of "gh pr diff --name-only" is plain lines rather than JSON.
func (c *Client) ChangedFiles(ctx context.Context, number, repo string) []string {
	args := []string{"pr", "diff", number, "--name-only"}
	if repo != "" {
		args = append(args, "--repo", repo)
	}

	stdout, stderr, err := c.runner.Run(ctx, args...)
	if err != nil {
		c.warnFailure(args, stderr, err)
		return nil
	}

	var files []string
	for _, line := range strings.Split(string(stdout), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			files = append(files, trimmed)
		}
	}
	return files
}

// structuredQuery runs gh and decodes its stdout JSON into out. Platform
// failures are logged and leave out untouched so callers observe an empty
// result instead of an error.
func (c *Client) structuredQuery(ctx context.Context, out any, args ...string) {
	stdout, stderr, err := c.runner.Run(ctx, args...)
	if err != nil {
		c.warnFailure(args, stderr, err)
		return
	}

	if len(bytes.TrimSpace(stdout)) == 0 {
		return
	}
	if err := json.Unmarshal(stdout, out); err != nil {
		c.logger.Warn("decode gh output", "args", strings.Join(args, " "), "error", err)
	}
}

func (c *Client) warnFailure(args []string, stderr []byte, err error) {
	c.logger.Warn("gh command failed",
		"args", strings.Join(args, " "),
		"stderr", strings.TrimSpace(string(stderr)),
		"error", err,
	)
}
