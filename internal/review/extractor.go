package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/review-prompt/reviewctl/internal/ghcli"
)

// Fetcher is the subset of the gh client used during extraction.
type Fetcher interface {
	ViewPullRequest(ctx context.Context, number, repo string) ghcli.PullRequest
	ReviewByID(ctx context.Context, repo, number, reviewID string) ghcli.ReviewDetail
	ReviewComments(ctx context.Context, repo, number, reviewID string) []ghcli.ReviewComment
}

// Options scope a single extraction run.
type Options struct {
	// Number is the pull request number.
	Number string
	// Repo is the owner/name slug.
	Repo string
	// Author restricts full-mode extraction to one reviewer login.
	Author string
	// ReviewID switches to single-review mode when non-empty.
	ReviewID string
}

// Extractor turns fetched pull request data into Comment records.
type Extractor struct {
	gh     Fetcher
	logger *slog.Logger
}

// NewExtractor constructs an Extractor over the given fetcher.
func NewExtractor(gh Fetcher, logger *slog.Logger) *Extractor {
	return &Extractor{gh: gh, logger: logger}
}

// Extract returns the ordered comment records for the scoped pull request.
// An empty result means nothing matched; fetch failures surface the same way.
func (e *Extractor) Extract(ctx context.Context, opts Options) []Comment {
	if opts.ReviewID != "" {
		return e.extractReview(ctx, opts)
	}
	return e.extractAll(ctx, opts)
}

// extractReview fetches one review and its inline comments. The author
// filter is intentionally not applied: asking for a review by id already
// names exactly one reviewer.
func (e *Extractor) extractReview(ctx context.Context, opts Options) []Comment {
	e.logger.Info("fetching specific review", "review_id", opts.ReviewID)

	var out []Comment

	detail := e.gh.ReviewByID(ctx, opts.Repo, opts.Number, opts.ReviewID)
	if strings.TrimSpace(detail.Body) != "" {
		out = append(out, Comment{
			Category: CategorySpecificReview,
			Author:   detail.User.Login,
			Content:  detail.Body,
			State:    detail.State,
			ReviewID: opts.ReviewID,
		})
	}

	for _, c := range e.gh.ReviewComments(ctx, opts.Repo, opts.Number, opts.ReviewID) {
		if strings.TrimSpace(c.Body) == "" {
			continue
		}
		line := c.Line
		if line == 0 {
			line = c.OriginalLine
		}
		out = append(out, Comment{
			Category: CategoryInline,
			Author:   c.User.Login,
			Content:  c.Body,
			File:     c.Path,
			Line:     line,
			DiffSide: c.Side,
			ReviewID: opts.ReviewID,
		})
	}

	return out
}

// extractAll walks the whole pull request: description, reviews, general
// comments, then inline comments grouped by review thread.
func (e *Extractor) extractAll(ctx context.Context, opts Options) []Comment {
	pr := e.gh.ViewPullRequest(ctx, opts.Number, opts.Repo)

	var out []Comment

	if opts.Author == "" && pr.Title != "" && pr.Body != "" {
		out = append(out, Comment{
			Category: CategoryDescription,
			Author:   pr.Author.Login,
			Content:  fmt.Sprintf("**%s**\n\n%s", pr.Title, pr.Body),
		})
	}

	for _, r := range pr.Reviews {
		if opts.Author != "" && r.Author.Login != opts.Author {
			continue
		}
		if strings.TrimSpace(r.Body) == "" {
			continue
		}
		out = append(out, Comment{
			Category: CategoryReview,
			Author:   r.Author.Login,
			Content:  r.Body,
			State:    r.State,
			ReviewID: string(r.ID),
		})
	}

	for _, c := range pr.Comments {
		if opts.Author != "" && c.Author.Login != opts.Author {
			continue
		}
		if strings.TrimSpace(c.Body) == "" {
			continue
		}
		out = append(out, Comment{
			Category: CategoryGeneral,
			Author:   c.Author.Login,
			Content:  c.Body,
		})
	}

	for _, thread := range pr.ReviewThreads {
		for _, c := range thread.Comments {
			if opts.Author != "" && c.Author.Login != opts.Author {
				continue
			}
			if strings.TrimSpace(c.Body) == "" {
				continue
			}
			// The thread location applies to every comment in the thread.
			out = append(out, Comment{
				Category: CategoryInline,
				Author:   c.Author.Login,
				Content:  c.Body,
				File:     thread.Path,
				Line:     thread.Line,
				DiffSide: thread.Side,
			})
		}
	}

	return out
}
