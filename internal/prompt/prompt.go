// Package prompt renders extracted review comments into markdown prompts
// for AI coding assistants.
package prompt

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/review-prompt/reviewctl/internal/review"
)

//go:embed templates/*.tmpl
var builtinTemplates embed.FS

// Input carries everything the prompt template needs.
type Input struct {
	// Number is the pull request number.
	Number string
	// Repo is the owner/name slug.
	Repo string
	// Author is the active reviewer filter, empty when none.
	Author string
	// ReviewID is the requested review id, empty in full mode.
	ReviewID string
	// Comments is the ordered record list from the extractor.
	Comments []review.Comment
}

// promptData is the view model handed to the prompt template.
type promptData struct {
	Number     string
	Repo       string
	Author     string
	ReviewID   string
	PRLink     string
	ReviewLink string
	Reviews    []block
	Inline     []block
	General    []block
}

// block is one rendered comment entry.
type block struct {
	Emoji    string
	Author   string
	State    string
	Location string
	ReviewID string
	Content  string
}

// workspaceData is the view model for the workspace context file.
type workspaceData struct {
	Number string
	Repo   string
	Files  []string
}

// Render produces the full markdown prompt. Output is deterministic for
// identical input.
func Render(in Input) (string, error) {
	return execute("review_prompt.tmpl", buildData(in))
}

// RenderWorkspaceContext produces the short context file written next to
// the PR files when the editor is opened.
func RenderWorkspaceContext(number, repo string, files []string) (string, error) {
	return execute("workspace_context.tmpl", workspaceData{Number: number, Repo: repo, Files: files})
}

// execute loads, parses and runs one embedded template.
func execute(name string, data any) (string, error) {
	raw, err := builtinTemplates.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("load template %q: %w", name, err)
	}

	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("parse template %q: %w", name, err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render template %q: %w", name, err)
	}
	return sb.String(), nil
}

// buildData sorts comments into the three rendered buckets. Review bodies
// without a recognized state stay out of every bucket.
func buildData(in Input) promptData {
	data := promptData{
		Number:   in.Number,
		Repo:     in.Repo,
		Author:   in.Author,
		ReviewID: in.ReviewID,
		PRLink:   fmt.Sprintf("https://github.com/%s/pull/%s", in.Repo, in.Number),
	}
	if in.ReviewID != "" {
		data.ReviewLink = fmt.Sprintf("%s#pullrequestreview-%s", data.PRLink, in.ReviewID)
	}

	for _, c := range in.Comments {
		switch c.Category {
		case review.CategoryReview, review.CategorySpecificReview:
			if !recognizedState(c.State) {
				continue
			}
			emoji := "💬"
			if c.State == review.StateChangesRequested {
				emoji = "🔴"
			}
			data.Reviews = append(data.Reviews, block{
				Emoji:    emoji,
				Author:   c.Author,
				State:    c.State,
				ReviewID: c.ReviewID,
				Content:  c.Content,
			})
		case review.CategoryInline:
			data.Inline = append(data.Inline, block{
				Author:   c.Author,
				Location: location(c),
				Content:  c.Content,
			})
		case review.CategoryGeneral:
			data.General = append(data.General, block{
				Author:  c.Author,
				Content: c.Content,
			})
		}
	}
	return data
}

func recognizedState(state string) bool {
	switch state {
	case review.StateChangesRequested, review.StateCommented, review.StateApproved:
		return true
	}
	return false
}

// location formats the diff position of an inline comment.
func location(c review.Comment) string {
	if c.File == "" {
		return ""
	}
	loc := fmt.Sprintf(" in `%s`", c.File)
	if c.Line > 0 {
		loc += fmt.Sprintf(" (line %d)", c.Line)
	}
	return loc
}
