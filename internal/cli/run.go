package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/review-prompt/reviewctl/internal/clipboard"
	"github.com/review-prompt/reviewctl/internal/config"
	"github.com/review-prompt/reviewctl/internal/editor"
	"github.com/review-prompt/reviewctl/internal/ghoutput"
	"github.com/review-prompt/reviewctl/internal/identifier"
	"github.com/review-prompt/reviewctl/internal/prompt"
	"github.com/review-prompt/reviewctl/internal/review"
)

// Unrecoverable pipeline states.
var (
	// ErrNoRepository means no repository could be resolved from the input, flags, config or gh.
	ErrNoRepository = errors.New("no repository specified and couldn't detect the current one; use --repo owner/name or run inside a repository clone")
	// ErrNoComments means extraction produced nothing to format.
	ErrNoComments = errors.New("no comments found matching the criteria")
)

// editorStartupDelay gives the editor time to finish opening before the chat
// focus command is sent.
const editorStartupDelay = 2 * time.Second

// contextFileName is the side artifact written next to the opened PR files.
const contextFileName = ".assistant-instructions.md"

// RepoResolver detects the repository of the working directory.
type RepoResolver interface {
	CurrentRepository(ctx context.Context) string
}

// FileLister reports the file paths touched by a pull request.
type FileLister interface {
	ChangedFiles(ctx context.Context, number, repo string) []string
}

// runDeps carries the injectable capabilities of the extract pipeline.
type runDeps struct {
	Fetcher   review.Fetcher
	Repos     RepoResolver
	Files     FileLister
	Clipboard clipboard.Copier
	Editor    editor.Launcher
	Logger    *slog.Logger
	// WorkDir anchors relative output paths and the local file checks.
	// Empty means the process working directory.
	WorkDir string
	// Sleep is swapped out in tests; nil means time.Sleep.
	Sleep func(time.Duration)
}

// runExtract is the whole pipeline: parse the input, resolve the repository,
// extract comments, render and write the prompt, then run the best-effort
// clipboard and editor steps.
func runExtract(ctx context.Context, deps runDeps, cfg config.Config, flags extractFlags, input string) error {
	logger := deps.Logger

	ref, err := identifier.Parse(input)
	if err != nil {
		return err
	}

	repo := ref.Repo
	if repo == "" {
		repo = flags.Repo
	}
	if repo == "" {
		repo = cfg.Repo
	}
	if repo == "" {
		repo = deps.Repos.CurrentRepository(ctx)
	}
	if repo == "" {
		return ErrNoRepository
	}

	logger.Info("extracting comments", "pr", ref.Number, "repo", repo)
	if flags.User != "" {
		logger.Info("filtering by reviewer", "user", flags.User)
	}
	if ref.ReviewID != "" {
		logger.Info("focusing on one review", "review_id", ref.ReviewID)
	}

	extractor := review.NewExtractor(deps.Fetcher, logger)
	comments := extractor.Extract(ctx, review.Options{
		Number:   ref.Number,
		Repo:     repo,
		Author:   flags.User,
		ReviewID: ref.ReviewID,
	})
	if len(comments) == 0 {
		return ErrNoComments
	}

	text, err := prompt.Render(prompt.Input{
		Number:   ref.Number,
		Repo:     repo,
		Author:   flags.User,
		ReviewID: ref.ReviewID,
		Comments: comments,
	})
	if err != nil {
		return fmt.Errorf("render prompt: %w", err)
	}

	outputPath := resolveOutputPath(deps.WorkDir, cfg.OutputDir, flags, ref)
	if err := os.WriteFile(outputPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write prompt file: %w", err)
	}
	logger.Info("prompt saved", "path", outputPath)

	if flags.Copy || cfg.Copy {
		copyPrompt(deps, text)
	}
	if flags.Open {
		openInEditor(ctx, deps, cfg, flags, ref.Number, repo, outputPath, text)
	}

	logSummary(logger, comments, outputPath)

	if err := ghoutput.Write(map[string]string{
		"prompt_path":   outputPath,
		"comment_count": strconv.Itoa(len(comments)),
	}); err != nil {
		logger.Warn("failed to publish step outputs", "error", err)
	}

	return nil
}

// resolveOutputPath picks the prompt file location: explicit --output wins,
// otherwise the generated name lands in the configured output directory.
func resolveOutputPath(workDir, outputDir string, flags extractFlags, ref identifier.Ref) string {
	path := flags.Output
	if path == "" {
		path = outputFilename(ref.Number, flags.User, ref.ReviewID)
		if outputDir != "" {
			path = filepath.Join(outputDir, path)
		}
	}
	if workDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	return path
}

// outputFilename encodes the PR number and active filters into the file name.
func outputFilename(number, user, reviewID string) string {
	var sb strings.Builder
	sb.WriteString("review_prompt_pr_")
	sb.WriteString(number)
	if user != "" {
		sb.WriteString("_" + user)
	}
	if reviewID != "" {
		sb.WriteString("_review_" + reviewID)
	}
	sb.WriteString(".md")
	return sb.String()
}

// copyPrompt is best effort: clipboard problems never fail the run.
func copyPrompt(deps runDeps, text string) {
	if err := deps.Clipboard.Copy(text); err != nil {
		deps.Logger.Warn("clipboard unavailable", "error", err)
		return
	}
	deps.Logger.Info("prompt copied to clipboard")
}

// openInEditor opens the prompt together with PR files that exist locally,
// writes the workspace context file, and optionally focuses the chat panel.
// Every step here is best effort.
func openInEditor(ctx context.Context, deps runDeps, cfg config.Config, flags extractFlags, number, repo, outputPath, text string) {
	logger := deps.Logger

	files := localChangedFiles(ctx, deps, number, repo)
	if len(files) > 0 {
		logger.Info("found PR files in the working directory", "count", len(files))
	} else {
		logger.Info("no PR files found in the working directory")
	}

	if err := deps.Editor.Open(ctx, outputPath, files...); err != nil {
		logger.Warn("editor not available, prompt saved to file", "error", err)
		return
	}

	if !flags.NoCopy {
		copyPrompt(deps, text)
	}

	writeContextFile(deps, number, repo, files)

	if flags.Chat {
		sleep := deps.Sleep
		if sleep == nil {
			sleep = time.Sleep
		}
		sleep(editorStartupDelay)
		if err := deps.Editor.FocusChat(ctx, cfg.ChatCommand); err != nil {
			logger.Warn("could not focus the assistant chat panel", "error", err)
		}
	}
}

// localChangedFiles filters the PR file list down to paths that exist in the
// working directory.
func localChangedFiles(ctx context.Context, deps runDeps, number, repo string) []string {
	var local []string
	for _, file := range deps.Files.ChangedFiles(ctx, number, repo) {
		full := file
		if deps.WorkDir != "" {
			full = filepath.Join(deps.WorkDir, file)
		}
		if _, err := os.Stat(full); err == nil {
			local = append(local, file)
		}
	}
	return local
}

// writeContextFile drops a short instructions file next to the opened files.
func writeContextFile(deps runDeps, number, repo string, files []string) {
	content, err := prompt.RenderWorkspaceContext(number, repo, files)
	if err != nil {
		deps.Logger.Warn("failed to render workspace context", "error", err)
		return
	}

	path := contextFileName
	if deps.WorkDir != "" {
		path = filepath.Join(deps.WorkDir, contextFileName)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		deps.Logger.Warn("failed to write workspace context", "path", path, "error", err)
		return
	}
	deps.Logger.Info("workspace context written", "path", path)
}

// logSummary reports per-category counts after a successful run.
func logSummary(logger *slog.Logger, comments []review.Comment, outputPath string) {
	counts := make(map[review.Category]int)
	for _, c := range comments {
		counts[c.Category]++
	}

	logger.Info("extraction complete", "total", len(comments), "path", outputPath)
	for _, cat := range []review.Category{
		review.CategoryDescription,
		review.CategoryReview,
		review.CategorySpecificReview,
		review.CategoryGeneral,
		review.CategoryInline,
	} {
		if n := counts[cat]; n > 0 {
			logger.Info("extracted", "category", string(cat), "count", n)
		}
	}
}
