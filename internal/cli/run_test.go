package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/review-prompt/reviewctl/internal/config"
	"github.com/review-prompt/reviewctl/internal/ghcli"
	"github.com/review-prompt/reviewctl/internal/logging"
)

type fakeFetcher struct {
	pr ghcli.PullRequest
}

func (f *fakeFetcher) ViewPullRequest(context.Context, string, string) ghcli.PullRequest {
	return f.pr
}

func (f *fakeFetcher) ReviewByID(context.Context, string, string, string) ghcli.ReviewDetail {
	return ghcli.ReviewDetail{}
}

func (f *fakeFetcher) ReviewComments(context.Context, string, string, string) []ghcli.ReviewComment {
	return nil
}

type fakeRepoResolver struct {
	repo  string
	calls int
}

func (f *fakeRepoResolver) CurrentRepository(context.Context) string {
	f.calls++
	return f.repo
}

type fakeFileLister struct {
	files []string
}

func (f *fakeFileLister) ChangedFiles(context.Context, string, string) []string {
	return f.files
}

type recordingClipboard struct {
	text string
	err  error
}

func (r *recordingClipboard) Copy(text string) error {
	if r.err != nil {
		return r.err
	}
	r.text = text
	return nil
}

type recordingEditor struct {
	prompt  string
	related []string
	chatCmd string
	openErr error
	chatErr error
	opened  bool
	focused bool
}

func (r *recordingEditor) Open(_ context.Context, prompt string, related ...string) error {
	if r.openErr != nil {
		return r.openErr
	}
	r.opened = true
	r.prompt = prompt
	r.related = related
	return nil
}

func (r *recordingEditor) FocusChat(_ context.Context, command string) error {
	if r.chatErr != nil {
		return r.chatErr
	}
	r.focused = true
	r.chatCmd = command
	return nil
}

func commentedPR() ghcli.PullRequest {
	return ghcli.PullRequest{
		Reviews: []ghcli.Review{
			{ID: "777", Author: ghcli.Actor{Login: "sam"}, Body: "Split this up.", State: "CHANGES_REQUESTED"},
		},
	}
}

func testDeps(t *testing.T, pr ghcli.PullRequest) (runDeps, *recordingClipboard, *recordingEditor) {
	t.Helper()
	t.Setenv("GITHUB_OUTPUT", "")
	clip := &recordingClipboard{}
	ed := &recordingEditor{}
	deps := runDeps{
		Fetcher:   &fakeFetcher{pr: pr},
		Repos:     &fakeRepoResolver{},
		Files:     &fakeFileLister{},
		Clipboard: clip,
		Editor:    ed,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		WorkDir:   t.TempDir(),
		Sleep:     func(time.Duration) {},
	}
	return deps, clip, ed
}

func TestRunExtractInvalidInput(t *testing.T) {
	deps, _, _ := testDeps(t, commentedPR())

	err := runExtract(context.Background(), deps, config.Default(), extractFlags{}, "not-a-pr")

	assert.ErrorContains(t, err, "Invalid input")
}

func TestRunExtractNoRepository(t *testing.T) {
	deps, _, _ := testDeps(t, commentedPR())

	err := runExtract(context.Background(), deps, config.Default(), extractFlags{}, "937")

	assert.ErrorIs(t, err, ErrNoRepository)

	entries, readErr := os.ReadDir(deps.WorkDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRunExtractNoComments(t *testing.T) {
	deps, _, _ := testDeps(t, ghcli.PullRequest{})
	flags := extractFlags{Repo: "acme/widgets"}

	err := runExtract(context.Background(), deps, config.Default(), flags, "937")

	assert.ErrorIs(t, err, ErrNoComments)

	entries, readErr := os.ReadDir(deps.WorkDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRunExtractWritesPromptFile(t *testing.T) {
	deps, _, _ := testDeps(t, commentedPR())
	flags := extractFlags{Repo: "acme/widgets"}

	err := runExtract(context.Background(), deps, config.Default(), flags, "937")
	require.NoError(t, err)

	raw, readErr := os.ReadFile(filepath.Join(deps.WorkDir, "review_prompt_pr_937.md"))
	require.NoError(t, readErr)
	assert.Contains(t, string(raw), "# Code Review Fixes for PR #937")
	assert.Contains(t, string(raw), "Split this up.")
}

func TestRunExtractRepoResolutionOrder(t *testing.T) {
	deps, _, _ := testDeps(t, commentedPR())
	resolver := &fakeRepoResolver{repo: "acme/fallback"}
	deps.Repos = resolver

	// URL repo wins, so gh is never asked.
	err := runExtract(context.Background(), deps, config.Default(), extractFlags{},
		"https://github.com/acme/widgets/pull/42")
	require.NoError(t, err)
	assert.Zero(t, resolver.calls)

	// Bare number falls through to gh.
	err = runExtract(context.Background(), deps, config.Default(), extractFlags{}, "42")
	require.NoError(t, err)
	assert.Equal(t, 1, resolver.calls)
}

func TestRunExtractFilenameEncodesFilters(t *testing.T) {
	deps, _, _ := testDeps(t, commentedPR())
	flags := extractFlags{User: "sam"}

	err := runExtract(context.Background(), deps, config.Default(), flags,
		"https://github.com/acme/widgets/pull/42")
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(deps.WorkDir, "review_prompt_pr_42_sam.md"))
	assert.NoError(t, statErr)
}

func TestRunExtractExplicitOutputPath(t *testing.T) {
	deps, _, _ := testDeps(t, commentedPR())
	flags := extractFlags{Repo: "acme/widgets", Output: "prompt.md"}

	err := runExtract(context.Background(), deps, config.Default(), flags, "937")
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(deps.WorkDir, "prompt.md"))
	assert.NoError(t, statErr)
}

func TestRunExtractCopyFlag(t *testing.T) {
	deps, clip, _ := testDeps(t, commentedPR())
	flags := extractFlags{Repo: "acme/widgets", Copy: true}

	err := runExtract(context.Background(), deps, config.Default(), flags, "937")
	require.NoError(t, err)

	assert.Contains(t, clip.text, "# Code Review Fixes for PR #937")
}

func TestRunExtractClipboardFailureIsNotFatal(t *testing.T) {
	deps, clip, _ := testDeps(t, commentedPR())
	clip.err = errors.New("no display")
	flags := extractFlags{Repo: "acme/widgets", Copy: true}

	err := runExtract(context.Background(), deps, config.Default(), flags, "937")

	assert.NoError(t, err)
}

func TestRunExtractOpensEditorWithLocalFiles(t *testing.T) {
	deps, clip, ed := testDeps(t, commentedPR())
	require.NoError(t, os.WriteFile(filepath.Join(deps.WorkDir, "cache.go"), []byte("package main\n"), 0o644))
	deps.Files = &fakeFileLister{files: []string{"cache.go", "missing.go"}}
	flags := extractFlags{Repo: "acme/widgets", Open: true}

	err := runExtract(context.Background(), deps, config.Default(), flags, "937")
	require.NoError(t, err)

	assert.True(t, ed.opened)
	assert.Equal(t, []string{"cache.go"}, ed.related)
	// Opening the editor auto-copies unless --no-copy is set.
	assert.NotEmpty(t, clip.text)

	_, statErr := os.Stat(filepath.Join(deps.WorkDir, contextFileName))
	assert.NoError(t, statErr)
}

func TestRunExtractNoCopySkipsAutoCopy(t *testing.T) {
	deps, clip, ed := testDeps(t, commentedPR())
	flags := extractFlags{Repo: "acme/widgets", Open: true, NoCopy: true}

	err := runExtract(context.Background(), deps, config.Default(), flags, "937")
	require.NoError(t, err)

	assert.True(t, ed.opened)
	assert.Empty(t, clip.text)
}

func TestRunExtractEditorFailureIsNotFatal(t *testing.T) {
	deps, clip, ed := testDeps(t, commentedPR())
	ed.openErr = errors.New("code not installed")
	flags := extractFlags{Repo: "acme/widgets", Open: true}

	err := runExtract(context.Background(), deps, config.Default(), flags, "937")

	assert.NoError(t, err)
	// No auto-copy and no context file when the editor never opened.
	assert.Empty(t, clip.text)
	_, statErr := os.Stat(filepath.Join(deps.WorkDir, contextFileName))
	assert.Error(t, statErr)
}

func TestRunExtractChatFocus(t *testing.T) {
	deps, _, ed := testDeps(t, commentedPR())
	flags := extractFlags{Repo: "acme/widgets", Open: true, Chat: true}

	err := runExtract(context.Background(), deps, config.Default(), flags, "937")
	require.NoError(t, err)

	assert.True(t, ed.focused)
	assert.Equal(t, config.Default().ChatCommand, ed.chatCmd)
}

func TestExecuteRejectsMissingArgument(t *testing.T) {
	logger := logging.NewLogger(io.Discard, logging.LevelError)

	err := Execute(context.Background(), []string{}, logger)

	assert.Error(t, err)
}
