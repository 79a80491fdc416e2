// Package identifier parses user-supplied pull request references.
package identifier

import (
	"errors"
	"regexp"
)

// ErrInvalidInput is returned when the input is neither a PR number nor a PR URL.
var ErrInvalidInput = errors.New("Invalid input. Provide either a GitHub PR URL or a PR number.")

var (
	numberPattern = regexp.MustCompile(`^\d+$`)
	urlPattern    = regexp.MustCompile(`https://github\.com/([^/]+/[^/]+)/pull/(\d+)`)
	reviewPattern = regexp.MustCompile(`pullrequestreview-(\d+)`)
)

// Ref identifies a pull request and optionally one specific review on it.
type Ref struct {
	// Repo is the "owner/name" slug when the input was a full URL, empty otherwise.
	Repo string
	// Number is the pull request number exactly as the user gave it.
	Number string
	// ReviewID is the id from a pullrequestreview fragment, empty when absent.
	ReviewID string
}

// Parse converts a PR number or a PR URL into a Ref. URLs may carry a
// pullrequestreview fragment anywhere in the string to select one review.
func Parse(input string) (Ref, error) {
	if numberPattern.MatchString(input) {
		return Ref{Number: input}, nil
	}

	m := urlPattern.FindStringSubmatch(input)
	if m == nil {
		return Ref{}, ErrInvalidInput
	}

	ref := Ref{Repo: m[1], Number: m[2]}
	if rm := reviewPattern.FindStringSubmatch(input); rm != nil {
		ref.ReviewID = rm[1]
	}
	return ref, nil
}
