// Package review normalizes pull request feedback into an ordered list of
// comment records that the prompt formatter can render.
package review

// Category classifies where a comment came from.
type Category string

const (
	// CategoryDescription is the pull request title and body.
	CategoryDescription Category = "PR Description"
	// CategoryReview is a top-level review body.
	CategoryReview Category = "Review"
	// CategorySpecificReview is the body of an explicitly requested review.
	CategorySpecificReview Category = "Specific Review"
	// CategoryGeneral is a conversation-tab comment.
	CategoryGeneral Category = "General Comment"
	// CategoryInline is a comment anchored to a diff location.
	CategoryInline Category = "Inline Comment"
)

// Review states recognized by the prompt formatter.
const (
	StateChangesRequested = "CHANGES_REQUESTED"
	StateCommented        = "COMMENTED"
	StateApproved         = "APPROVED"
)

// Comment is one extracted record. Records are never mutated after
// construction and keep the discovery order of the fetched data.
type Comment struct {
	Category Category
	Author   string
	Content  string
	// State is set for review bodies only.
	State string
	// File, Line and DiffSide locate inline comments in the diff.
	File     string
	Line     int
	DiffSide string
	ReviewID string
}
