package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Ref
	}{
		{
			name:  "bare number",
			input: "937",
			want:  Ref{Number: "937"},
		},
		{
			name:  "url without fragment",
			input: "https://github.com/acme/widgets/pull/42",
			want:  Ref{Repo: "acme/widgets", Number: "42"},
		},
		{
			name:  "url with review fragment",
			input: "https://github.com/acme/widgets/pull/42#pullrequestreview-777",
			want:  Ref{Repo: "acme/widgets", Number: "42", ReviewID: "777"},
		},
		{
			name:  "url with files tab and review fragment",
			input: "https://github.com/acme/widgets/pull/42/files#pullrequestreview-777",
			want:  Ref{Repo: "acme/widgets", Number: "42", ReviewID: "777"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{
		"",
		"abc",
		"42abc",
		"https://github.com/acme/widgets",
		"https://github.com/acme/widgets/pull/",
		"https://github.com/acme/widgets/pull/abc",
		"github.com/acme/widgets/pull/42",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestParseNumberHasNoRepo(t *testing.T) {
	got, err := Parse("1")
	require.NoError(t, err)
	assert.Empty(t, got.Repo)
	assert.Empty(t, got.ReviewID)
}
