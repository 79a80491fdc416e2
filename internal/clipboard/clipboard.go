// Package clipboard puts the system clipboard behind a small interface so
// the pipeline can be tested without touching the host.
package clipboard

import "github.com/atotto/clipboard"

// Copier writes text to a clipboard destination.
type Copier interface {
	Copy(text string) error
}

// System copies to the OS clipboard.
type System struct{}

// Copy writes the text via the platform clipboard mechanism.
func (System) Copy(text string) error {
	return clipboard.WriteAll(text)
}
