// Package ghoutput publishes step outputs when reviewctl runs inside a
// GitHub Actions job.
package ghoutput

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Write appends the given key/value pairs to the GITHUB_OUTPUT file. Outside
// of Actions (no GITHUB_OUTPUT set) it is a no-op.
func Write(values map[string]string) error {
	path := strings.TrimSpace(os.Getenv("GITHUB_OUTPUT"))
	if path == "" || len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&sb, "%s=%s\n", key, escapeNewlines(values[key]))
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = f.WriteString(sb.String())
	return err
}

// escapeNewlines encodes line breaks the way the Actions runner expects.
func escapeNewlines(value string) string {
	value = strings.ReplaceAll(value, "\r", "%0D")
	value = strings.ReplaceAll(value, "\n", "%0A")
	return value
}
