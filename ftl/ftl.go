// Package ftl writes the generated language-name outputs: a Fluent-style
// text resource with one "<prefix>-<tag> = <name>" line per locale, and a
// plain supported-locales index.
package ftl

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one output line: a normalized locale tag and its display name.
type Entry struct {
	Tag  string
	Name string
}

// Escape doubles literal braces so a value is safe inside a
// placeholder-aware Fluent resource.
func Escape(value string) string {
	value = strings.ReplaceAll(value, "{", "{{")
	return strings.ReplaceAll(value, "}", "}}")
}

// WriteResource writes entries as "<prefix>-<tag> = <name>" lines, sorted
// lexicographically by tag, creating parent directories as needed.
func WriteResource(path, prefix string, entries []Entry) error {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Tag < sorted[j].Tag })

	var b strings.Builder
	for _, entry := range sorted {
		fmt.Fprintf(&b, "%s-%s = %s\n", prefix, entry.Tag, Escape(entry.Name))
	}
	return writeFile(path, b.String())
}

// WriteSupported writes the sorted locale tags alone, one per line.
func WriteSupported(path string, tags []string) error {
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)

	var b strings.Builder
	for _, tag := range sorted {
		b.WriteString(tag)
		b.WriteByte('\n')
	}
	return writeFile(path, b.String())
}

// Entries converts a tag → name map into a slice, sorted by tag.
func Entries(table map[string]string) []Entry {
	entries := make([]Entry, 0, len(table))
	for tag, name := range table {
		entries = append(entries, Entry{Tag: tag, Name: name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Tag < entries[j].Tag })
	return entries
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
