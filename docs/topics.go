// Package docs embeds the user-facing documentation topics served by
// the "topic" command.
package docs

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.md
var topics embed.FS

// Topic returns the content of a single documentation topic. The
// special name "*" expands to every available topic.
func Topic(name string) (string, error) {
	if name == "*" {
		all, err := AllTopics()
		if err != nil {
			return "", err
		}
		return Topics(all...)
	}

	content, err := topics.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(content), nil
}

// Topics concatenates the content of multiple topics. A "*" in the
// list expands to every available topic.
func Topics(names ...string) (string, error) {
	var b bytes.Buffer
	for _, name := range names {
		if name == "*" {
			all, err := AllTopics()
			if err != nil {
				return "", err
			}
			content, err := Topics(all...)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			continue
		}
		content, err := Topic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// AllTopics returns the sorted names of every available topic. The
// readme is the table of contents, not a topic itself.
func AllTopics() ([]string, error) {
	var names []string
	err := fs.WalkDir(topics, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if base == "readme" {
			return nil
		}
		names = append(names, base)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
