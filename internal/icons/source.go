package icons

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Source lists icon entries from some inventory backing. Both the textual
// tree and the on-disk folder layout map to the same Entry shape, so the
// index builder stays adapter-agnostic.
type Source interface {
	// Providers returns the provider names the source can enumerate.
	Providers() []string
	// Entries returns every icon entry in traversal order.
	Entries() ([]Entry, error)
}

// TreeSource parses a semi-structured indented inventory listing: provider
// section headers, nested category lines, and leaf icon filenames, possibly
// decorated with tree-drawing glyphs.
type TreeSource struct {
	Text string
	// Known restricts which section headers open a provider section.
	Known []string
}

func (s TreeSource) Providers() []string { return append([]string(nil), s.Known...) }

// Entries walks the listing in a single linear pass, tracking the current
// provider section and the most recently seen category line.
func (s TreeSource) Entries() ([]Entry, error) {
	known := make(map[string]string, len(s.Known))
	for _, p := range s.Known {
		known[strings.ToLower(p)] = p
	}

	var out []Entry
	provider := ""
	category := ""
	for _, line := range strings.Split(s.Text, "\n") {
		name := cleanTreeLine(line)
		if name == "" {
			continue
		}
		if p, ok := known[strings.ToLower(strings.TrimSuffix(name, "/"))]; ok {
			provider = p
			category = ""
			continue
		}
		if provider == "" {
			continue
		}
		if strings.HasSuffix(strings.ToLower(name), Ext) {
			cat := category
			if cat == "" {
				cat = GeneralCategory
			}
			out = append(out, Entry{Provider: provider, Category: cat, Filename: name})
			continue
		}
		category = strings.TrimSuffix(name, "/")
	}
	return out, nil
}

// cleanTreeLine strips tree-drawing glyphs and indentation from a listing
// line, returning the bare node name.
func cleanTreeLine(line string) string {
	return strings.TrimFunc(line, func(r rune) bool {
		switch r {
		case ' ', '\t', '\r', '│', '├', '└', '─', '|', '`', '+':
			return true
		}
		return false
	})
}

// DirSource lists icons by walking a filesystem tree rooted at the icons
// folder: <dir>/<provider>/[<category>/]<file>.svg.
type DirSource struct {
	Dir string
	// Known, when non-empty, restricts which top-level directories are
	// treated as provider sections.
	Known []string
}

func (s DirSource) Providers() []string { return append([]string(nil), s.Known...) }

func (s DirSource) Entries() ([]Entry, error) {
	known := make(map[string]bool, len(s.Known))
	for _, p := range s.Known {
		known[strings.ToLower(p)] = true
	}

	var out []Entry
	err := filepath.WalkDir(s.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.Dir {
				return err
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), Ext) {
			return nil
		}
		rel, err := filepath.Rel(s.Dir, path)
		if err != nil {
			return nil
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) < 2 {
			return nil
		}
		provider := parts[0]
		if len(known) > 0 && !known[strings.ToLower(provider)] {
			return nil
		}
		category := GeneralCategory
		if len(parts) > 2 {
			category = strings.Join(parts[1:len(parts)-1], "/")
		}
		out = append(out, Entry{Provider: provider, Category: category, Filename: parts[len(parts)-1]})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// scanProviderDir lists icon filenames directly under dir, one level deep.
// Used for the supplementary disk scan when the textual inventory drifts
// from the on-disk contents.
func scanProviderDir(dir string) []string {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), Ext) {
			continue
		}
		names = append(names, e.Name())
	}
	return names
}
