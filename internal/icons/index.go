package icons

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

// ErrInventoryUnavailable wraps inventory source failures. The builder still
// returns a usable (empty) index so downstream stages degrade instead of
// crashing.
var ErrInventoryUnavailable = errors.New("icons: inventory unavailable")

// Index is the immutable, queryable registry of every available icon.
// Once built it is read-only and safe to share across concurrent requests.
type Index struct {
	entries []Entry
	paths   []string // canonical paths, insertion order

	byLower map[string]string // lowercased canonical path -> canonical path
	byName  map[string]string // normalized filename stem -> canonical path
	names   []string          // byName keys, insertion order

	byProvider map[string][]Entry
	providers  []string // insertion order
	general    []string // canonical paths of the General fallback pool
}

// GeneralProvider is the catch-all provider pool used for fallback repair.
const GeneralProvider = "General"

// NewIndex builds the derived lookup structures from entries. Collisions on
// normalized name keep the first-seen entry, so lookup order is the
// inventory traversal order.
func NewIndex(entries []Entry) *Index {
	ix := &Index{
		byLower:    make(map[string]string, len(entries)),
		byName:     make(map[string]string, len(entries)),
		byProvider: make(map[string][]Entry),
	}
	for _, e := range entries {
		canonical := e.CanonicalPath()
		lower := strings.ToLower(canonical)
		if _, dup := ix.byLower[lower]; dup {
			continue
		}
		ix.entries = append(ix.entries, e)
		ix.paths = append(ix.paths, canonical)
		ix.byLower[lower] = canonical
		if name := NormalizeName(e.Filename); name != "" {
			if _, taken := ix.byName[name]; !taken {
				ix.byName[name] = canonical
				ix.names = append(ix.names, name)
			}
		}
		if _, seen := ix.byProvider[e.Provider]; !seen {
			ix.providers = append(ix.providers, e.Provider)
		}
		ix.byProvider[e.Provider] = append(ix.byProvider[e.Provider], e)
		if e.Provider == GeneralProvider {
			ix.general = append(ix.general, canonical)
		}
	}
	return ix
}

// Builder assembles an Index from an inventory source.
type Builder struct {
	Known []string
	// GeneralDir optionally points at the on-disk General icon folder.
	// Files found there but absent from the inventory are appended, because
	// the textual inventory may drift from disk contents.
	GeneralDir string
}

// Build reads the source and constructs the index. A source read failure
// yields an empty index plus a wrapped ErrInventoryUnavailable; callers are
// expected to proceed with reduced matching ability.
func (b Builder) Build(src Source) (*Index, error) {
	entries, err := src.Entries()
	if err != nil {
		return NewIndex(nil), fmt.Errorf("%w: %v", ErrInventoryUnavailable, err)
	}
	if b.GeneralDir != "" {
		seen := make(map[string]bool)
		for _, e := range entries {
			if e.Provider == GeneralProvider {
				seen[strings.ToLower(e.Filename)] = true
			}
		}
		for _, name := range scanProviderDir(b.GeneralDir) {
			if seen[strings.ToLower(name)] {
				continue
			}
			entries = append(entries, Entry{Provider: GeneralProvider, Category: GeneralCategory, Filename: name})
		}
	}
	ix := NewIndex(entries)
	for _, p := range b.Known {
		if n := len(ix.byProvider[p]); n == 0 {
			log.Printf("icons: provider %s has no inventory entries", p)
		}
	}
	return ix, nil
}

// Len reports the number of indexed icons.
func (ix *Index) Len() int { return len(ix.entries) }

// Entries returns all entries in insertion order.
func (ix *Index) Entries() []Entry { return ix.entries }

// Providers returns provider names in first-seen order.
func (ix *Index) Providers() []string { return ix.providers }

// EntriesFor returns the entries of one provider in insertion order.
func (ix *Index) EntriesFor(provider string) []Entry { return ix.byProvider[provider] }

// CanonicalByLower resolves a case-insensitive path to its canonical casing.
func (ix *Index) CanonicalByLower(path string) (string, bool) {
	c, ok := ix.byLower[strings.ToLower(path)]
	return c, ok
}

// ByNormalizedName resolves a normalized filename stem to a canonical path.
func (ix *Index) ByNormalizedName(name string) (string, bool) {
	c, ok := ix.byName[name]
	return c, ok
}

// GeneralFallback returns the first icon of the General pool, if any.
func (ix *Index) GeneralFallback() (string, bool) {
	if len(ix.general) == 0 {
		return "", false
	}
	return ix.general[0], true
}
