package icons

import (
	"strings"
	"unicode"
)

// Root is the path prefix shared by every canonical icon path. The frontend
// resolves icon URLs relative to it, so it is part of the wire contract.
const Root = "assets/icons"

// GeneralCategory is the sentinel category used by providers whose icons sit
// directly under the provider folder with no category nesting.
const GeneralCategory = "General-Icons"

// Ext is the icon file extension recognized by the inventory sources.
const Ext = ".svg"

// Entry is one addressable icon asset.
type Entry struct {
	Provider string `json:"provider"`
	Category string `json:"category"`
	Filename string `json:"filename"`
}

// CanonicalPath returns the single authoritative path for the entry:
// <root>/<provider>/[<category>/]<filename>. The category segment is omitted
// for flat providers (empty or sentinel category).
func (e Entry) CanonicalPath() string {
	if e.Category == "" || e.Category == GeneralCategory {
		return Root + "/" + e.Provider + "/" + e.Filename
	}
	return Root + "/" + e.Provider + "/" + e.Category + "/" + e.Filename
}

// Label derives a human-friendly name from the filename: extension dropped,
// separators replaced by spaces. Used as a matching aid in prompt listings.
func (e Entry) Label() string {
	stem := strings.TrimSuffix(e.Filename, Ext)
	stem = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(stem)
	return strings.Join(strings.Fields(stem), " ")
}

// cloudPrefixTokens are vendor words stripped from candidate names before
// fuzzy lookup, so "Amazon-S3" and "S3" normalize to the same key.
var cloudPrefixTokens = []string{"amazon", "aws", "microsoft", "azure", "google", "gcp"}

// NormalizeName lowercases a filename stem and strips the extension and all
// non-alphanumeric runes. This is the index key for name-based lookup.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.TrimSuffix(name, Ext)
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeCandidate normalizes an externally supplied icon reference for
// lookup: the last path segment is reduced with NormalizeName and leading
// cloud-vendor tokens are stripped. Stripping never leaves the name empty.
func NormalizeCandidate(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		path = path[i+1:]
	}
	name := NormalizeName(path)
	for changed := true; changed; {
		changed = false
		for _, tok := range cloudPrefixTokens {
			if len(name) > len(tok) && strings.HasPrefix(name, tok) {
				name = name[len(tok):]
				changed = true
			}
		}
	}
	return name
}
