package icons

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleTree = `
icons/
├── AWS
│   ├── Compute
│   │   ├── Lambda.svg
│   │   └── EC2.svg
│   └── Storage
│       └── Simple-Storage-Service.svg
├── Azure
├── General
│   ├── Server.svg
│   └── Database.svg
`

func knownTestProviders() []string {
	return []string{"AWS", "Azure", "GCP", "Kubernetes", "Monitoring", "General"}
}

func TestTreeSource_ParsesProvidersAndCategories(t *testing.T) {
	src := TreeSource{Text: sampleTree, Known: knownTestProviders()}
	entries, err := src.Entries()
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d: %v", len(entries), entries)
	}
	want := []Entry{
		{Provider: "AWS", Category: "Compute", Filename: "Lambda.svg"},
		{Provider: "AWS", Category: "Compute", Filename: "EC2.svg"},
		{Provider: "AWS", Category: "Storage", Filename: "Simple-Storage-Service.svg"},
		{Provider: "General", Category: GeneralCategory, Filename: "Server.svg"},
		{Provider: "General", Category: GeneralCategory, Filename: "Database.svg"},
	}
	for i, e := range want {
		if entries[i] != e {
			t.Fatalf("entry %d: got %+v want %+v", i, entries[i], e)
		}
	}
}

func TestTreeSource_EmptyProviderSectionYieldsNoEntries(t *testing.T) {
	src := TreeSource{Text: sampleTree, Known: knownTestProviders()}
	entries, err := src.Entries()
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	for _, e := range entries {
		if e.Provider == "Azure" {
			t.Fatalf("Azure section is empty but produced %+v", e)
		}
	}
}

func TestTreeSource_UnknownHeaderTreatedAsCategory(t *testing.T) {
	text := "AWS\n  Networking\n    VPC.svg\n"
	src := TreeSource{Text: text, Known: knownTestProviders()}
	entries, err := src.Entries()
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Category != "Networking" {
		t.Fatalf("got %+v", entries)
	}
}

func TestDirSource_WalksProviderTree(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "AWS", "Compute", "Lambda.svg"))
	mustWrite(t, filepath.Join(dir, "General", "Server.svg"))
	mustWrite(t, filepath.Join(dir, "General", "notes.txt")) // ignored

	src := DirSource{Dir: dir, Known: knownTestProviders()}
	entries, err := src.Entries()
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(entries), entries)
	}
	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Filename] = e
	}
	if e := byName["Lambda.svg"]; e.Provider != "AWS" || e.Category != "Compute" {
		t.Fatalf("Lambda: %+v", e)
	}
	if e := byName["Server.svg"]; e.Provider != "General" || e.Category != GeneralCategory {
		t.Fatalf("Server: %+v", e)
	}
}

func TestDirSource_MissingRootFails(t *testing.T) {
	src := DirSource{Dir: filepath.Join(t.TempDir(), "nope"), Known: knownTestProviders()}
	if _, err := src.Entries(); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("<svg/>"), 0o644); err != nil {
		t.Fatal(err)
	}
}
