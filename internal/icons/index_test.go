package icons

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := Builder{Known: knownTestProviders()}.Build(TreeSource{Text: sampleTree, Known: knownTestProviders()})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return ix
}

func TestIndex_CanonicalPathShape(t *testing.T) {
	ix := testIndex(t)
	for _, e := range ix.Entries() {
		path := e.CanonicalPath()
		if !strings.HasPrefix(path, Root+"/") {
			t.Fatalf("path %q does not start with root", path)
		}
		rest := strings.TrimPrefix(path, Root+"/")
		segs := strings.Split(rest, "/")
		if segs[0] != e.Provider {
			t.Fatalf("path %q: first segment %q != provider %q", path, segs[0], e.Provider)
		}
		if segs[len(segs)-1] != e.Filename {
			t.Fatalf("path %q: last segment != filename %q", path, e.Filename)
		}
	}
}

func TestIndex_CaseInsensitiveLookup(t *testing.T) {
	ix := testIndex(t)
	got, ok := ix.CanonicalByLower("assets/icons/aws/compute/lambda.svg")
	if !ok {
		t.Fatal("expected lookup hit")
	}
	if got != "assets/icons/AWS/Compute/Lambda.svg" {
		t.Fatalf("got %q", got)
	}
}

func TestIndex_NormalizedNameCollisionKeepsFirst(t *testing.T) {
	ix := NewIndex([]Entry{
		{Provider: "AWS", Category: "Compute", Filename: "Lambda.svg"},
		{Provider: "GCP", Category: "Compute", Filename: "lambda.svg"},
	})
	got, ok := ix.ByNormalizedName("lambda")
	if !ok || got != "assets/icons/AWS/Compute/Lambda.svg" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestIndex_DuplicateCanonicalPathDeduped(t *testing.T) {
	ix := NewIndex([]Entry{
		{Provider: "AWS", Category: "Compute", Filename: "Lambda.svg"},
		{Provider: "AWS", Category: "Compute", Filename: "lambda.svg"},
	})
	if ix.Len() != 1 {
		t.Fatalf("expected dedup to 1, got %d", ix.Len())
	}
}

func TestBuilder_UnreadableSourceYieldsEmptyIndex(t *testing.T) {
	src := DirSource{Dir: filepath.Join(t.TempDir(), "missing")}
	ix, err := Builder{Known: knownTestProviders()}.Build(src)
	if !errors.Is(err, ErrInventoryUnavailable) {
		t.Fatalf("expected ErrInventoryUnavailable, got %v", err)
	}
	if ix == nil || ix.Len() != 0 {
		t.Fatalf("expected usable empty index, got %+v", ix)
	}
}

func TestBuilder_GeneralDirSupplementsInventory(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "Server.svg")) // already in inventory
	mustWrite(t, filepath.Join(dir, "Queue.svg"))  // on disk only

	b := Builder{Known: knownTestProviders(), GeneralDir: dir}
	ix, err := b.Build(TreeSource{Text: sampleTree, Known: knownTestProviders()})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	general := ix.EntriesFor(GeneralProvider)
	names := map[string]int{}
	for _, e := range general {
		names[e.Filename]++
	}
	if names["Server.svg"] != 1 {
		t.Fatalf("Server.svg should be deduped, counts: %v", names)
	}
	if names["Queue.svg"] != 1 {
		t.Fatalf("Queue.svg should be supplemented, counts: %v", names)
	}
}

func TestNormalizeCandidate_StripsVendorPrefixAndPath(t *testing.T) {
	cases := map[string]string{
		"Amazon-S3.svg":             "s3",
		"assets/icons/AWS/EC2.svg":  "ec2",
		"Azure-Virtual-Machine.svg": "virtualmachine",
		"google_BigQuery.svg":       "bigquery",
	}
	for in, want := range cases {
		if got := NormalizeCandidate(in); got != want {
			t.Fatalf("NormalizeCandidate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEntryLabel(t *testing.T) {
	e := Entry{Provider: "AWS", Category: "Storage", Filename: "Simple-Storage-Service.svg"}
	if got := e.Label(); got != "Simple Storage Service" {
		t.Fatalf("label = %q", got)
	}
}
