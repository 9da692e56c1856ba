package prompt

import (
	"strings"
	"testing"

	"archcanvas/internal/icons"
)

func promptIndex() *icons.Index {
	return icons.NewIndex([]icons.Entry{
		{Provider: "AWS", Category: "Compute", Filename: "Lambda.svg"},
		{Provider: "AWS", Category: "Storage", Filename: "S3-Bucket.svg"},
		{Provider: "Azure", Category: "Compute", Filename: "Virtual-Machine.svg"},
		{Provider: "General", Category: icons.GeneralCategory, Filename: "Server.svg"},
	})
}

func TestCompose_CarriesDescriptionVerbatim(t *testing.T) {
	desc := "An event-driven ingest pipeline with a dead-letter queue."
	out := Compose(desc, []string{"AWS"}, promptIndex())
	if !strings.Contains(out, "[DESCRIPTION]\n"+desc) {
		t.Fatalf("description not embedded verbatim:\n%s", out)
	}
}

func TestCompose_ListsOnlySelectedProvidersPlusGeneral(t *testing.T) {
	out := Compose("desc", []string{"AWS"}, promptIndex())
	if !strings.Contains(out, "assets/icons/AWS/Compute/Lambda.svg") {
		t.Fatalf("missing AWS icon:\n%s", out)
	}
	if !strings.Contains(out, "assets/icons/General/Server.svg") {
		t.Fatalf("missing General icon:\n%s", out)
	}
	if strings.Contains(out, "Virtual-Machine.svg") {
		t.Fatalf("unselected Azure icon leaked:\n%s", out)
	}
}

func TestCompose_IconLinesCarryLabels(t *testing.T) {
	out := Compose("desc", []string{"AWS"}, promptIndex())
	if !strings.Contains(out, "assets/icons/AWS/Storage/S3-Bucket.svg  (S3 Bucket)") {
		t.Fatalf("label line missing:\n%s", out)
	}
}

func TestCompose_IncludesSchemaAndSpacingRule(t *testing.T) {
	out := Compose("desc", nil, promptIndex())
	for _, want := range []string{
		"[OUTPUT_FORMAT]",
		`"nodes"`,
		`"edges"`,
		"Keep at least 180 units",
		"Return JSON only",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestCompose_IsDeterministic(t *testing.T) {
	ix := promptIndex()
	a := Compose("desc", []string{"AWS", "Azure"}, ix)
	b := Compose("desc", []string{"AWS", "Azure"}, ix)
	if a != b {
		t.Fatal("compose output differs between calls")
	}
}

func TestCompose_EmptyIndexStillProducesPrompt(t *testing.T) {
	out := Compose("desc", []string{"AWS"}, icons.NewIndex(nil))
	if !strings.Contains(out, "(no icons available)") {
		t.Fatalf("missing empty listing marker:\n%s", out)
	}
}
