package icons

import "testing"

func TestResolve_ExactCaseCorrection(t *testing.T) {
	ix := testIndex(t)
	got, stage, ok := ix.Resolve("assets/icons/aws/compute/lambda.svg")
	if !ok || stage != StageExact {
		t.Fatalf("stage=%v ok=%v", stage, ok)
	}
	if got != "assets/icons/AWS/Compute/Lambda.svg" {
		t.Fatalf("got %q", got)
	}
}

func TestResolve_NormalizedName(t *testing.T) {
	ix := testIndex(t)
	got, stage, ok := ix.Resolve("Lambda.svg")
	if !ok || stage != StageNormalized {
		t.Fatalf("stage=%v ok=%v", stage, ok)
	}
	if got != "assets/icons/AWS/Compute/Lambda.svg" {
		t.Fatalf("got %q", got)
	}
}

func TestResolve_AliasReachesFullServiceName(t *testing.T) {
	ix := testIndex(t)
	got, stage, ok := ix.Resolve("S3.svg")
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "assets/icons/AWS/Storage/Simple-Storage-Service.svg" {
		t.Fatalf("got %q (stage %v)", got, stage)
	}
}

func TestResolve_PrefixBeatsFallback(t *testing.T) {
	ix := NewIndex([]Entry{
		{Provider: "AWS", Category: "Storage", Filename: "S3-Bucket.svg"},
		{Provider: "General", Category: GeneralCategory, Filename: "Server.svg"},
	})
	got, stage, ok := ix.Resolve("s3.svg")
	if !ok || stage != StageFuzzy {
		t.Fatalf("stage=%v ok=%v got=%q", stage, ok, got)
	}
	if got != "assets/icons/AWS/Storage/S3-Bucket.svg" {
		t.Fatalf("got %q", got)
	}
}

func TestResolve_FallsBackToGeneralPool(t *testing.T) {
	ix := testIndex(t)
	got, stage, ok := ix.Resolve("totally-made-up-icon.svg")
	if !ok || stage != StageFallback {
		t.Fatalf("stage=%v ok=%v", stage, ok)
	}
	if got != "assets/icons/General/Server.svg" {
		t.Fatalf("got %q", got)
	}
}

func TestResolve_NoMatchWithEmptyGeneralPool(t *testing.T) {
	ix := NewIndex([]Entry{
		{Provider: "AWS", Category: "Compute", Filename: "Lambda.svg"},
	})
	_, stage, ok := ix.Resolve("totally-made-up-icon.svg")
	if ok || stage != StageNone {
		t.Fatalf("expected no match, got stage=%v ok=%v", stage, ok)
	}
}

func TestResolve_FuzzyTieKeepsFirstSeen(t *testing.T) {
	ix := NewIndex([]Entry{
		{Provider: "AWS", Category: "Storage", Filename: "Cache-One.svg"},
		{Provider: "AWS", Category: "Storage", Filename: "Cache-Two.svg"},
	})
	got, stage, ok := ix.Resolve("cache.svg")
	if !ok || stage != StageFuzzy {
		t.Fatalf("stage=%v ok=%v", stage, ok)
	}
	if got != "assets/icons/AWS/Storage/Cache-One.svg" {
		t.Fatalf("got %q", got)
	}
}

func TestMatchScore(t *testing.T) {
	if s := matchScore("s3", "s3"); s != 200 {
		t.Fatalf("equality score = %d", s)
	}
	if s := matchScore("s3", "s3bucket"); s <= 0 || s >= 150 {
		t.Fatalf("prefix score = %d", s)
	}
	if s := matchScore("bucket", "s3bucket"); s <= 0 || s >= 100 {
		t.Fatalf("contains score = %d", s)
	}
	if s := matchScore("x", "completelyunrelated"); s != 0 {
		t.Fatalf("unrelated score = %d", s)
	}
}
