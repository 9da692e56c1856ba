package jsonutil

import (
	"strings"
	"testing"
)

func TestMarshalNoEscape(t *testing.T) {
	b, err := MarshalNoEscape(map[string]string{"label": "a -> b & c"})
	if err != nil {
		t.Fatal(err)
	}
	got := string(b)
	if strings.Contains(got, `>`) || strings.Contains(got, `&`) {
		t.Fatalf("escaped output: %s", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Fatalf("trailing newline kept: %q", got)
	}
}

func TestUnescapeUnicodeString_PreservesPlainText(t *testing.T) {
	for _, s := range []string{"a > b", `say "hi"`, "plain words"} {
		got, err := UnescapeUnicodeString(s)
		if err != nil {
			t.Fatal(err)
		}
		if got != s {
			t.Fatalf("got %q want %q", got, s)
		}
	}
}

func TestUnmarshalFlex_DirectJSON(t *testing.T) {
	var v struct {
		Label string `json:"label"`
	}
	if err := UnmarshalFlex([]byte(`{"label": "plain"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.Label != "plain" {
		t.Fatalf("got %q", v.Label)
	}
}

func TestUnmarshalFlex_QuotedPayload(t *testing.T) {
	var v struct {
		Label string `json:"label"`
	}
	raw := []byte(`"{\"label\": \"wrapped\"}"`)
	if err := UnmarshalFlex(raw, &v); err != nil {
		t.Fatal(err)
	}
	if v.Label != "wrapped" {
		t.Fatalf("got %q", v.Label)
	}
}

func TestUnmarshalFlex_GarbageFails(t *testing.T) {
	var v map[string]any
	if err := UnmarshalFlex([]byte("not json at all"), &v); err == nil {
		t.Fatal("expected error")
	}
}
