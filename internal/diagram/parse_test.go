package diagram

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_ToleratesProseAndCodeFence(t *testing.T) {
	raw := "Here is your architecture diagram:\n```json\n" +
		`{"nodes": [{"id": "web", "label": "Web Server", "icon": "assets/icons/General/Server.svg", "position": {"x": 0, "y": 0}}], "edges": []}` +
		"\n```\nLet me know if you need changes."
	p, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(p.Nodes) != 1 || p.Nodes[0].ID != "web" {
		t.Fatalf("nodes: %+v", p.Nodes)
	}
	if p.Nodes[0].Icon != "assets/icons/General/Server.svg" {
		t.Fatalf("icon: %q", p.Nodes[0].Icon)
	}
}

func TestParse_RefusalIsParseError(t *testing.T) {
	raw := "I cannot help with that request."
	_, err := Parse(raw)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Raw != raw {
		t.Fatalf("Raw = %q", perr.Raw)
	}
}

func TestParse_UnbalancedJSONIsParseError(t *testing.T) {
	_, err := Parse(`{"nodes": [`)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if !strings.Contains(perr.Raw, "nodes") {
		t.Fatalf("Raw should carry the response, got %q", perr.Raw)
	}
}

func TestParse_MissingArraysComeBackEmpty(t *testing.T) {
	p, err := Parse(`{"metadata": {"title": "t"}}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Nodes == nil || len(p.Nodes) != 0 {
		t.Fatalf("nodes: %#v", p.Nodes)
	}
	if p.Edges == nil || len(p.Edges) != 0 {
		t.Fatalf("edges: %#v", p.Edges)
	}
	if p.Metadata == nil {
		t.Fatal("metadata dropped")
	}
}

func TestParse_PositionsAndEdgesSurvive(t *testing.T) {
	p, err := Parse(`{
		"nodes": [
			{"id": "a", "label": "A", "position": {"x": 100, "y": 40}},
			{"id": "b", "label": "B", "position": {"x": 320, "y": 40}}
		],
		"edges": [{"id": "e1", "source": "a", "target": "b", "label": "calls"}]
	}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Nodes[1].Position.X != 320 {
		t.Fatalf("position: %+v", p.Nodes[1].Position)
	}
	if p.Edges[0].Source != "a" || p.Edges[0].Target != "b" {
		t.Fatalf("edge: %+v", p.Edges[0])
	}
}
