// Package diagram defines the node/edge payload produced by generation and
// consumed by the editing surface, plus parsing and icon-path repair.
package diagram

import "encoding/json"

// Position is a node's canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one diagram component. Icon is a candidate icon path and may be
// invalid until the payload has passed through Repair.
type Node struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Icon     string   `json:"icon,omitempty"`
	Type     string   `json:"type,omitempty"`
	Position Position `json:"position"`
}

// Edge connects two nodes by id.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
	Type   string `json:"type,omitempty"`
}

// Payload is the diagram wire shape: the one contract that must stay
// bit-compatible with saved diagrams.
type Payload struct {
	Nodes    []Node          `json:"nodes"`
	Edges    []Edge          `json:"edges"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}
