package diagram

import "archcanvas/internal/icons"

// UnresolvedNode identifies a node whose icon could not be repaired.
type UnresolvedNode struct {
	NodeID       string `json:"nodeId"`
	OriginalPath string `json:"originalPath"`
}

// Report summarizes what Repair did to a payload.
type Report struct {
	// Fixed counts icons rewritten to a different (valid) path, including
	// pure casing corrections.
	Fixed int `json:"fixedCount"`
	// Invalid counts icons that were not exact canonical paths on input.
	Invalid int `json:"invalidCount"`
	// Unresolved lists nodes left with their original, invalid path because
	// no stage produced a match (only possible with an empty General pool).
	Unresolved []UnresolvedNode `json:"unresolved,omitempty"`
}

// Repair verifies every non-empty node icon against the index and rewrites
// invalid ones via staged resolution. The input payload is not mutated;
// nodes are processed independently and a node that cannot be resolved is
// flagged rather than failing the diagram. Re-running on an already valid
// payload is a no-op with a zero report.
func Repair(p Payload, ix *icons.Index) (Payload, Report) {
	out := p
	out.Nodes = make([]Node, len(p.Nodes))
	copy(out.Nodes, p.Nodes)

	var rep Report
	for i := range out.Nodes {
		node := &out.Nodes[i]
		if node.Icon == "" {
			continue
		}
		canonical, stage, ok := ix.Resolve(node.Icon)
		if !ok {
			rep.Invalid++
			rep.Unresolved = append(rep.Unresolved, UnresolvedNode{NodeID: node.ID, OriginalPath: node.Icon})
			continue
		}
		if stage == icons.StageExact && canonical == node.Icon {
			continue
		}
		rep.Invalid++
		rep.Fixed++
		node.Icon = canonical
	}
	return out, rep
}
