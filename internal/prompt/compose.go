// Package prompt renders the instruction text sent to the generation
// service. Composition is pure string building so tests can assert on the
// output without calling any model.
package prompt

import (
	"bytes"
	"fmt"
	"strings"

	"archcanvas/internal/icons"
	"archcanvas/internal/providers"
)

// MinNodeSpacing is the layout hint embedded in the prompt: minimum distance
// in canvas units between node positions.
const MinNodeSpacing = 180

// diagramSchema documents the required output shape, field by field.
const diagramSchema = `{
  "nodes": [
    {
      "id": "string, unique within the diagram",
      "label": "string, display name of the component",
      "icon": "string, MUST be one of the icon paths listed above, verbatim",
      "type": "string, node kind (service, database, queue, gateway, ...)",
      "position": {"x": 0, "y": 0}
    }
  ],
  "edges": [
    {
      "id": "string, unique within the diagram",
      "source": "string, id of the source node",
      "target": "string, id of the target node",
      "label": "string, optional connection description",
      "type": "string, edge kind (default, dashed, ...)"
    }
  ],
  "metadata": {"title": "string", "description": "string"}
}`

// Compose builds the generation instruction from the user's description, the
// detected providers, and the icon index filtered to those providers plus
// the General pool.
func Compose(freeText string, selected []string, ix *icons.Index) string {
	allowed := make(map[string]bool, len(selected)+1)
	for _, p := range selected {
		allowed[p] = true
	}
	allowed[providers.General] = true

	var buf bytes.Buffer
	writeSection(&buf, "PURPOSE", "Design a cloud architecture diagram for the description below and return it as a single JSON object.")
	writeSection(&buf, "DESCRIPTION", freeText)
	writeSection(&buf, "ICONS", formatIconListing(ix, allowed))
	writeSection(&buf, "OUTPUT_FORMAT", diagramSchema)
	writeSection(&buf, "RULES", formatRules())
	return strings.TrimSpace(buf.String()) + "\n"
}

func formatRules() string {
	rules := []string{
		"Return JSON only. No prose, no code fences.",
		"Every node icon must be copied verbatim from the [ICONS] listing. Never invent a path.",
		"When no listed icon fits a component, pick the closest General icon.",
		fmt.Sprintf("Keep at least %d units between node positions so the layout stays readable.", MinNodeSpacing),
		"Every edge source and target must reference an existing node id.",
	}
	var b strings.Builder
	for _, r := range rules {
		b.WriteString("- ")
		b.WriteString(r)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatIconListing groups the allowed entries by provider then category.
// Each leaf line carries the exact canonical path plus a derived label as a
// matching aid for the model.
func formatIconListing(ix *icons.Index, allowed map[string]bool) string {
	var b strings.Builder
	for _, provider := range ix.Providers() {
		if !allowed[provider] {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", provider)
		category := ""
		for _, e := range ix.EntriesFor(provider) {
			if e.Category != category {
				category = e.Category
				fmt.Fprintf(&b, "  %s:\n", category)
			}
			fmt.Fprintf(&b, "    %s  (%s)\n", e.CanonicalPath(), e.Label())
		}
	}
	if b.Len() == 0 {
		return "(no icons available)"
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeSection(buf *bytes.Buffer, name, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	fmt.Fprintf(buf, "[%s]\n%s\n\n", name, body)
}
