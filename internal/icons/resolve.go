package icons

import "strings"

// Stage identifies which resolution stage produced a match.
type Stage int

const (
	StageNone Stage = iota
	// StageExact matched the full path case-insensitively.
	StageExact
	// StageNormalized matched on the normalized filename stem.
	StageNormalized
	// StageFuzzy matched via prefix/substring scoring.
	StageFuzzy
	// StageFallback substituted an icon from the General pool.
	StageFallback
)

func (s Stage) String() string {
	switch s {
	case StageExact:
		return "exact"
	case StageNormalized:
		return "normalized"
	case StageFuzzy:
		return "fuzzy"
	case StageFallback:
		return "fallback"
	default:
		return "none"
	}
}

// minFuzzyScore is the floor below which a fuzzy candidate is not trusted.
// Scores range 0-200: equality 200, prefix up to 150, containment up to 100.
const minFuzzyScore = 30

// Resolve maps a candidate icon reference to a canonical path using staged
// matching, stopping at the first stage that yields a match. The final
// fallback substitutes a General-pool icon so the diagram always renders
// something; ok is false only when even that pool is empty.
func (ix *Index) Resolve(candidate string) (canonical string, stage Stage, ok bool) {
	if c, found := ix.CanonicalByLower(candidate); found {
		return c, StageExact, true
	}
	// The raw normalized name is tried before alias expansion so that a
	// literal match ("s3" against an "S3-Bucket" icon) is never shadowed by
	// the expanded service name.
	for _, name := range expandAliases(NormalizeCandidate(candidate)) {
		if name == "" {
			continue
		}
		if c, found := ix.ByNormalizedName(name); found {
			return c, StageNormalized, true
		}
		if c, found := ix.bestFuzzy(name); found {
			return c, StageFuzzy, true
		}
	}
	if c, found := ix.GeneralFallback(); found {
		return c, StageFallback, true
	}
	return "", StageNone, false
}

// serviceAliases maps well-known service abbreviations to the full names
// their icon files tend to carry.
var serviceAliases = map[string]string{
	"s3":  "simplestorageservice",
	"ec2": "elasticcomputecloud",
	"rds": "relationaldatabaseservice",
	"sqs": "simplequeueservice",
	"sns": "simplenotificationservice",
	"ecs": "elasticcontainerservice",
	"eks": "elastickubernetesservice",
	"gke": "googlekubernetesengine",
	"k8s": "kubernetes",
	"vm":  "virtualmachine",
}

func expandAliases(name string) []string {
	if full, ok := serviceAliases[name]; ok {
		return []string{name, full}
	}
	return []string{name}
}

// bestFuzzy scans every normalized index key in insertion order and keeps
// the highest score above the threshold. Ties keep the first-seen key, which
// makes resolution deterministic.
func (ix *Index) bestFuzzy(name string) (string, bool) {
	best := ""
	bestScore := 0
	for _, key := range ix.names {
		if s := matchScore(name, key); s > bestScore {
			best, bestScore = key, s
		}
	}
	if bestScore < minFuzzyScore {
		return "", false
	}
	return ix.byName[best], true
}

// matchScore rates the similarity of two normalized names. Exact equality
// outranks prefix relations, which outrank plain containment; both partial
// relations are weighted by the length ratio of the shorter to the longer
// name so near-complete overlaps win.
func matchScore(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 200
	}
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	ratio := float64(len(shorter)) / float64(len(longer))
	if strings.HasPrefix(longer, shorter) {
		return int(ratio * 150)
	}
	if strings.Contains(longer, shorter) {
		return int(ratio * 100)
	}
	return 0
}
