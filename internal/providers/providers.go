// Package providers infers which icon provider namespaces are relevant to a
// free-text architecture description.
package providers

import "strings"

// General is the catch-all namespace appended as a fallback pool.
const General = "General"

// priority is the fixed order detected providers are returned in,
// independent of where their keywords appear in the input.
var priority = []string{"AWS", "Azure", "GCP", "Kubernetes", "Monitoring"}

// keywords maps each provider to its trigger substrings. A provider is
// selected when any trigger appears (case-insensitively) in the input.
var keywords = map[string][]string{
	"AWS":        {"aws", "amazon web services", "lambda", "ec2", "s3", "dynamodb", "cloudfront", "fargate"},
	"Azure":      {"azure", "microsoft cloud", "cosmos db", "aks"},
	"GCP":        {"gcp", "google cloud", "bigquery", "cloud run", "gke", "firebase"},
	"Kubernetes": {"kubernetes", "k8s", "kubectl", "helm chart", "ingress"},
	"Monitoring": {"prometheus", "grafana", "datadog", "cloudwatch", "monitoring", "observability", "alerting"},
}

// Known lists every provider namespace the detector understands, in priority
// order with the General pool last.
func Known() []string {
	return append(append([]string(nil), priority...), General)
}

// Detect returns the providers relevant to freeText. Explicit overrides win
// verbatim; otherwise keyword scanning applies, defaulting to General when
// nothing matches. The General pool is always appended so the repair stage
// has a fallback to offer.
func Detect(freeText string, overrides []string) []string {
	if len(overrides) > 0 {
		return append([]string(nil), overrides...)
	}
	lower := strings.ToLower(freeText)
	var out []string
	for _, p := range priority {
		for _, kw := range keywords[p] {
			if strings.Contains(lower, kw) {
				out = append(out, p)
				break
			}
		}
	}
	if len(out) == 0 {
		return []string{General}
	}
	return append(out, General)
}
