// Package handler exposes the generation pipeline and diagram persistence
// over plain JSON HTTP endpoints.
package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"archcanvas/internal/diagram"
	"archcanvas/internal/export"
	"archcanvas/internal/icons"
	"archcanvas/internal/llm"
	"archcanvas/internal/pipeline"
	"archcanvas/internal/store"
)

type Handler struct {
	LLM     llm.Client
	Index   *icons.Index
	Store   *store.Store
	Exports *export.S3Store
	Broker  *pipeline.StatusBroker
	// Timeout bounds one generation call end to end.
	Timeout time.Duration
}

func New(cli llm.Client, ix *icons.Index, st *store.Store, ex *export.S3Store, broker *pipeline.StatusBroker, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 4 * time.Minute
	}
	return &Handler{LLM: cli, Index: ix, Store: st, Exports: ex, Broker: broker, Timeout: timeout}
}

// HandleGenerate runs the full description-to-diagram pipeline.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Description string   `json:"description"`
		Providers   []string `json:"providers,omitempty"`
		JobID       string   `json:"jobId,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(in.Description) == "" {
		http.Error(w, "description is required", http.StatusBadRequest)
		return
	}
	jobID := strings.TrimSpace(in.JobID)
	if jobID == "" {
		jobID = newID()
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	gen := &pipeline.Generator{
		LLM:   h.LLM,
		Index: h.Index,
		Notify: func(stage string) {
			if h.Broker != nil {
				h.Broker.Publish(jobID, stage)
			}
		},
	}
	out, err := gen.Run(ctx, pipeline.GenerateIn{Description: in.Description, Providers: in.Providers})
	if err != nil {
		var pErr *diagram.ParseError
		if errors.As(err, &pErr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error": "generation returned no parseable diagram",
				"raw":   truncate(pErr.Raw, 2000),
				"jobId": jobID,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"jobId":     jobID,
		"providers": out.Providers,
		"diagram":   out.Diagram,
		"report":    out.Report,
	})
}

// HandleValidate re-runs icon validation/repair on a caller-supplied diagram.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Diagram diagram.Payload `json:"diagram"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	repaired, report := diagram.Repair(in.Diagram, h.Index)
	writeJSON(w, http.StatusOK, map[string]any{
		"diagram": repaired,
		"report":  report,
	})
}

// HandleIconProviders lists providers with their entry counts.
func (h *Handler) HandleIconProviders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	type providerInfo struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	out := make([]providerInfo, 0, len(h.Index.Providers()))
	for _, p := range h.Index.Providers() {
		out = append(out, providerInfo{Name: p, Count: len(h.Index.EntriesFor(p))})
	}
	writeJSON(w, http.StatusOK, map[string]any{"providers": out})
}

// HandleIcons lists the entries of one provider, or all entries.
func (h *Handler) HandleIcons(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	type iconInfo struct {
		Provider string `json:"provider"`
		Category string `json:"category"`
		Filename string `json:"filename"`
		Path     string `json:"path"`
	}
	provider := strings.TrimSpace(r.URL.Query().Get("provider"))
	entries := h.Index.Entries()
	if provider != "" {
		entries = h.Index.EntriesFor(provider)
	}
	out := make([]iconInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, iconInfo{Provider: e.Provider, Category: e.Category, Filename: e.Filename, Path: e.CanonicalPath()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"icons": out})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
