package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"archcanvas/internal/diagram"
	"archcanvas/internal/store"
)

// HandleDiagrams serves the collection: POST saves, GET lists.
func (h *Handler) HandleDiagrams(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var in struct {
			ID          string          `json:"id,omitempty"`
			Title       string          `json:"title"`
			Description string          `json:"description"`
			Diagram     diagram.Payload `json:"diagram"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		id := strings.TrimSpace(in.ID)
		if id == "" {
			id = newID()
		}
		rec := store.Record{
			ID:          id,
			Title:       in.Title,
			Description: in.Description,
			Payload:     in.Diagram,
			UpdatedAt:   time.Now().UTC(),
		}
		if prev, ok := h.Store.Get(id); ok {
			rec.CreatedAt = prev.CreatedAt
		}
		if err := h.Store.Put(rec); err != nil {
			http.Error(w, "save failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": id})
	case http.MethodGet:
		type listItem struct {
			ID        string    `json:"id"`
			Title     string    `json:"title"`
			UpdatedAt time.Time `json:"updatedAt"`
		}
		records := h.Store.List()
		out := make([]listItem, 0, len(records))
		for _, rec := range records {
			out = append(out, listItem{ID: rec.ID, Title: rec.Title, UpdatedAt: rec.UpdatedAt})
		}
		writeJSON(w, http.StatusOK, map[string]any{"diagrams": out})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// HandleDiagramByID serves one saved diagram: GET fetches, DELETE removes,
// POST to the /export suffix stores an export object.
func (h *Handler) HandleDiagramByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/diagrams/")
	if rest == "" {
		http.Error(w, "diagram id is required", http.StatusBadRequest)
		return
	}
	if id, ok := strings.CutSuffix(rest, "/export"); ok {
		h.handleExport(w, r, strings.TrimSuffix(id, "/"))
		return
	}
	id := strings.TrimSuffix(rest, "/")

	switch r.Method {
	case http.MethodGet:
		rec, ok := h.Store.Get(id)
		if !ok {
			http.Error(w, "diagram not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	case http.MethodDelete:
		if !h.Store.Delete(id) {
			http.Error(w, "diagram not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleExport stores an export of the saved diagram. Format "json" is
// produced server-side from the stored payload; image formats carry the
// client-rendered bytes base64-encoded, since canvas rendering happens in
// the editor.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.Exports == nil {
		http.Error(w, "export store is not configured", http.StatusServiceUnavailable)
		return
	}
	rec, ok := h.Store.Get(id)
	if !ok {
		http.Error(w, "diagram not found", http.StatusNotFound)
		return
	}

	var in struct {
		Format  string `json:"format"`
		Content string `json:"content,omitempty"` // base64, image formats only
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	var (
		name        string
		contentType string
		content     []byte
	)
	switch strings.ToLower(strings.TrimSpace(in.Format)) {
	case "", "json":
		b, err := json.MarshalIndent(rec.Payload, "", "  ")
		if err != nil {
			http.Error(w, "encode failed", http.StatusInternalServerError)
			return
		}
		name = "diagram.json"
		contentType = "application/json"
		content = b
	case "png":
		b, err := base64.StdEncoding.DecodeString(in.Content)
		if err != nil || len(b) == 0 {
			http.Error(w, "content must be base64 image bytes", http.StatusBadRequest)
			return
		}
		name = "diagram.png"
		contentType = "image/png"
		content = b
	default:
		http.Error(w, "unsupported format", http.StatusBadRequest)
		return
	}

	key, err := h.Exports.Put(r.Context(), id, name, contentType, content)
	if err != nil {
		http.Error(w, "export failed", http.StatusBadGateway)
		return
	}
	url, _ := h.Exports.GetURL(r.Context(), id, name)
	writeJSON(w, http.StatusOK, map[string]any{"key": key, "url": url})
}
