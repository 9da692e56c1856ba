package server

import (
	"net/http"

	"archcanvas/internal/handler"
	"archcanvas/internal/middleware"
)

func NewMux(h *handler.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/diagram/generate", h.HandleGenerate)
	mux.HandleFunc("/api/diagram/validate", h.HandleValidate)
	mux.HandleFunc("/api/icons/providers", h.HandleIconProviders)
	mux.HandleFunc("/api/icons", h.HandleIcons)
	mux.HandleFunc("/api/diagrams", h.HandleDiagrams)
	mux.HandleFunc("/api/diagrams/", h.HandleDiagramByID)

	// Websocket endpoint for watching generation jobs
	mux.HandleFunc("/api/generate/watch", h.HandleWatchWS)

	return middleware.CORS(mux)
}
