package main

import (
	"encoding/json"
	"net/http"

	"portfolio-pulse/config"
	"portfolio-pulse/services"
)

// APIHandler handles HTTP API requests
type APIHandler struct {
	app *App
	cfg *config.Config
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(app *App, cfg *config.Config) *APIHandler {
	return &APIHandler{app: app, cfg: cfg}
}

// handleHealth returns the health status of the application
func (h *APIHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	providers := map[string]string{
		"newsapi":    "not_configured",
		"marketfeed": "not_configured",
		"openai":     "not_configured",
	}
	if h.cfg.HasNewsAPI() {
		providers["newsapi"] = "configured"
	}
	if h.cfg.HasMarketFeed() {
		providers["marketfeed"] = "configured"
	}
	if h.cfg.HasOpenAI() {
		providers["openai"] = "configured"
	}

	h.jsonResponse(w, map[string]interface{}{
		"status":    "ok",
		"providers": providers,
		"breakers":  services.GetGlobalRegistry().Status(),
	})
}

// handleAnalyze accepts a multipart spreadsheet upload and returns the
// analysis report. The file part must be named "portfolio".
func (h *APIHandler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	// 10 MB is plenty for a holdings sheet
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.jsonError(w, "invalid multipart request", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("portfolio")
	if err != nil {
		h.jsonError(w, "missing portfolio file (multipart field \"portfolio\")", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.app.AnalyzeUpload(r.Context(), header.Filename, file)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	h.jsonResponse(w, result)
}

func (h *APIHandler) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *APIHandler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
