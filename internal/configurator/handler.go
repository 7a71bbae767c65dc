package configurator

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/carquote/internal/common"
)

// Handler exposes configurator endpoints.
type Handler struct {
	service *Service
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{service: cfg.Service}
}

// Routes mounts the configurator endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/models", h.Models)
	r.Get("/models/{modelID}", h.Model)
	r.Route("/models/{modelID}/trims/{trimCode}", func(t chi.Router) {
		t.Get("/defaults", h.Defaults)
		t.Post("/availability", h.Availability)
		t.Post("/colors", h.Colors)
		t.Post("/toggle", h.Toggle)
		t.Post("/quote", h.Quote)
	})
}

// Models handles GET /api/v1/models.
func (h *Handler) Models(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.service.ListModels(r.Context())})
}

// Model handles GET /api/v1/models/{modelID}.
func (h *Handler) Model(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	m, err := h.service.GetModel(r.Context(), chi.URLParam(r, "modelID"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": m})
}

// Defaults handles GET /api/v1/models/{modelID}/trims/{trimCode}/defaults.
func (h *Handler) Defaults(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	modelID, trimCode := pathParams(r)
	out, err := h.service.Defaults(r.Context(), modelID, trimCode)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// Availability handles POST /api/v1/models/{modelID}/trims/{trimCode}/availability.
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	var req selectionRequest
	if err := decodeRequest(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	modelID, trimCode := pathParams(r)
	out, err := h.service.Availability(r.Context(), modelID, trimCode, req.Selected, req.Color)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// Colors handles POST /api/v1/models/{modelID}/trims/{trimCode}/colors.
func (h *Handler) Colors(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	var req choicesRequest
	if err := decodeRequest(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	modelID, trimCode := pathParams(r)
	out, err := h.service.Choices(r.Context(), modelID, trimCode, req.Selected)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// Toggle handles POST /api/v1/models/{modelID}/trims/{trimCode}/toggle.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	var req toggleRequest
	if err := decodeRequest(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	modelID, trimCode := pathParams(r)
	out, err := h.service.Toggle(r.Context(), modelID, trimCode, req.Code, req.Selected, req.Color)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// Quote handles POST /api/v1/models/{modelID}/trims/{trimCode}/quote.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	var req selectionRequest
	if err := decodeRequest(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	modelID, trimCode := pathParams(r)
	out, err := h.service.Quote(r.Context(), modelID, trimCode, req.Selected, req.Color)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

func (h *Handler) ready(w http.ResponseWriter) bool {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "configurator service not configured", nil)
		return false
	}
	return true
}

func pathParams(r *http.Request) (string, string) {
	return chi.URLParam(r, "modelID"), chi.URLParam(r, "trimCode")
}
