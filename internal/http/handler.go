// Package httpapp exposes the JSON API over chi.
package httpapp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dropgate/internal/app"
	"dropgate/internal/config"
	"dropgate/internal/domain"
	"dropgate/internal/http/dto"
	"dropgate/internal/logger"
	"dropgate/internal/store"
)

type Handler struct {
	Drops   *app.DropService
	Vendors *app.VendorService
	DB      *store.DB
	Config  *config.Config
	Logger  *logger.Logger
}

func NewHandler(drops *app.DropService, vendors *app.VendorService, db *store.DB, cfg *config.Config, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		Drops:   drops,
		Vendors: vendors,
		DB:      db,
		Config:  cfg,
		Logger:  log.WithComponent("http"),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/health", h.Health)

	// Legacy album-asset API, kept for backward compatibility
	r.Post("/api/upload", h.LegacyUpload)
	r.Post("/api/delete", h.LegacyDelete)

	r.Post("/api/vendors", h.CreateVendor)
	r.Get("/api/vendors", h.ListVendors)
	r.Get("/api/vendors/{vendorStableID}", h.GetVendor)
	r.Get("/api/vendors/{vendorStableID}/drops", h.ListDrops)
	r.Post("/api/vendors/{vendorStableID}/drops/batch_end", h.BatchEndDrops)
	r.Post("/api/vendors/{vendorStableID}/drops/batch_purge", h.BatchPurgeDrops)

	r.Post("/api/drops", h.CreateDrop)
	r.Get("/api/drops/{dropID}", h.GetDrop)
	r.Post("/api/drops/{dropID}/claim", h.ClaimDrop)
	r.Get("/api/drops/{dropID}/download", h.DownloadDrop)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.Logger.Warn("API error", "status", status, "error", message)
	h.writeJSON(w, status, dto.ErrorResponse{Success: false, Error: message})
}

// writeServiceError maps domain errors to status codes. Storage and
// persistence failures surface as opaque 500s with the detail logged only.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		h.writeError(w, http.StatusBadRequest, verr.Error())
	case isConflict(err):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case isNotFound(err):
		h.writeError(w, http.StatusNotFound, err.Error())
	case isUnauthorized(err):
		h.writeError(w, http.StatusUnauthorized, err.Error())
	default:
		h.Logger.Error("Internal error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
