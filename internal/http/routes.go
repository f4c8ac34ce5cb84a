package httpapp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dropgate/internal/app"
	"dropgate/internal/domain"
	"dropgate/internal/http/dto"
	"dropgate/internal/storage"
)

// multipart form values stay in memory up to this limit; file parts above
// it spill to temp files.
const multipartMemoryLimit = 32 << 20

type healthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Version  string `json:"version"`
	DBStatus string `json:"db_status"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "connected"
	if _, err := h.DB.Exec("SELECT 1"); err != nil {
		dbStatus = fmt.Sprintf("error: %v", err)
	}

	h.writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Service:  "dropgate",
		Version:  "0.2.0",
		DBStatus: dbStatus,
	})
}

func (h *Handler) ListDrops(w http.ResponseWriter, r *http.Request) {
	vendorStableID := chi.URLParam(r, "vendorStableID")

	var status *domain.DropStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "status must be an integer")
			return
		}
		s := domain.DropStatus(parsed)
		status = &s
	}

	drops, err := h.Drops.ListVendorDrops(vendorStableID, status)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	responses := dto.NewDropResponses(drops, h.Config.AssetBaseURL)
	h.writeJSON(w, http.StatusOK, dto.DropListResponse{
		Success: true,
		Drops:   responses,
		Total:   len(responses),
	})
}

func (h *Handler) GetDrop(w http.ResponseWriter, r *http.Request) {
	dropID := chi.URLParam(r, "dropID")

	drop, err := h.Drops.GetDrop(dropID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto.DropDetailResponse{
		Success: true,
		Drop:    dto.NewDropResponse(drop, h.Config.AssetBaseURL),
	})
}

func (h *Handler) CreateDrop(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Config.MaxUploadSize)
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("multipart error: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck // temp file cleanup

	in := &app.CreateDropInput{
		VendorStableID: r.FormValue("vendor_stable_id"),
		ArtistName:     r.FormValue("artist_name"),
		Title:          r.FormValue("title"),
		Env:            r.FormValue("env"),
	}
	in.ArtistStableID = optionalString(r.FormValue("artist_stable_id"))
	in.Description = optionalString(r.FormValue("description"))
	in.StartAt = optionalInt64(r.FormValue("start_at"))
	in.EndAt = optionalInt64(r.FormValue("end_at"))
	in.MaxClaims = optionalInt64(r.FormValue("max_claims"))

	audio, audioName, audioMime, err := readFilePart(r, "audio")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("audio read error: %v", err))
		return
	}
	in.Audio = audio
	in.AudioFilename = audioName
	in.AudioMimeHint = audioMime

	cover, coverName, _, err := readFilePart(r, "cover")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("cover read error: %v", err))
		return
	}
	in.Cover = cover
	in.CoverFilename = coverName

	drop, err := h.Drops.CreateDrop(in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto.DropCreateResponse{
		Success: true,
		Drop:    dto.NewDropResponse(drop, h.Config.AssetBaseURL),
	})
}

func (h *Handler) ClaimDrop(w http.ResponseWriter, r *http.Request) {
	dropID := chi.URLParam(r, "dropID")

	var req dto.ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	claim, drop, err := h.Drops.Claim(dropID, req.UserID, req.DeviceIDHash)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	downloadURL := fmt.Sprintf("%s/api/drops/%s/download?token=%s",
		h.Config.PublicBaseURL, drop.DropID, claim.ClaimID)

	h.writeJSON(w, http.StatusOK, dto.ClaimResponse{
		Success:        true,
		ClaimID:        claim.ClaimID,
		DropID:         drop.DropID,
		DownloadURL:    downloadURL,
		ExpiresAt:      drop.EndAt,
		AudioSHA256:    drop.AudioSHA256,
		AudioSizeBytes: drop.AudioSizeBytes,
	})
}

func (h *Handler) DownloadDrop(w http.ResponseWriter, r *http.Request) {
	dropID := chi.URLParam(r, "dropID")
	token := r.URL.Query().Get("token")
	if token == "" {
		h.writeError(w, http.StatusUnauthorized, "token required")
		return
	}

	reader, drop, size, err := h.Drops.Download(dropID, token)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	defer reader.Close()

	filename := storage.Sanitize(drop.Title)
	if filename == "" {
		filename = drop.DropID
	}
	filename += filepath.Ext(drop.AudioObjectKey)

	w.Header().Set("Content-Type", drop.AudioMime)
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := io.Copy(w, reader); err != nil {
		h.Logger.Error("Download stream interrupted", "drop_id", dropID, "error", err)
	}
}

func (h *Handler) BatchEndDrops(w http.ResponseWriter, r *http.Request) {
	vendorStableID := chi.URLParam(r, "vendorStableID")

	var req dto.BatchDropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	results := h.Drops.BatchEnd(vendorStableID, req.DropIDs)
	h.writeJSON(w, http.StatusOK, dto.BatchDropResponse{Success: true, Results: results})
}

func (h *Handler) BatchPurgeDrops(w http.ResponseWriter, r *http.Request) {
	vendorStableID := chi.URLParam(r, "vendorStableID")

	var req dto.BatchDropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	results := h.Drops.BatchPurge(vendorStableID, req.DropIDs)
	h.writeJSON(w, http.StatusOK, dto.BatchDropResponse{Success: true, Results: results})
}

func (h *Handler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	vendor, err := h.Vendors.Create(req.StableID, req.Name, req.Env)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto.VendorDetailResponse{
		Success: true,
		Vendor:  dto.NewVendorResponse(vendor),
	})
}

func (h *Handler) GetVendor(w http.ResponseWriter, r *http.Request) {
	stableID := chi.URLParam(r, "vendorStableID")

	vendor, err := h.Vendors.Get(stableID)
	if errors.Is(err, domain.ErrVendorNotFound) {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto.VendorDetailResponse{
		Success: true,
		Vendor:  dto.NewVendorResponse(vendor),
	})
}

func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.Vendors.List()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	responses := make([]dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		responses = append(responses, dto.NewVendorResponse(v))
	}
	h.writeJSON(w, http.StatusOK, dto.VendorListResponse{
		Success: true,
		Vendors: responses,
		Total:   len(responses),
	})
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func optionalInt64(v string) *int64 {
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// readFilePart reads a whole multipart file field. A missing part is not an
// error; the service decides which files are required.
func readFilePart(r *http.Request, field string) (data []byte, filename, mimeType string, err error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, "", "", nil
	}
	if err != nil {
		return nil, "", "", err
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, "", "", err
	}
	return data, header.Filename, header.Header.Get("Content-Type"), nil
}
