package httpapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"dropgate/internal/constants"
	"dropgate/internal/storage"
)

type legacyUploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
}

type legacyDeleteRequest struct {
	AlbumID  string `json:"album_id"`
	FileType string `json:"file_type"` // "promo" | "albums"
}

type legacyDeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LegacyUpload stores one album asset under CONTENT_DIR/<file_type>/<album_id>.
// Kept for older publishing tooling that predates drops.
func (h *Handler) LegacyUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Config.MaxUploadSize)
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("multipart error: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck // temp file cleanup

	data, originalFilename, _, err := readFilePart(r, "file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("file read error: %v", err))
		return
	}
	if len(data) == 0 {
		h.writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	if originalFilename == "" {
		h.writeError(w, http.StatusBadRequest, "No filename provided")
		return
	}

	albumID := storage.Sanitize(r.FormValue("album_id"))
	if albumID == "" {
		h.writeError(w, http.StatusBadRequest, "album_id is required")
		return
	}

	fileType := r.FormValue("file_type")
	if fileType == "" {
		h.writeError(w, http.StatusBadRequest, "file_type is required")
		return
	}
	if fileType != constants.FileTypePromo && fileType != constants.FileTypeAlbums {
		h.writeError(w, http.StatusBadRequest, "file_type must be 'promo' or 'albums'")
		return
	}

	category := r.FormValue("category")
	if category == "" {
		h.writeError(w, http.StatusBadRequest, "category is required")
		return
	}
	if category != constants.CategoryTracks && category != constants.CategoryCover && category != constants.CategoryManifest {
		h.writeError(w, http.StatusBadRequest, "category must be 'tracks', 'cover', or 'manifest'")
		return
	}

	ext := storage.FileExt(originalFilename, constants.DefaultUploadExt)

	var filename string
	switch category {
	case constants.CategoryTracks:
		trackNumber := r.FormValue("track_number")
		if trackNumber == "" {
			h.writeError(w, http.StatusBadRequest, "track_number is required for tracks")
			return
		}
		filename = storage.Sanitize(trackNumber) + "." + ext
	case constants.CategoryManifest:
		filename = constants.ManifestFileName
	default:
		filename = constants.CoverFilePrefix + "." + ext
	}

	targetDir := filepath.Join(h.Config.ContentDir, fileType, albumID)
	if category == constants.CategoryTracks {
		targetDir = filepath.Join(targetDir, constants.CategoryTracks)
	}

	if err := storage.EnsureDir(targetDir); err != nil {
		h.Logger.Error("Legacy upload mkdir failed", "path", targetDir, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create directory")
		return
	}

	targetPath := filepath.Join(targetDir, filename)
	if err := storage.WriteFile(targetPath, data); err != nil {
		h.Logger.Error("Legacy upload write failed", "path", targetPath, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	url := h.Config.AssetBaseURL + "/" + fileType + "/" + albumID
	if category == constants.CategoryTracks {
		url += "/" + constants.CategoryTracks
	}
	url += "/" + filename

	h.Logger.Info("Legacy upload stored",
		"album_id", albumID,
		"file_type", fileType,
		"category", category,
		"size", len(data),
	)
	h.writeJSON(w, http.StatusOK, legacyUploadResponse{
		Success:  true,
		URL:      url,
		Path:     targetPath,
		Filename: filename,
	})
}

// LegacyDelete removes a whole album directory, used when an album sells out.
func (h *Handler) LegacyDelete(w http.ResponseWriter, r *http.Request) {
	var req legacyDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	albumID := storage.Sanitize(req.AlbumID)
	if albumID == "" {
		h.writeError(w, http.StatusBadRequest, "album_id is required")
		return
	}
	if req.FileType != constants.FileTypePromo && req.FileType != constants.FileTypeAlbums {
		h.writeError(w, http.StatusBadRequest, "file_type must be 'promo' or 'albums'")
		return
	}

	targetDir := filepath.Join(h.Config.ContentDir, req.FileType, albumID)
	if _, err := os.Stat(targetDir); os.IsNotExist(err) {
		h.writeError(w, http.StatusNotFound, fmt.Sprintf("Directory does not exist: %s", targetDir))
		return
	}

	if err := os.RemoveAll(targetDir); err != nil {
		h.Logger.Error("Legacy delete failed", "path", targetDir, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete directory")
		return
	}

	h.Logger.Info("Legacy delete", "album_id", albumID, "file_type", req.FileType)
	h.writeJSON(w, http.StatusOK, legacyDeleteResponse{
		Success: true,
		Message: fmt.Sprintf("Deleted: %s/%s", req.FileType, albumID),
	})
}
