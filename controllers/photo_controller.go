package controllers

import (
	"net/http"

	"meetx_server/middleware"
	"meetx_server/services"
)

// PhotoController issues presigned URLs so clients get a stable photo
// reference without the server proxying image bytes.
type PhotoController struct {
	S3Service *services.S3Service
}

// NewPhotoController initializes the controller
func NewPhotoController(service *services.S3Service) *PhotoController {
	return &PhotoController{S3Service: service}
}

// HandleUploadURL - presign a PUT for a new profile photo
func (c *PhotoController) HandleUploadURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, services.ErrNotSignedIn)
		return
	}

	fileName := r.URL.Query().Get("fileName")
	fileType := r.URL.Query().Get("fileType")
	if fileName == "" || fileType == "" {
		http.Error(w, `{"error": "fileName and fileType are required"}`, http.StatusBadRequest)
		return
	}

	uploadURL, key, err := c.S3Service.GenerateUploadURL(r.Context(), userID, fileName, fileType)
	if err != nil {
		http.Error(w, `{"error": "failed to generate upload URL"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"uploadUrl": uploadURL, "key": key})
}

// HandleReadURL - presign a GET for a stored photo
func (c *PhotoController) HandleReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, `{"error": "key is required"}`, http.StatusBadRequest)
		return
	}

	readURL, err := c.S3Service.GenerateReadURL(r.Context(), key)
	if err != nil {
		http.Error(w, `{"error": "failed to generate read URL"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"readUrl": readURL})
}
