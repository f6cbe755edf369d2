package controllers

import (
	"encoding/json"
	"net/http"

	"meetx_server/middleware"
	"meetx_server/models"
	"meetx_server/services"

	"github.com/gorilla/mux"
)

// ProfileController struct
type ProfileController struct {
	ProfileService *services.ProfileService
}

// NewProfileController initializes the controller
func NewProfileController(service *services.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: service}
}

// HandleGetProfile - fetch a profile in canonical shape
func (c *ProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	profile, err := c.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	response := map[string]interface{}{
		"profile":  profile,
		"complete": profile.IsComplete(),
	}
	writeJSON(w, http.StatusOK, response)
}

// HandleSaveProfile - upsert the caller's own profile. Incomplete payloads
// are accepted; completeness only gates deck participation.
func (c *ProfileController) HandleSaveProfile(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, services.ErrNotSignedIn)
		return
	}
	userID := mux.Vars(r)["id"]
	if userID != callerID {
		http.Error(w, `{"error": "can only edit your own profile"}`, http.StatusForbidden)
		return
	}

	var request struct {
		FullName string   `json:"fullName" validate:"max=100"`
		PhotoURL string   `json:"photoUrl" validate:"omitempty,url"`
		Skills   []string `json:"skills" validate:"max=25,dive,max=40"`
		Visible  *bool    `json:"visible"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}
	if err := validate.Struct(request); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	visible := true
	if request.Visible != nil {
		visible = *request.Visible
	}
	profile := models.Profile{
		UserID:   userID,
		FullName: request.FullName,
		PhotoURL: request.PhotoURL,
		Skills:   request.Skills,
		Visible:  visible,
	}

	if err := c.ProfileService.SaveProfile(r.Context(), profile); err != nil {
		writeError(w, err)
		return
	}

	response := map[string]interface{}{
		"status":   "success",
		"complete": profile.IsComplete(),
	}
	writeJSON(w, http.StatusOK, response)
}
