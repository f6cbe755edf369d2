package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"meetx_server/middleware"
	"meetx_server/models"
	"meetx_server/services"
)

// SwipeController struct
type SwipeController struct {
	SwipeService *services.SwipeService
}

// NewSwipeController initializes the controller
func NewSwipeController(service *services.SwipeService) *SwipeController {
	return &SwipeController{SwipeService: service}
}

// HandleRecordSwipe - record the caller's swipe on a target
func (c *SwipeController) HandleRecordSwipe(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, services.ErrNotSignedIn)
		return
	}

	var request struct {
		TargetID string `json:"targetId" validate:"required"`
		Action   string `json:"action" validate:"required,oneof=like nope superlike"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}
	if err := validate.Struct(request); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	liked := request.Action != models.ActionNope
	log.Printf("💖 %s swiped %s on %s", actorID, request.Action, request.TargetID)

	result, err := c.SwipeService.RecordSwipe(r.Context(), actorID, request.TargetID, liked)
	if err != nil {
		writeError(w, err)
		return
	}

	response := map[string]interface{}{
		"status":  "success",
		"matched": result.Matched,
	}
	if result.Matched {
		response["pairKey"] = result.Match.Key()
	}
	writeJSON(w, http.StatusOK, response)
}
