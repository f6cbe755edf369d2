package controllers

import (
	"net/http"

	"meetx_server/middleware"
	"meetx_server/services"
)

// MatchController struct
type MatchController struct {
	MatchService *services.MatchService
	SwipeService *services.SwipeService
}

// NewMatchController initializes the controller
func NewMatchController(matchService *services.MatchService, swipeService *services.SwipeService) *MatchController {
	return &MatchController{MatchService: matchService, SwipeService: swipeService}
}

// HandleListMatches - list the caller's mutual matches with partner profiles
func (c *MatchController) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, services.ErrNotSignedIn)
		return
	}

	matches, err := c.MatchService.ListMatches(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// HandleListLikes - list positive intents targeting the caller, newest first
func (c *MatchController) HandleListLikes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, services.ErrNotSignedIn)
		return
	}

	likes, err := c.SwipeService.LikesReceived(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, likes)
}
