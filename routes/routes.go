package routes

import (
	"meetx_server/controllers"
	"meetx_server/services"

	"github.com/gorilla/mux"
)

// RegisterSwipeRoutes sets up routes for swipe-related operations under /api/swipes
func RegisterSwipeRoutes(r *mux.Router, swipeService *services.SwipeService) {
	controller := controllers.NewSwipeController(swipeService)

	swipeRouter := r.PathPrefix("/swipes").Subrouter()
	swipeRouter.HandleFunc("", controller.HandleRecordSwipe).Methods("POST")
}

// RegisterMatchRoutes sets up routes for match-related operations under /api/matches
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService, swipeService *services.SwipeService) {
	controller := controllers.NewMatchController(matchService, swipeService)

	matchRouter := r.PathPrefix("/matches").Subrouter()
	matchRouter.HandleFunc("", controller.HandleListMatches).Methods("GET")
	matchRouter.HandleFunc("/likes", controller.HandleListLikes).Methods("GET")
}

// RegisterProfileRoutes sets up routes for profile operations under /api/profiles
func RegisterProfileRoutes(r *mux.Router, profileService *services.ProfileService) {
	controller := controllers.NewProfileController(profileService)

	profileRouter := r.PathPrefix("/profiles").Subrouter()
	profileRouter.HandleFunc("/{id}", controller.HandleGetProfile).Methods("GET")
	profileRouter.HandleFunc("/{id}", controller.HandleSaveProfile).Methods("PUT")
}

// RegisterPhotoRoutes sets up presigned photo URL routes under /api/photos
func RegisterPhotoRoutes(r *mux.Router, s3Service *services.S3Service) {
	controller := controllers.NewPhotoController(s3Service)

	photoRouter := r.PathPrefix("/photos").Subrouter()
	photoRouter.HandleFunc("/upload-url", controller.HandleUploadURL).Methods("GET")
	photoRouter.HandleFunc("/read-url", controller.HandleReadURL).Methods("GET")
}
