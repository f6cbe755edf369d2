package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"meetx_server/config"
	"meetx_server/middleware"
	"meetx_server/routes"
	"meetx_server/services"
	"meetx_server/session"
	"meetx_server/socket"
	"meetx_server/store"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the document store
	var st store.Store
	switch cfg.Store.Type {
	case "memory":
		log.Println("Using in-memory store")
		st = store.NewMemoryStore()
	default:
		log.Println("Initializing DynamoDB client...")
		client, err := store.InitializeDynamoDBClient(context.Background(), cfg.AWS.Region)
		if err != nil {
			log.Fatalf("Failed to initialize DynamoDB: %v", err)
		}
		st = store.NewDynamoStore(client, cfg.Store.TablePrefix)
		log.Println("DynamoDB client initialized.")
	}

	// Initialize services
	swipeService := &services.SwipeService{Store: st}
	profileService := &services.ProfileService{Store: st}
	matchService := &services.MatchService{Store: st}

	var s3Service *services.S3Service
	if cfg.AWS.S3Bucket != "" {
		s3Service, err = services.NewS3Service(context.Background(), cfg.AWS.Region, cfg.AWS.S3Bucket)
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
	}

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to MeetX")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	// Authenticated API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(cfg.JWT.Secret))
	routes.RegisterSwipeRoutes(api, swipeService)
	routes.RegisterMatchRoutes(api, matchService, swipeService)
	routes.RegisterProfileRoutes(api, profileService)
	if s3Service != nil {
		routes.RegisterPhotoRoutes(api, s3Service)
	}

	// Realtime gateway
	sessionCfg := session.Config{
		DeckLimit:       cfg.Deck.QueryLimit,
		NotificationTTL: cfg.Notifications.TTLSeconds,
	}
	gateway := socket.NewGateway(st, cfg.JWT.Secret, sessionCfg)
	go func() {
		if err := gateway.Server.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()
	defer gateway.Server.Close()
	r.Handle("/socket.io/", gateway.Server)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, corsHandler))
}
