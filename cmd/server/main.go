package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Madina2067/LinguaLink/internal/config"
	"github.com/Madina2067/LinguaLink/internal/database"
	"github.com/Madina2067/LinguaLink/internal/handlers"
	"github.com/Madina2067/LinguaLink/internal/repository"
	"github.com/Madina2067/LinguaLink/internal/services"
	"github.com/Madina2067/LinguaLink/pkg/chattoken"
	"github.com/Madina2067/LinguaLink/pkg/logger"
	"github.com/Madina2067/LinguaLink/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Index creation error: %v", err)
	}
	cancel()

	tokens, err := chattoken.NewIssuer(cfg.ChatAPIKey, cfg.ChatAPISecret)
	if err != nil {
		log.Fatalf("Chat token issuer error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRequestRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	friendService := services.NewFriendService(friendRepo, userRepo)
	recommendationService := services.NewRecommendationService(userRepo)
	chatService := services.NewChatService(chatRepo, userRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userService, cfg)
	friendHandler := handlers.NewFriendHandler(friendService, userService, recommendationService)
	chatHandler := handlers.NewChatHandler(chatService, tokens)
	wsHandler := handlers.NewWSChatHandler(chatService, cfg.JWTSecret)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Auth routes
	router.HandleFunc("/api/auth/signup", authHandler.SignupHandler).Methods("POST")
	router.HandleFunc("/api/auth/login", authHandler.LoginHandler).Methods("POST")
	router.HandleFunc("/api/auth/logout", authHandler.LogoutHandler).Methods("POST")

	protectedAuthRoutes := router.PathPrefix("/api/auth").Subrouter()
	protectedAuthRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedAuthRoutes.HandleFunc("/onboard", authHandler.OnboardHandler).Methods("POST")
	protectedAuthRoutes.HandleFunc("/me", authHandler.MeHandler).Methods("GET")

	// User routes: recommendations and the friend-request lifecycle
	protectedUserRoutes := router.PathPrefix("/api/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("", friendHandler.RecommendedUsersHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/friends", friendHandler.MyFriendsHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/friends/{id}", friendHandler.RemoveFriendHandler).Methods("DELETE")
	protectedUserRoutes.HandleFunc("/friend-request/{id}", friendHandler.SendFriendRequestHandler).Methods("POST")
	protectedUserRoutes.HandleFunc("/friend-request/{id}/accept", friendHandler.AcceptFriendRequestHandler).Methods("PUT")
	protectedUserRoutes.HandleFunc("/friend-request/{id}/reject", friendHandler.RejectFriendRequestHandler).Methods("PUT")
	protectedUserRoutes.HandleFunc("/friend-requests", friendHandler.FriendRequestsHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/outgoing-requests", friendHandler.OutgoingRequestsHandler).Methods("GET")

	// Chat routes
	protectedChatRoutes := router.PathPrefix("/api/chat").Subrouter()
	protectedChatRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedChatRoutes.HandleFunc("/token", chatHandler.ChatTokenHandler).Methods("GET")
	protectedChatRoutes.HandleFunc("/history/{friendId}", chatHandler.ChatHistoryHandler).Methods("GET")

	// The websocket relay authenticates via token query param
	router.HandleFunc("/api/chat/ws", wsHandler.ServeWS)

	// Apply middleware for request ids and logging
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
