package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/foundic-app/foundic-backend/internal/config"
	"github.com/foundic-app/foundic-backend/internal/database"
	"github.com/foundic-app/foundic-backend/internal/handlers"
	"github.com/foundic-app/foundic-backend/internal/jobs"
	"github.com/foundic-app/foundic-backend/internal/repository"
	cronjobs "github.com/foundic-app/foundic-backend/internal/scheduler"
	"github.com/foundic-app/foundic-backend/internal/services"
	"github.com/foundic-app/foundic-backend/internal/ws"
	"github.com/foundic-app/foundic-backend/pkg/logger"
	"github.com/foundic-app/foundic-backend/pkg/middleware"
	"github.com/foundic-app/foundic-backend/pkg/push"
	"github.com/foundic-app/foundic-backend/pkg/storage"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("Index creation error: %v", err)
	}

	// Image uploads go to Cloudinary; without credentials images are stored
	// inline as data URIs.
	var uploader storage.Uploader
	if cfg.CloudinaryURL != "" {
		cld, err := storage.NewCloudinaryUploader(cfg.CloudinaryURL)
		if err != nil {
			log.Fatalf("Cloudinary initialization error: %v", err)
		}
		uploader = cld
	}
	images := storage.NewImageStore(uploader)

	pushSender := push.NewSender(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.VAPIDSubscriber)
	hub := ws.NewHub()

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	chatRepo := repository.NewChatRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	podRepo := repository.NewPodRepository(db)
	oppRepo := repository.NewOpportunityRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	pushRepo := repository.NewPushRepository(db)

	// --- Services ---
	notifService := services.NewNotificationService(notifRepo, userRepo, pushRepo, hub, pushSender)
	userService := services.NewUserService(userRepo, notifRepo, matchRepo, pushRepo, cfg.BaseURL)
	followService := services.NewFollowService(userRepo, notifService)
	postService := services.NewPostService(postRepo, userRepo, userService, notifService)
	chatService := services.NewChatService(chatRepo, userRepo, notifService, hub)
	podService := services.NewPodService(podRepo, notifService)
	oppService := services.NewOpportunityService(oppRepo, notifService)
	matchService := services.NewMatchService(matchRepo, userRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, images, cfg)
	followHandler := handlers.NewFollowHandler(followService)
	postHandler := handlers.NewPostHandler(postService, images)
	chatHandler := handlers.NewChatHandler(chatService, images)
	notifHandler := handlers.NewNotificationHandler(notifService, cfg)
	podHandler := handlers.NewPodHandler(podService)
	oppHandler := handlers.NewOpportunityHandler(oppService)
	matchHandler := handlers.NewMatchHandler(matchService)
	wsHandler := handlers.NewWSHandler(hub, cfg.JWTSecret)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	auth := middleware.AuthMiddleware(cfg.JWTSecret)
	lastActive := middleware.UpdateLastActiveMiddleware(userService.UpdateLastActive)

	// Public user routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")
	router.HandleFunc("/users/verify", userHandler.VerifyEmailHandler).Methods("GET")
	router.HandleFunc("/users/request-password-reset", userHandler.RequestPasswordResetHandler).Methods("POST")
	router.HandleFunc("/users/reset-password", userHandler.ResetPasswordHandler).Methods("POST")

	// Protected user routes
	userRoutes := router.PathPrefix("/users").Subrouter()
	userRoutes.Use(auth, lastActive)
	userRoutes.HandleFunc("/me", userHandler.GetMeHandler).Methods("GET")
	userRoutes.HandleFunc("/me", userHandler.UpdateProfileHandler).Methods("PATCH")
	userRoutes.HandleFunc("/me", userHandler.DeleteAccountHandler).Methods("DELETE")
	userRoutes.HandleFunc("/me/role", userHandler.ChooseRoleHandler).Methods("POST")
	userRoutes.HandleFunc("/me/avatar", userHandler.UploadAvatarHandler).Methods("POST")
	userRoutes.HandleFunc("/search", userHandler.SearchUsersHandler).Methods("GET")
	userRoutes.HandleFunc("/{id}", userHandler.GetUserHandler).Methods("GET")
	userRoutes.HandleFunc("/{id}/posts", postHandler.GetUserPostsHandler).Methods("GET")
	userRoutes.HandleFunc("/{id}/follow", followHandler.FollowUserHandler).Methods("POST")
	userRoutes.HandleFunc("/{id}/follow", followHandler.UnfollowUserHandler).Methods("DELETE")
	userRoutes.HandleFunc("/{id}/followers", followHandler.GetFollowersHandler).Methods("GET")
	userRoutes.HandleFunc("/{id}/following", followHandler.GetFollowingHandler).Methods("GET")

	// Wall routes
	postRoutes := router.PathPrefix("/posts").Subrouter()
	postRoutes.Use(auth, lastActive)
	postRoutes.HandleFunc("", postHandler.CreatePostHandler).Methods("POST")
	postRoutes.HandleFunc("", postHandler.GetFeedHandler).Methods("GET")
	postRoutes.HandleFunc("/leaderboard", postHandler.LeaderboardHandler).Methods("GET")
	postRoutes.HandleFunc("/upload", postHandler.UploadImageHandler).Methods("POST")
	postRoutes.HandleFunc("/{id}", postHandler.GetPostHandler).Methods("GET")
	postRoutes.HandleFunc("/{id}", postHandler.DeletePostHandler).Methods("DELETE")
	postRoutes.HandleFunc("/{id}/like", postHandler.LikePostHandler).Methods("POST")
	postRoutes.HandleFunc("/{id}/like", postHandler.UnlikePostHandler).Methods("DELETE")
	postRoutes.HandleFunc("/{id}/repost", postHandler.RepostHandler).Methods("POST")
	postRoutes.HandleFunc("/{id}/repost", postHandler.UndoRepostHandler).Methods("DELETE")
	postRoutes.HandleFunc("/{id}/comments", postHandler.CommentHandler).Methods("POST")
	postRoutes.HandleFunc("/{id}/comments/{commentId}/replies", postHandler.ReplyHandler).Methods("POST")

	// Chat routes
	chatRoutes := router.PathPrefix("/chats").Subrouter()
	chatRoutes.Use(auth, lastActive)
	chatRoutes.HandleFunc("", chatHandler.GetChatListHandler).Methods("GET")
	chatRoutes.HandleFunc("/messages", chatHandler.SendMessageHandler).Methods("POST")
	chatRoutes.HandleFunc("/upload", chatHandler.UploadChatImageHandler).Methods("POST")
	chatRoutes.HandleFunc("/with/{userId}", chatHandler.OpenChatHandler).Methods("POST")
	chatRoutes.HandleFunc("/{id}/messages", chatHandler.GetMessagesHandler).Methods("GET")

	// Notification routes
	notifRoutes := router.PathPrefix("/notifications").Subrouter()
	notifRoutes.Use(auth, lastActive)
	notifRoutes.HandleFunc("", notifHandler.GetNotificationsHandler).Methods("GET")
	notifRoutes.HandleFunc("/unread-count", notifHandler.UnreadCountHandler).Methods("GET")
	notifRoutes.HandleFunc("/subscribe", notifHandler.SubscribePushHandler).Methods("POST")
	notifRoutes.HandleFunc("/{id}/read", notifHandler.MarkAsReadHandler).Methods("POST")
	router.HandleFunc("/notifications/vapid-key", notifHandler.VAPIDPublicKeyHandler).Methods("GET")

	// Pod routes
	podRoutes := router.PathPrefix("/pods").Subrouter()
	podRoutes.Use(auth, lastActive)
	podRoutes.HandleFunc("", podHandler.CreatePodHandler).Methods("POST")
	podRoutes.HandleFunc("", podHandler.GetPodsHandler).Methods("GET")
	podRoutes.HandleFunc("/{id}", podHandler.GetPodHandler).Methods("GET")
	podRoutes.HandleFunc("/{id}/join", podHandler.JoinPodHandler).Methods("POST")
	podRoutes.HandleFunc("/{id}/leave", podHandler.LeavePodHandler).Methods("POST")

	// Opportunity routes
	oppRoutes := router.PathPrefix("/opportunities").Subrouter()
	oppRoutes.Use(auth, lastActive)
	oppRoutes.HandleFunc("", oppHandler.CreateOpportunityHandler).Methods("POST")
	oppRoutes.HandleFunc("", oppHandler.GetOpportunitiesHandler).Methods("GET")
	oppRoutes.HandleFunc("/{id}", oppHandler.GetOpportunityHandler).Methods("GET")
	oppRoutes.HandleFunc("/{id}", oppHandler.DeleteOpportunityHandler).Methods("DELETE")
	oppRoutes.HandleFunc("/{id}/apply", oppHandler.ApplyHandler).Methods("POST")
	oppRoutes.HandleFunc("/{id}/apply", oppHandler.WithdrawHandler).Methods("DELETE")
	oppRoutes.HandleFunc("/{id}/close", oppHandler.CloseOpportunityHandler).Methods("POST")

	// DNA match routes
	matchRoutes := router.PathPrefix("/matches").Subrouter()
	matchRoutes.Use(auth, lastActive)
	matchRoutes.HandleFunc("/survey", matchHandler.SubmitSurveyHandler).Methods("POST")
	matchRoutes.HandleFunc("", matchHandler.GetMatchesHandler).Methods("GET")

	// Live updates; the token rides in the query string
	router.HandleFunc("/ws", wsHandler.ServeWS).Methods("GET")

	// Admin routes
	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(auth)
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.HandleFunc("/users", userHandler.AdminGetAllUsersHandler).Methods("GET")
	adminRoutes.HandleFunc("/users/{id}", userHandler.AdminDeleteUserHandler).Methods("DELETE")

	// Dev routes; unauthenticated, so only mounted when explicitly enabled
	if cfg.EnableDevRoutes {
		devHandler := handlers.NewDevHandler(userRepo, notifService)
		devRoutes := router.PathPrefix("/dev").Subrouter()
		devRoutes.HandleFunc("/create-test-user", devHandler.CreateTestUserHandler).Methods("POST")
		devRoutes.HandleFunc("/create-test-users", devHandler.CreateTestUsersHandler).Methods("POST")
		devRoutes.HandleFunc("/debug-users", devHandler.DebugUsersHandler).Methods("GET")
		devRoutes.HandleFunc("/test-notification", devHandler.TestNotificationHandler).Methods("POST")
		logger.Log.Warn("Dev routes enabled; do not run with ENABLE_DEV_ROUTES in production")
	}

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Nightly maintenance
	maintenance := jobs.NewMaintenance(notifService, matchService)
	cronjobs.StartMaintenanceCronJobs(maintenance)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
