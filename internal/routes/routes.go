package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/fitverse-app/FitVerseBack/internal/config"
	"github.com/fitverse-app/FitVerseBack/internal/handlers"
	"github.com/fitverse-app/FitVerseBack/internal/middleware"
	"github.com/fitverse-app/FitVerseBack/internal/realtime"
	"github.com/fitverse-app/FitVerseBack/internal/repository"
	"github.com/fitverse-app/FitVerseBack/internal/services"
	chatws "github.com/fitverse-app/FitVerseBack/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool, cache *redis.Client) {
	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	dailyLogRepo := repository.NewDailyLogRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	planRepo := repository.NewPlanRepository(db)

	var storageService services.StorageService
	if cfg.SupabaseURL != "" && cfg.SupabaseBucket != "" && cfg.SupabaseServiceKey != "" {
		storageService = services.NewSupabaseStorageService(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
	}

	chatHub := chatws.NewHub()
	go chatHub.Run()
	publisher := realtime.NewPublisher(chatHub)

	notificationService := services.NewNotificationService(notificationRepo, cache)
	notifier := services.NewNotifier(notificationService, publisher)

	chatService := services.NewChatService(chatRepo, userRepo)
	messageService := services.NewMessageService(db, chatRepo, messageRepo, userRepo, notifier, publisher)
	dailyLogService := services.NewDailyLogService(dailyLogRepo, subscriptionRepo, userRepo, notifier, storageService)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, paymentRepo, userRepo, notifier)
	planService := services.NewPlanService(planRepo, userRepo, notifier)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	notificationHandler := handlers.NewNotificationHandler(notificationService, notifier)
	chatHandler := handlers.NewChatHandler(chatService, messageService, chatHub, cfg.JWTSecret)
	dailyLogHandler := handlers.NewDailyLogHandler(dailyLogService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	planHandler := handlers.NewPlanHandler(planService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	notifications := authProtected.Group("/notifications")
	notifications.Get("", notificationHandler.List)
	notifications.Get("/recent", notificationHandler.Recent)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Put("/read-all", notificationHandler.MarkAllAsRead)
	notifications.Put("/:id/read", notificationHandler.MarkAsRead)
	notifications.Delete("/:id", notificationHandler.Delete)
	notifications.Post("/alerts", notificationHandler.SendAlert)

	chats := authProtected.Group("/chats")
	chats.Get("", chatHandler.ListChats)
	chats.Post("", chatHandler.CreateChat)
	chats.Get("/:id/messages", chatHandler.GetMessages)
	chats.Post("/:id/messages", chatHandler.SendMessage)
	chats.Put("/:id/read", chatHandler.MarkAsRead)

	logs := authProtected.Group("/daily-logs")
	logs.Post("", dailyLogHandler.Submit)
	logs.Get("", dailyLogHandler.ListMine)
	logs.Put("/:id/review", dailyLogHandler.Review)

	subscriptions := authProtected.Group("/subscriptions")
	subscriptions.Post("", subscriptionHandler.AssignClient)
	subscriptions.Post("/:id/payments", subscriptionHandler.RecordPayment)
	subscriptions.Post("/notify-expiring", subscriptionHandler.NotifyExpiring)

	plans := authProtected.Group("/plans")
	plans.Post("", planHandler.Assign)
	plans.Get("", planHandler.ListMine)
	plans.Put("/:id/complete", planHandler.CompleteWorkout)
	plans.Put("/:id/feedback", planHandler.LeaveFeedback)

	api.Use("/v1/ws", chatHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(chatHandler.HandleWebSocket))
}
