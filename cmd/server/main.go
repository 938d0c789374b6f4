package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jerealeksanteri/rounds-api-sub000/config"
	"github.com/jerealeksanteri/rounds-api-sub000/internal/handler"
	"github.com/jerealeksanteri/rounds-api-sub000/internal/model"
	"github.com/jerealeksanteri/rounds-api-sub000/internal/repository"
	"github.com/jerealeksanteri/rounds-api-sub000/internal/service"
	dbPkg "github.com/jerealeksanteri/rounds-api-sub000/pkg/db"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/jwt"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/logger"
	redisPkg "github.com/jerealeksanteri/rounds-api-sub000/pkg/redis"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/response"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("rounds api starting",
		zap.String("port", cfg.Server.Port),
		zap.String("database_host", cfg.Database.Host),
		zap.Int("database_port", cfg.Database.Port),
		zap.String("database_name", cfg.Database.Database),
		zap.Duration("jwt_expire_time", cfg.JWT.ExpireTime),
		zap.String("log_level", cfg.Log.Level),
	)

	if _, err := dbPkg.InitDB(cfg.Database); err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer func() {
		if err := dbPkg.CloseDB(); err != nil {
			log.Error("closing database connection failed", zap.Error(err))
		}
	}()
	log.Info("database connected")

	if err := dbPkg.AutoMigrate(
		&model.User{},
		&model.Friendship{},
		&model.FriendGroup{},
		&model.FriendGroupMember{},
		&model.DrinkingSession{},
		&model.SessionInvite{},
		&model.SessionComment{},
		&model.CommentMention{},
		&model.Notification{},
	); err != nil {
		log.Fatal("auto migration failed", zap.Error(err))
	}
	log.Info("auto migration done")

	// Redis is optional. Offline event queues, the unread badge cache and
	// presence degrade to database-only behavior without it.
	if err := redisPkg.InitRedis(cfg.Redis); err != nil {
		log.Warn("redis unavailable, continuing without it", zap.Error(err))
	} else {
		log.Info("redis connected")
		defer redisPkg.Close()
	}

	db := dbPkg.GetDB()
	jwtSvc := jwt.NewJWTService(cfg.JWT)

	userRepo := repository.NewUserRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	groupRepo := repository.NewFriendGroupRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notificationSvc := service.NewNotificationService(notificationRepo, websocket.GetManager())
	userSvc := service.NewUserService(userRepo, jwtSvc)
	friendshipSvc := service.NewFriendshipService(friendshipRepo, userRepo, notificationSvc)
	groupSvc := service.NewFriendGroupService(groupRepo, friendshipRepo, sessionRepo, userRepo, notificationSvc)
	sessionSvc := service.NewSessionService(sessionRepo, userRepo, notificationSvc)
	commentSvc := service.NewCommentService(commentRepo, sessionRepo, userRepo, notificationSvc)

	userHandler := handler.NewUserHandler(userSvc)
	friendshipHandler := handler.NewFriendshipHandler(friendshipSvc)
	groupHandler := handler.NewFriendGroupHandler(groupSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// The websocket upgrade handler cannot take constructor arguments, so the
	// config it needs rides on the gin context.
	router.Use(func(c *gin.Context) {
		c.Set("jwt_config", cfg.JWT)
		c.Set("ws_config", cfg.WebSocket)
		c.Next()
	})

	router.Use(logger.LoggerMiddleware())
	router.Use(logger.ErrorLoggerMiddleware())

	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if err := dbPkg.HealthCheck(); err != nil {
			status = "db-down"
		}
		response.Success(c, gin.H{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)

			authUsers := users.Group("")
			authUsers.Use(jwtSvc.AuthMiddleware())
			{
				authUsers.POST("/logout", userHandler.Logout)
				authUsers.GET("/me", userHandler.Profile)
				authUsers.GET("/search", userHandler.Search)
			}
		}

		friends := v1.Group("/friends")
		friends.Use(jwtSvc.AuthMiddleware())
		{
			friends.GET("", friendshipHandler.List)
			friends.DELETE("/:user_id", friendshipHandler.Remove)
			friends.POST("/requests", friendshipHandler.SendRequest)
			friends.GET("/requests/incoming", friendshipHandler.PendingRequests)
			friends.GET("/requests/outgoing", friendshipHandler.SentRequests)
			friends.POST("/requests/:id/respond", friendshipHandler.Respond)
		}

		groups := v1.Group("/groups")
		groups.Use(jwtSvc.AuthMiddleware())
		{
			groups.POST("", groupHandler.Create)
			groups.GET("", groupHandler.List)
			groups.GET("/:id", groupHandler.Get)
			groups.PUT("/:id", groupHandler.Update)
			groups.DELETE("/:id", groupHandler.Delete)
			groups.POST("/:id/members", groupHandler.AddMembers)
			groups.DELETE("/:id/members/:user_id", groupHandler.RemoveMember)
			groups.POST("/:id/invite", groupHandler.BulkInvite)
		}

		sessions := v1.Group("/sessions")
		sessions.Use(jwtSvc.AuthMiddleware())
		{
			sessions.POST("", sessionHandler.Create)
			sessions.GET("", sessionHandler.ListHosted)
			sessions.GET("/:id", sessionHandler.Get)
			sessions.POST("/:id/invites", sessionHandler.Invite)
			sessions.POST("/:id/comments", commentHandler.Create)
			sessions.GET("/:id/comments", commentHandler.ListBySession)
		}

		invites := v1.Group("/invites")
		invites.Use(jwtSvc.AuthMiddleware())
		{
			invites.GET("", sessionHandler.ListInvites)
			invites.POST("/:id/respond", sessionHandler.RespondToInvite)
		}

		comments := v1.Group("/comments")
		comments.Use(jwtSvc.AuthMiddleware())
		{
			comments.PUT("/:id", commentHandler.Update)
			comments.DELETE("/:id", commentHandler.Delete)
			comments.GET("/:id/mentions", commentHandler.ListMentions)
		}

		notifications := v1.Group("/notifications")
		notifications.Use(jwtSvc.AuthMiddleware())
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/unread_count", notificationHandler.UnreadCount)
			notifications.POST("/read_all", notificationHandler.MarkAllRead)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.Delete)
		}
	}

	router.GET("/ws", websocket.WsHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}
