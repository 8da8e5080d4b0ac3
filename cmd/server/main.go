package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"penlog/internal/api"
	"penlog/internal/config"
	"penlog/internal/mail"
	"penlog/internal/model"
	"penlog/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("failed to parse config")
		return
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise storage")
		return
	}

	mailer := mail.NewMailer(cfg)

	httpHandler, err := api.NewHTTPHandler(cfg, repo, store, mailer)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	authGroup := r.Group("/auth")
	authGroup.POST("/join", httpHandler.Join)
	authGroup.POST("/login", httpHandler.Login)
	authGroup.POST("/snsLogin", httpHandler.SnsLogin)
	authGroup.GET("/mailAuth", httpHandler.MailAuth)
	authGroup.POST("/findPass", httpHandler.FindPass)
	authGroup.PATCH("/findPass", httpHandler.ChangePass)
	authGroup.GET("/me", httpHandler.AuthMiddleware(), httpHandler.Me)

	users := r.Group("/users")
	users.Use(httpHandler.AuthMiddleware())
	users.GET("/:id/profile", httpHandler.GetProfile)
	users.POST("/:id/profile", httpHandler.PostProfile)
	users.DELETE("/:id", httpHandler.DeleteAccount)
	users.GET("/:id/boards", httpHandler.ListUserBoards)
	users.GET("/:id/followers", httpHandler.ListFollowers)
	users.GET("/:id/following", httpHandler.ListFollowing)

	boards := r.Group("/boards")
	boards.Use(httpHandler.AuthMiddleware())
	boards.POST("", httpHandler.CreateBoard)
	boards.GET("", httpHandler.ListBoards)
	boards.GET("/search", httpHandler.SearchBoards)
	boards.GET("/:boardId", httpHandler.GetBoard)
	boards.PATCH("/:boardId", httpHandler.UpdateBoard)
	boards.DELETE("/:boardId", httpHandler.DeleteBoard)
	boards.POST("/:boardId/feedback", httpHandler.CreateFeedback)
	boards.GET("/:boardId/feedback", httpHandler.ListFeedback)

	feedback := r.Group("/feedback")
	feedback.Use(httpHandler.AuthMiddleware())
	feedback.PATCH("/:feedbackId", httpHandler.UpdateFeedback)
	feedback.DELETE("/:feedbackId", httpHandler.DeleteFeedback)
	feedback.POST("/:feedbackId/replies", httpHandler.CreateReply)
	feedback.GET("/:feedbackId/replies", httpHandler.ListReplies)

	replies := r.Group("/replies")
	replies.Use(httpHandler.AuthMiddleware())
	replies.PATCH("/:replyId", httpHandler.UpdateReply)
	replies.DELETE("/:replyId", httpHandler.DeleteReply)

	interaction := r.Group("/interaction")
	interaction.Use(httpHandler.AuthMiddleware())
	interaction.POST("/like", httpHandler.Like)
	interaction.DELETE("/like", httpHandler.Unlike)
	interaction.GET("/likes", httpHandler.ListLikes)
	interaction.POST("/bookmark", httpHandler.Bookmark)
	interaction.DELETE("/bookmark", httpHandler.Unbookmark)
	interaction.GET("/bookmarks", httpHandler.ListBookmarks)
	interaction.POST("/follow", httpHandler.Follow)
	interaction.DELETE("/follow", httpHandler.Unfollow)

	r.POST("/files", httpHandler.AuthMiddleware(), httpHandler.UploadImage)

	if localProvider, ok := store.(storage.LocalBaseDirProvider); ok {
		publicPrefix := strings.TrimSpace(cfg.StoragePublicBaseURL)
		if publicPrefix == "" {
			publicPrefix = "/files"
		}
		if !strings.HasPrefix(publicPrefix, "http://") && !strings.HasPrefix(publicPrefix, "https://") {
			if !strings.HasPrefix(publicPrefix, "/") {
				publicPrefix = "/" + publicPrefix
			}
			r.Static(publicPrefix, localProvider.LocalBaseDir())
		}
	}

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("server starting")
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("server failed")
	}
}

// CORSMiddleware allows cross-origin requests from the web frontend.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware emits one structured log line per request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
