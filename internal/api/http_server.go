package api

import (
	"strings"
	"time"

	"penlog/internal/auth"
	"penlog/internal/config"
	"penlog/internal/mail"
	"penlog/internal/model"
	"penlog/internal/service"
	"penlog/internal/storage"
)

// HTTPHandler wires the HTTP surface to the service layer.
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager
	mailer            *mail.Mailer

	authService    *service.AuthService
	profileService *service.ProfileService
	boardService   *service.BoardService
}

// NewHTTPHandler creates the HTTP handler and its services.
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage, mailer *mail.Mailer) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	hasher, err := auth.NewHasher(cfg.PBKDF2Iterations, cfg.PBKDF2KeyLength)
	if err != nil {
		return nil, err
	}

	return &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:       authManager,
		mailer:            mailer,
		authService:       service.NewAuthService(repo, hasher),
		profileService:    service.NewProfileService(repo),
		boardService:      service.NewBoardService(repo),
	}, nil
}

func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}
