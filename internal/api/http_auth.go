package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"penlog/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Join registers a local account and sends the confirmation mail.
func (h *HTTPHandler) Join(c *gin.Context) {
	var req entity.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.authService.CreateUser(ctx, req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	if user.Token != nil {
		if err := h.mailer.SendConfirmation(user.Email, *user.Token); err != nil {
			logrus.WithError(err).WithField("email", user.Email).Warn("failed to send confirmation mail")
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "confirmation mail sent",
		"screenId": user.ScreenID,
	})
}

// Login exchanges credentials for a session token.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.authService.Login(ctx, req.Email, req.UserPw)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	h.writeLoginResponse(c, user)
}

// SnsLogin signs in with a provider-verified identity, registering the
// account on first contact.
func (h *HTTPHandler) SnsLogin(c *gin.Context) {
	var req entity.SnsLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	join, ok := snsJoinData(&req)
	if !ok {
		BadRequest(c, ErrCodeInvalidRequest, "missing or mismatched sns profile data")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.authService.FindBySnsID(ctx, join.UID, join.SnsType)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	if user == nil {
		user, err = h.authService.CreateSnsUser(ctx, join)
		if err != nil {
			WriteServiceError(c, err)
			return
		}
	} else if !user.IsActive() {
		ErrorResponse(c, http.StatusForbidden, ErrCodeAccountDeactivated, "account is deactivated")
		return
	}

	h.writeLoginResponse(c, user)
}

// snsJoinData flattens the tagged provider payload into the neutral form
// the auth service consumes.
func snsJoinData(req *entity.SnsLoginRequest) (entity.SnsJoinData, bool) {
	switch req.SnsType {
	case entity.SnsTypeGoogle:
		p := req.SnsData.Google
		if p == nil {
			return entity.SnsJoinData{}, false
		}
		return entity.SnsJoinData{
			UID:             p.GoogleID,
			Email:           p.Email,
			Name:            p.Name,
			ProfileImage:    p.ImageURL,
			SnsType:         entity.SnsTypeGoogle,
			DisplayLanguage: req.UserLang,
		}, true
	case entity.SnsTypeFacebook:
		p := req.SnsData.Facebook
		if p == nil {
			return entity.SnsJoinData{}, false
		}
		return entity.SnsJoinData{
			UID:             p.ID,
			Email:           p.Email,
			Name:            p.Name,
			SnsType:         entity.SnsTypeFacebook,
			DisplayLanguage: req.UserLang,
		}, true
	default:
		return entity.SnsJoinData{}, false
	}
}

// MailAuth confirms an email address from the link in the signup mail.
func (h *HTTPHandler) MailAuth(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	token := strings.TrimSpace(c.Query("token"))
	if email == "" || token == "" {
		BadRequest(c, ErrCodeInvalidRequest, "email and token are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.authService.ConfirmUser(ctx, email, token); err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "email confirmed"})
}

// FindPass starts a password reset by mailing a verification link.
func (h *HTTPHandler) FindPass(c *gin.Context) {
	var req entity.FindPassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	token, err := h.authService.IssuePasswordResetToken(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	if err := h.mailer.SendPasswordReset(req.Email, token); err != nil {
		logrus.WithError(err).WithField("email", req.Email).Warn("failed to send password reset mail")
	}

	c.JSON(http.StatusOK, gin.H{"message": "password reset mail sent"})
}

// ChangePass sets a new password after the reset mail challenge.
func (h *HTTPHandler) ChangePass(c *gin.Context) {
	var req entity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if req.UserPwNew != req.UserPwNewRe {
		BadRequest(c, ErrCodeInvalidRequest, "passwords do not match")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.authService.ChangePassword(ctx, strings.TrimSpace(req.Email), req.UserPwNew); err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

// Me returns the session's own account summary.
func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.profileService.GetUserProfile(ctx, user.ID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *HTTPHandler) writeLoginResponse(c *gin.Context, user *entity.DbUser) {
	token, _, err := h.authManager.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		InternalError(c, "failed to create session")
		return
	}

	c.JSON(http.StatusOK, entity.LoginResponse{
		AuthToken:       token,
		Nick:            user.Nickname,
		ScreenID:        user.ScreenID,
		DisplayLanguage: user.DisplayLanguage,
	})
}
