package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"penlog/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid "+name)
		return 0, false
	}
	return uint(value), true
}

// GetProfile returns the public profile of the addressed account.
func (h *HTTPHandler) GetProfile(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.profileService.GetUserProfile(ctx, userID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// PostProfile updates profile fields. Only the owner may write.
func (h *HTTPHandler) PostProfile(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	requestUser := CurrentUser(c)
	if requestUser == nil || requestUser.ID != userID {
		Forbidden(c, "profile may only be edited by its owner")
		return
	}

	var req entity.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.profileService.PostUserProfile(ctx, userID, req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteAccount removes the session's own account.
func (h *HTTPHandler) DeleteAccount(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	requestUser := CurrentUser(c)
	if requestUser == nil || requestUser.ID != userID {
		Forbidden(c, "account may only be deleted by its owner")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.authService.DeleteUser(ctx, userID); err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// ListUserBoards returns the posts of one user. Private posts are only
// visible to their owner.
func (h *HTTPHandler) ListUserBoards(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	boards, err := h.boardService.ListUserBoards(ctx, userID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	requestUser := CurrentUser(c)
	visible := make([]entity.DbBoard, 0, len(boards))
	for _, board := range boards {
		if board.Pub == entity.PubPrivate && (requestUser == nil || requestUser.ID != board.UID) {
			continue
		}
		visible = append(visible, board)
	}

	c.JSON(http.StatusOK, gin.H{"boards": visible})
}

// ListFollowers returns the accounts following the addressed user.
func (h *HTTPHandler) ListFollowers(c *gin.Context) {
	h.listFollowEdges(c, true)
}

// ListFollowing returns the accounts the addressed user follows.
func (h *HTTPHandler) ListFollowing(c *gin.Context) {
	h.listFollowEdges(c, false)
}

func (h *HTTPHandler) listFollowEdges(c *gin.Context, followers bool) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var (
		edges []entity.DbFollow
		err   error
	)
	if followers {
		edges, err = h.repo.ListFollowers(ctx, userID)
	} else {
		edges, err = h.repo.ListFollowing(ctx, userID)
	}
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("failed to list follow edges")
		InternalError(c, "failed to load follow list")
		return
	}

	ids := make([]uint, 0, len(edges))
	for _, edge := range edges {
		if followers {
			ids = append(ids, edge.UID)
		} else {
			ids = append(ids, edge.TargetUID)
		}
	}

	c.JSON(http.StatusOK, gin.H{"userIds": ids})
}
