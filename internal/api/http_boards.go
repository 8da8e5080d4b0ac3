package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"penlog/internal/entity"

	"github.com/gin-gonic/gin"
)

// CreateBoard publishes a new post by the session user.
func (h *HTTPHandler) CreateBoard(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.BoardCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	board, err := h.boardService.CreateBoard(ctx, requestUser.ID, req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, board)
}

// GetBoard returns one post. Private posts are only visible to their writer.
func (h *HTTPHandler) GetBoard(c *gin.Context) {
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	board, err := h.boardService.GetBoard(ctx, boardID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	requestUser := CurrentUser(c)
	if board.Pub == entity.PubPrivate && (requestUser == nil || requestUser.ID != board.UID) {
		NotFound(c, ErrCodeNotFound, "board not found")
		return
	}

	c.JSON(http.StatusOK, board)
}

// ListBoards pages through posts, optionally by category.
func (h *HTTPHandler) ListBoards(c *gin.Context) {
	var query entity.BoardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}
	if query.PageSize > 100 {
		query.PageSize = 100
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	boards, meta, err := h.boardService.ListBoards(ctx, &query)
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

	c.JSON(http.StatusOK, entity.BoardListResponse{Boards: visible, Meta: meta})
}

// SearchBoards matches post titles against a keyword.
func (h *HTTPHandler) SearchBoards(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("q"))
	if keyword == "" {
		BadRequest(c, ErrCodeInvalidRequest, "q is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	boards, err := h.boardService.SearchBoards(ctx, keyword)
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

// UpdateBoard edits a post owned by the session user.
func (h *HTTPHandler) UpdateBoard(c *gin.Context) {
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.BoardUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	board, err := h.boardService.UpdateBoard(ctx, requestUser.ID, boardID, req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}

// DeleteBoard removes a post owned by the session user.
func (h *HTTPHandler) DeleteBoard(c *gin.Context) {
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.boardService.DeleteBoard(ctx, requestUser.ID, boardID); err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "board deleted"})
}

// CreateFeedback adds a top-level comment to a post.
func (h *HTTPHandler) CreateFeedback(c *gin.Context) {
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	feedback, err := h.boardService.CreateFeedback(ctx, requestUser.ID, boardID, req.Body)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

// ListFeedback returns the comments of a post, oldest first.
func (h *HTTPHandler) ListFeedback(c *gin.Context) {
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	feedback, err := h.boardService.ListFeedback(ctx, boardID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedbacks": feedback})
}

// UpdateFeedback edits a comment owned by the session user.
func (h *HTTPHandler) UpdateFeedback(c *gin.Context) {
	feedbackID, ok := parseIDParam(c, "feedbackId")
	if !ok {
		return
	}
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	feedback, err := h.boardService.UpdateFeedback(ctx, requestUser.ID, feedbackID, req.Body)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}

// DeleteFeedback removes a comment owned by the session user.
func (h *HTTPHandler) DeleteFeedback(c *gin.Context) {
	feedbackID, ok := parseIDParam(c, "feedbackId")
	if !ok {
		return
	}
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.boardService.DeleteFeedback(ctx, requestUser.ID, feedbackID); err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "feedback deleted"})
}

// CreateReply adds a nested reply under a comment.
func (h *HTTPHandler) CreateReply(c *gin.Context) {
	feedbackID, ok := parseIDParam(c, "feedbackId")
	if !ok {
		return
	}
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	reply, err := h.boardService.CreateReply(ctx, requestUser.ID, feedbackID, req.Body)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reply)
}

// ListReplies returns the nested replies of a comment, oldest first.
func (h *HTTPHandler) ListReplies(c *gin.Context) {
	feedbackID, ok := parseIDParam(c, "feedbackId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	replies, err := h.boardService.ListReplies(ctx, feedbackID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"replies": replies})
}

// UpdateReply edits a reply owned by the session user.
func (h *HTTPHandler) UpdateReply(c *gin.Context) {
	replyID, ok := parseIDParam(c, "replyId")
	if !ok {
		return
	}
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	reply, err := h.boardService.UpdateReply(ctx, requestUser.ID, replyID, req.Body)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

// DeleteReply removes a reply owned by the session user.
func (h *HTTPHandler) DeleteReply(c *gin.Context) {
	replyID, ok := parseIDParam(c, "replyId")
	if !ok {
		return
	}
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.boardService.DeleteReply(ctx, requestUser.ID, replyID); err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reply deleted"})
}

// Like records a heart on a board, feedback, or reply.
func (h *HTTPHandler) Like(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.boardService.Like(ctx, requestUser.ID, req.TargetType, req.TargetID); err != nil {
		WriteServiceError(c, err)
		return
	}

	count, err := h.boardService.CountLikes(ctx, req.TargetType, req.TargetID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "liked", "likeCount": count})
}

// Unlike removes a previously recorded heart.
func (h *HTTPHandler) Unlike(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.boardService.Unlike(ctx, requestUser.ID, req.TargetType, req.TargetID); err != nil {
		WriteServiceError(c, err)
		return
	}

	count, err := h.boardService.CountLikes(ctx, req.TargetType, req.TargetID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unliked", "likeCount": count})
}

// ListLikes returns the hearts a user has set. The userId query defaults to
// the session user; targetType optionally narrows the list.
func (h *HTTPHandler) ListLikes(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	uid := requestUser.ID
	if raw := c.Query("userId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			BadRequest(c, ErrCodeInvalidRequest, "userId must be a positive integer")
			return
		}
		uid = uint(parsed)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	likes, err := h.boardService.ListLikes(ctx, uid, c.Query("targetType"))
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// Bookmark saves a post for the session user.
func (h *HTTPHandler) Bookmark(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.boardService.Bookmark(ctx, requestUser.ID, req.BoardID); err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "bookmarked"})
}

// Unbookmark removes a saved post.
func (h *HTTPHandler) Unbookmark(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.boardService.Unbookmark(ctx, requestUser.ID, req.BoardID); err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "bookmark removed"})
}

// ListBookmarks returns the session user's saved posts.
func (h *HTTPHandler) ListBookmarks(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	bookmarks, err := h.boardService.ListBookmarks(ctx, requestUser.ID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarks": bookmarks})
}

// Follow makes the session user follow another account.
func (h *HTTPHandler) Follow(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.boardService.Follow(ctx, requestUser.ID, req.TargetUserID); err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "followed"})
}

// Unfollow removes a follow edge.
func (h *HTTPHandler) Unfollow(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.boardService.Unfollow(ctx, requestUser.ID, req.TargetUserID); err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unfollowed"})
}
