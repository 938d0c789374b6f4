package handler

import (
	"github.com/jerealeksanteri/rounds-api-sub000/internal/service"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/jwt"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

// CommentHandler serves session comment endpoints.
type CommentHandler struct {
	commentService *service.CommentService
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// Create posts a comment on a session.
// POST /api/v1/sessions/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	sessionID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	comment, err := h.commentService.CreateComment(jwt.GetUserID(c), sessionID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, comment)
}

// ListBySession returns a session's comments.
// GET /api/v1/sessions/:id/comments
func (h *CommentHandler) ListBySession(c *gin.Context) {
	sessionID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.ListBySession(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, comments)
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// Update rewrites a comment. Author only.
// PUT /api/v1/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	comment, err := h.commentService.UpdateComment(jwt.GetUserID(c), commentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, comment)
}

// Delete removes a comment and its mention rows. Author only.
// DELETE /api/v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(jwt.GetUserID(c), commentID); err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMessage(c, "comment deleted", nil)
}

// ListMentions returns the mention rows of a comment.
// GET /api/v1/comments/:id/mentions
func (h *CommentHandler) ListMentions(c *gin.Context) {
	commentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	mentions, err := h.commentService.ListMentions(commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, mentions)
}
