package handler

import (
	"strconv"

	"github.com/jerealeksanteri/rounds-api-sub000/internal/service"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/jwt"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/redis"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler serves account and user-lookup endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=2,max=64"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// Register creates an account.
// POST /api/v1/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, token, err := h.userService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, response.RegisterResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: token,
	})
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a token.
// POST /api/v1/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, token, err := h.userService.Login(req.Identifier, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, response.LoginResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: token,
	})
}

// Logout flips the caller offline.
// POST /api/v1/users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	userID := jwt.GetUserID(c)
	if err := h.userService.Logout(userID); err != nil {
		respondError(c, err)
		return
	}
	if redis.Ready() {
		_ = redis.SetUserPresence(userID, jwt.GetUsername(c), "offline")
	}
	response.SuccessWithMessage(c, "logged out", nil)
}

// Profile returns the caller's own user row.
// GET /api/v1/users/me
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.userService.GetByID(jwt.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, response.FilterUserInfo(user))
}

// Search finds users by username prefix.
// GET /api/v1/users/search?q=<prefix>&limit=<n>
func (h *UserHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	users, err := h.userService.Search(c.Query("q"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	infos := make([]*response.UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, response.FilterUserInfo(u))
	}
	response.Success(c, infos)
}
