package response

import (
	"net/http"

	"github.com/jerealeksanteri/rounds-api-sub000/internal/model"

	"github.com/gin-gonic/gin"
)

// Response is the uniform JSON envelope: code 0 means success.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a success envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage writes a success envelope with a custom message.
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Error writes an error envelope with the given code.
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest writes a 400 error envelope.
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// Unauthorized writes a 401 error envelope.
func Unauthorized(c *gin.Context, message string) {
	Error(c, 401, message)
}

// Forbidden writes a 403 error envelope.
func Forbidden(c *gin.Context, message string) {
	Error(c, 403, message)
}

// NotFound writes a 404 error envelope.
func NotFound(c *gin.Context, message string) {
	Error(c, 404, message)
}

// Conflict writes a 409 error envelope.
func Conflict(c *gin.Context, message string) {
	Error(c, 409, message)
}

// InternalError writes a 500 error envelope.
func InternalError(c *gin.Context, message string) {
	Error(c, 500, message)
}

// UserInfo is the public view of a user (no credential fields).
type UserInfo struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Nickname  string `json:"nickname"`
	Avatar    string `json:"avatar"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// FilterUserInfo converts a user row to its public view.
func FilterUserInfo(user *model.User) *UserInfo {
	if user == nil {
		return nil
	}

	return &UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Nickname:  user.Nickname,
		Avatar:    user.Avatar,
		Status:    user.Status,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// LoginResponse is returned by login.
type LoginResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
}

// RegisterResponse is returned by register.
type RegisterResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
}

// FriendRequestInfo is one pending friendship edge plus the other user.
type FriendRequestInfo struct {
	FriendshipID uint      `json:"friendship_id"`
	User         *UserInfo `json:"user"`
	CreatedAt    string    `json:"created_at"`
}

// NotificationInfo is the public view of a notification row.
type NotificationInfo struct {
	ID        uint   `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Metadata  string `json:"metadata,omitempty"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

// FilterNotificationInfo converts a notification row to its public view.
func FilterNotificationInfo(n *model.Notification) *NotificationInfo {
	if n == nil {
		return nil
	}

	return &NotificationInfo{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Metadata:  n.Metadata,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// BulkInviteResponse is returned by the group bulk invite.
type BulkInviteResponse struct {
	GroupName    string `json:"group_name"`
	SessionName  string `json:"session_name"`
	InvitesCount int    `json:"invites_count"`
}
