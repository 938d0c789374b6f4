package handler

import (
	"github.com/jerealeksanteri/rounds-api-sub000/internal/service"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/jwt"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

// FriendshipHandler serves the friendship lifecycle endpoints.
type FriendshipHandler struct {
	friendshipService *service.FriendshipService
}

// NewFriendshipHandler creates a FriendshipHandler.
func NewFriendshipHandler(friendshipService *service.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendshipService: friendshipService}
}

type sendRequestRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// SendRequest creates a pending friend request to another user.
// POST /api/v1/friends/requests
func (h *FriendshipHandler) SendRequest(c *gin.Context) {
	var req sendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	edge, err := h.friendshipService.SendRequest(jwt.GetUserID(c), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"friendship_id": edge.ID,
		"status":        edge.Status,
	})
}

type respondRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// Respond accepts or rejects a pending request addressed to the caller.
// POST /api/v1/friends/requests/:id/respond
func (h *FriendshipHandler) Respond(c *gin.Context) {
	friendshipID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	edge, err := h.friendshipService.Respond(jwt.GetUserID(c), friendshipID, *req.Accept)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"friendship_id": edge.ID,
		"status":        edge.Status,
	})
}

// Remove unfriends another user.
// DELETE /api/v1/friends/:user_id
func (h *FriendshipHandler) Remove(c *gin.Context) {
	otherID, ok := parseUintParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.friendshipService.Remove(jwt.GetUserID(c), otherID); err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMessage(c, "friend removed", nil)
}

// List returns the caller's accepted friends.
// GET /api/v1/friends
func (h *FriendshipHandler) List(c *gin.Context) {
	friends, err := h.friendshipService.Friends(jwt.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	infos := make([]*response.UserInfo, 0, len(friends))
	for _, u := range friends {
		infos = append(infos, response.FilterUserInfo(u))
	}
	response.Success(c, infos)
}

// PendingRequests returns incoming pending requests.
// GET /api/v1/friends/requests/incoming
func (h *FriendshipHandler) PendingRequests(c *gin.Context) {
	requests, err := h.friendshipService.PendingRequests(jwt.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, filterFriendRequests(requests))
}

// SentRequests returns outgoing pending requests.
// GET /api/v1/friends/requests/outgoing
func (h *FriendshipHandler) SentRequests(c *gin.Context) {
	requests, err := h.friendshipService.SentRequests(jwt.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, filterFriendRequests(requests))
}

func filterFriendRequests(requests []*service.FriendRequest) []*response.FriendRequestInfo {
	infos := make([]*response.FriendRequestInfo, 0, len(requests))
	for _, r := range requests {
		infos = append(infos, &response.FriendRequestInfo{
			FriendshipID: r.Friendship.ID,
			User:         response.FilterUserInfo(r.User),
			CreatedAt:    r.Friendship.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return infos
}
