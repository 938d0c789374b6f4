package handler

import (
	"github.com/jerealeksanteri/rounds-api-sub000/internal/service"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/jwt"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

// FriendGroupHandler serves friend-group and bulk-invite endpoints.
type FriendGroupHandler struct {
	groupService *service.FriendGroupService
}

// NewFriendGroupHandler creates a FriendGroupHandler.
func NewFriendGroupHandler(groupService *service.FriendGroupService) *FriendGroupHandler {
	return &FriendGroupHandler{groupService: groupService}
}

type createGroupRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=64"`
	Description string `json:"description" binding:"max=255"`
	MemberIDs   []uint `json:"member_ids"`
}

// Create creates a group owned by the caller.
// POST /api/v1/groups
func (h *FriendGroupHandler) Create(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	group, err := h.groupService.CreateGroup(jwt.GetUserID(c), req.Name, req.Description, req.MemberIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"group_id":    group.ID,
		"name":        group.Name,
		"description": group.Description,
	})
}

// List returns the caller's groups.
// GET /api/v1/groups
func (h *FriendGroupHandler) List(c *gin.Context) {
	groups, err := h.groupService.ListGroups(jwt.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, groups)
}

// Get returns one group with its resolved members.
// GET /api/v1/groups/:id
func (h *FriendGroupHandler) Get(c *gin.Context) {
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.groupService.GetGroup(jwt.GetUserID(c), groupID)
	if err != nil {
		respondError(c, err)
		return
	}

	members := make([]*response.UserInfo, 0, len(detail.Members))
	for _, u := range detail.Members {
		members = append(members, response.FilterUserInfo(u))
	}
	response.Success(c, gin.H{
		"group":   detail.Group,
		"members": members,
	})
}

type updateGroupRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=64"`
	Description string `json:"description" binding:"max=255"`
}

// Update renames a group or changes its description.
// PUT /api/v1/groups/:id
func (h *FriendGroupHandler) Update(c *gin.Context) {
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req updateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	group, err := h.groupService.UpdateGroup(jwt.GetUserID(c), groupID, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, group)
}

// Delete removes a group and its membership rows.
// DELETE /api/v1/groups/:id
func (h *FriendGroupHandler) Delete(c *gin.Context) {
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.groupService.DeleteGroup(jwt.GetUserID(c), groupID); err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMessage(c, "group deleted", nil)
}

type addMembersRequest struct {
	MemberIDs []uint `json:"member_ids" binding:"required,min=1"`
}

// AddMembers adds friends to a group.
// POST /api/v1/groups/:id/members
func (h *FriendGroupHandler) AddMembers(c *gin.Context) {
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req addMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	added, err := h.groupService.AddMembers(jwt.GetUserID(c), groupID, req.MemberIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"added_ids": added})
}

// RemoveMember removes one user from a group.
// DELETE /api/v1/groups/:id/members/:user_id
func (h *FriendGroupHandler) RemoveMember(c *gin.Context) {
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseUintParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.groupService.RemoveMember(jwt.GetUserID(c), groupID, userID); err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMessage(c, "member removed", nil)
}

type bulkInviteRequest struct {
	SessionID uint `json:"session_id" binding:"required"`
}

// BulkInvite invites every group member to a session.
// POST /api/v1/groups/:id/invite
func (h *FriendGroupHandler) BulkInvite(c *gin.Context) {
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req bulkInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.groupService.BulkInvite(jwt.GetUserID(c), groupID, req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, response.BulkInviteResponse{
		GroupName:    result.GroupName,
		SessionName:  result.SessionName,
		InvitesCount: result.InvitesCreated,
	})
}
