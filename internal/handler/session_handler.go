package handler

import (
	"time"

	"github.com/jerealeksanteri/rounds-api-sub000/internal/service"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/jwt"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

// SessionHandler serves session and invite endpoints.
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

type createSessionRequest struct {
	Name        string    `json:"name" binding:"required,min=1,max=128"`
	Description string    `json:"description" binding:"max=512"`
	Location    string    `json:"location" binding:"max=255"`
	StartsAt    time.Time `json:"starts_at"`
}

// Create creates a session hosted by the caller.
// POST /api/v1/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	session, err := h.sessionService.CreateSession(jwt.GetUserID(c), req.Name, req.Description, req.Location, req.StartsAt)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, session)
}

// Get returns one session.
// GET /api/v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	sessionID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.GetSession(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, session)
}

// ListHosted returns the sessions the caller hosts.
// GET /api/v1/sessions
func (h *SessionHandler) ListHosted(c *gin.Context) {
	sessions, err := h.sessionService.ListHosted(jwt.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, sessions)
}

type inviteRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// Invite invites a single user to a session. Host only.
// POST /api/v1/sessions/:id/invites
func (h *SessionHandler) Invite(c *gin.Context) {
	sessionID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	invite, err := h.sessionService.Invite(jwt.GetUserID(c), sessionID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, invite)
}

type respondInviteRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// RespondToInvite accepts or declines an invite addressed to the caller.
// POST /api/v1/invites/:id/respond
func (h *SessionHandler) RespondToInvite(c *gin.Context) {
	inviteID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req respondInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	invite, err := h.sessionService.RespondToInvite(jwt.GetUserID(c), inviteID, *req.Accept)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, invite)
}

// ListInvites returns the caller's invites.
// GET /api/v1/invites
func (h *SessionHandler) ListInvites(c *gin.Context) {
	invites, err := h.sessionService.ListInvites(jwt.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, invites)
}
