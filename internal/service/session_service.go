package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jerealeksanteri/rounds-api-sub000/internal/model"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/apperr"

	"gorm.io/gorm"
)

// SessionService covers the session surface the social subsystem needs:
// creating sessions and inviting individual users to them. Drink tracking
// and session editing live elsewhere.
type SessionService struct {
	sessions SessionStore
	users    UserDirectory
	notifier *NotificationService
}

// NewSessionService creates a SessionService.
func NewSessionService(sessions SessionStore, users UserDirectory, notifier *NotificationService) *SessionService {
	return &SessionService{sessions: sessions, users: users, notifier: notifier}
}

// CreateSession creates a session hosted by the caller.
func (s *SessionService) CreateSession(hostID uint, name, description, location string, startsAt time.Time) (*model.DrinkingSession, error) {
	if name == "" {
		return nil, apperr.Validation("session name is required")
	}

	session := &model.DrinkingSession{
		HostID:      hostID,
		Name:        name,
		Description: description,
		Location:    location,
		StartsAt:    startsAt,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession loads one session.
func (s *SessionService) GetSession(id uint) (*model.DrinkingSession, error) {
	session, err := s.sessions.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session %d not found", id)
		}
		return nil, err
	}
	return session, nil
}

// ListHosted returns the sessions the user hosts.
func (s *SessionService) ListHosted(hostID uint) ([]*model.DrinkingSession, error) {
	return s.sessions.ListByHost(hostID)
}

// Invite invites a single user to a session. Host only; a pending invite
// for the same user blocks a duplicate.
func (s *SessionService) Invite(callerID, sessionID, userID uint) (*model.SessionInvite, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session %d not found", sessionID)
		}
		return nil, err
	}
	if session.HostID != callerID {
		return nil, apperr.Forbidden("user %d does not host session %d", callerID, sessionID)
	}
	if _, err := s.users.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %d not found", userID)
		}
		return nil, err
	}

	existing, err := s.sessions.GetPendingInvite(sessionID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("user %d already has a pending invite to session %d", userID, sessionID)
	}

	invite := &model.SessionInvite{
		SessionID:   sessionID,
		UserID:      userID,
		Status:      model.InvitePending,
		CreatedByID: callerID,
	}
	if err := s.sessions.CreateInvite(invite); err != nil {
		return nil, err
	}

	metadata, _ := json.Marshal(map[string]interface{}{
		"session_id": sessionID,
		"invite_id":  invite.ID,
	})
	if _, err := s.notifier.CreateAndSend(
		userID,
		model.NotificationSessionInvite,
		"Session invite",
		fmt.Sprintf("You have been invited to %s", session.Name),
		string(metadata),
	); err != nil {
		return nil, err
	}

	return invite, nil
}

// RespondToInvite accepts or declines a pending invite. Invitee only.
func (s *SessionService) RespondToInvite(callerID, inviteID uint, accept bool) (*model.SessionInvite, error) {
	invite, err := s.sessions.GetInviteByID(inviteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("invite %d not found", inviteID)
		}
		return nil, err
	}
	if invite.UserID != callerID {
		return nil, apperr.Forbidden("invite %d does not belong to user %d", inviteID, callerID)
	}
	if invite.Status != model.InvitePending {
		return nil, apperr.Conflict("invite %d is already %s", inviteID, invite.Status)
	}

	newStatus := model.InviteDeclined
	if accept {
		newStatus = model.InviteAccepted
	}
	if err := s.sessions.UpdateInviteStatus(inviteID, newStatus); err != nil {
		return nil, err
	}

	updated := *invite
	updated.Status = newStatus
	return &updated, nil
}

// ListInvites returns the caller's invites, newest first.
func (s *SessionService) ListInvites(userID uint) ([]*model.SessionInvite, error) {
	return s.sessions.ListInvitesForUser(userID)
}
