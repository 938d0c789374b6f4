package repository

import (
	"github.com/jerealeksanteri/rounds-api-sub000/internal/model"

	"gorm.io/gorm"
)

// SessionRepository persists sessions and their invites.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(session *model.DrinkingSession) error {
	return r.db.Create(session).Error
}

func (r *SessionRepository) GetByID(id uint) (*model.DrinkingSession, error) {
	var s model.DrinkingSession
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) ListByHost(hostID uint) ([]*model.DrinkingSession, error) {
	var sessions []*model.DrinkingSession
	err := r.db.Where("host_id = ?", hostID).
		Order("starts_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) CreateInvite(invite *model.SessionInvite) error {
	return r.db.Create(invite).Error
}

func (r *SessionRepository) GetInviteByID(id uint) (*model.SessionInvite, error) {
	var inv model.SessionInvite
	if err := r.db.First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetPendingInvite loads the pending invite for a user on a session, used
// for the duplicate-invite check.
func (r *SessionRepository) GetPendingInvite(sessionID, userID uint) (*model.SessionInvite, error) {
	var inv model.SessionInvite
	err := r.db.Where("session_id = ? AND user_id = ? AND status = ?",
		sessionID, userID, model.InvitePending).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *SessionRepository) ListInvitesForUser(userID uint) ([]*model.SessionInvite, error) {
	var invites []*model.SessionInvite
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&invites).Error
	return invites, err
}

func (r *SessionRepository) UpdateInviteStatus(id uint, status string) error {
	return r.db.Model(&model.SessionInvite{}).
		Where("id = ?", id).
		Update("status", status).Error
}
