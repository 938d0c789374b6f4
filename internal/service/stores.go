package service

import "github.com/jerealeksanteri/rounds-api-sub000/internal/model"

// Store interfaces consumed by the services. The gorm repositories under
// internal/repository satisfy them; tests swap in in-memory fakes. A missing
// row surfaces as gorm.ErrRecordNotFound from Get methods.

// UserDirectory resolves users by id or username.
type UserDirectory interface {
	GetByID(id uint) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	GetByIDs(ids []uint) ([]*model.User, error)
}

// FriendshipStore persists directed friendship edges.
type FriendshipStore interface {
	Create(f *model.Friendship) error
	GetByID(id uint) (*model.Friendship, error)
	GetLiveBetween(a, b uint) (*model.Friendship, error)
	GetAnyBetween(a, b uint) (*model.Friendship, error)
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
	DeleteByPair(userID, friendID uint) (int64, error)
	ListAcceptedByUser(userID uint) ([]*model.Friendship, error)
	ListPendingTo(userID uint) ([]*model.Friendship, error)
	ListPendingFrom(userID uint) ([]*model.Friendship, error)
	AcceptedFriendIDs(ownerID uint, candidateIDs []uint) ([]uint, error)
}

// FriendGroupStore persists groups and membership rows.
type FriendGroupStore interface {
	Create(group *model.FriendGroup) error
	GetByID(id uint) (*model.FriendGroup, error)
	Update(group *model.FriendGroup) error
	Delete(id uint) error
	ListByOwner(ownerID uint) ([]*model.FriendGroup, error)
	AddMembers(members []*model.FriendGroupMember) error
	ListMembers(groupID uint) ([]*model.FriendGroupMember, error)
	MemberUserIDs(groupID uint) ([]uint, error)
	RemoveMember(groupID, userID uint) (int64, error)
	RemoveAllMembers(groupID uint) error
}

// SessionStore persists sessions and invites.
type SessionStore interface {
	Create(session *model.DrinkingSession) error
	GetByID(id uint) (*model.DrinkingSession, error)
	ListByHost(hostID uint) ([]*model.DrinkingSession, error)
	CreateInvite(invite *model.SessionInvite) error
	GetInviteByID(id uint) (*model.SessionInvite, error)
	GetPendingInvite(sessionID, userID uint) (*model.SessionInvite, error)
	ListInvitesForUser(userID uint) ([]*model.SessionInvite, error)
	UpdateInviteStatus(id uint, status string) error
}

// CommentStore persists session comments and mention rows.
type CommentStore interface {
	Create(comment *model.SessionComment) error
	GetByID(id uint) (*model.SessionComment, error)
	Update(comment *model.SessionComment) error
	Delete(id uint) error
	ListBySession(sessionID uint) ([]*model.SessionComment, error)
	CreateMentions(mentions []*model.CommentMention) error
	ListMentionsByComment(commentID uint) ([]*model.CommentMention, error)
	DeleteMentionsByComment(commentID uint) error
}

// NotificationStore persists notification rows.
type NotificationStore interface {
	Create(n *model.Notification) error
	GetByID(id uint) (*model.Notification, error)
	ListByUser(userID uint, limit int) ([]*model.Notification, error)
	MarkRead(id uint) error
	MarkAllRead(userID uint) error
	Delete(id uint) error
	CountUnread(userID uint) (int64, error)
}

// Publisher is the live-channel primitive: push one event to one user's
// channel, best-effort, no error surface. The websocket manager implements
// it.
type Publisher interface {
	PublishToUser(userID uint, eventName string, payload interface{})
}
