package repository

import (
	"github.com/jerealeksanteri/rounds-api-sub000/internal/model"

	"gorm.io/gorm"
)

// FriendshipRepository persists directed friendship edges.
type FriendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

func (r *FriendshipRepository) Create(f *model.Friendship) error {
	return r.db.Create(f).Error
}

func (r *FriendshipRepository) GetByID(id uint) (*model.Friendship, error) {
	var f model.Friendship
	if err := r.db.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// GetByPair loads the exact directed edge (userID -> friendID).
func (r *FriendshipRepository) GetByPair(userID, friendID uint) (*model.Friendship, error) {
	var f model.Friendship
	err := r.db.Where("user_id = ? AND friend_id = ?", userID, friendID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetLiveBetween loads any non-rejected edge between the two users in
// either direction. This backs the at-most-one-live-relation check.
func (r *FriendshipRepository) GetLiveBetween(a, b uint) (*model.Friendship, error) {
	var f model.Friendship
	err := r.db.Where(
		"((user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)) AND status <> ?",
		a, b, b, a, model.FriendshipRejected,
	).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetPendingBetween loads the pending edge between the two users in either
// direction.
func (r *FriendshipRepository) GetPendingBetween(a, b uint) (*model.Friendship, error) {
	var f model.Friendship
	err := r.db.Where(
		"((user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)) AND status = ?",
		a, b, b, a, model.FriendshipPending,
	).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetAnyBetween loads any edge between the two users in either direction.
func (r *FriendshipRepository) GetAnyBetween(a, b uint) (*model.Friendship, error) {
	var f model.Friendship
	err := r.db.Where(
		"(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		a, b, b, a,
	).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FriendshipRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&model.Friendship{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *FriendshipRepository) Delete(id uint) error {
	return r.db.Delete(&model.Friendship{}, id).Error
}

// DeleteByPair removes the exact directed edge and reports how many rows
// went away, so the mirrored delete can stay best-effort.
func (r *FriendshipRepository) DeleteByPair(userID, friendID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&model.Friendship{})
	return result.RowsAffected, result.Error
}

// ListAcceptedByUser returns accepted edges touching the user in either
// direction.
func (r *FriendshipRepository) ListAcceptedByUser(userID uint) ([]*model.Friendship, error) {
	var edges []*model.Friendship
	err := r.db.Where(
		"(user_id = ? OR friend_id = ?) AND status = ?",
		userID, userID, model.FriendshipAccepted,
	).Find(&edges).Error
	return edges, err
}

// ListPendingTo returns pending requests addressed to the user.
func (r *FriendshipRepository) ListPendingTo(userID uint) ([]*model.Friendship, error) {
	var edges []*model.Friendship
	err := r.db.Where("friend_id = ? AND status = ?", userID, model.FriendshipPending).
		Order("created_at DESC").
		Find(&edges).Error
	return edges, err
}

// ListPendingFrom returns pending requests the user has sent.
func (r *FriendshipRepository) ListPendingFrom(userID uint) ([]*model.Friendship, error) {
	var edges []*model.Friendship
	err := r.db.Where("user_id = ? AND status = ?", userID, model.FriendshipPending).
		Order("created_at DESC").
		Find(&edges).Error
	return edges, err
}

// AcceptedFriendIDs returns the subset of candidates holding an accepted
// friendship with ownerID, in either direction.
func (r *FriendshipRepository) AcceptedFriendIDs(ownerID uint, candidateIDs []uint) ([]uint, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}

	var edges []*model.Friendship
	err := r.db.Where(
		"((user_id = ? AND friend_id IN ?) OR (friend_id = ? AND user_id IN ?)) AND status = ?",
		ownerID, candidateIDs, ownerID, candidateIDs, model.FriendshipAccepted,
	).Find(&edges).Error
	if err != nil {
		return nil, err
	}

	friendIDs := make([]uint, 0, len(edges))
	seen := make(map[uint]bool, len(edges))
	for _, e := range edges {
		other := e.UserID
		if e.UserID == ownerID {
			other = e.FriendID
		}
		if !seen[other] {
			seen[other] = true
			friendIDs = append(friendIDs, other)
		}
	}
	return friendIDs, nil
}
