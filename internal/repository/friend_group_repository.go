package repository

import (
	"github.com/jerealeksanteri/rounds-api-sub000/internal/model"

	"gorm.io/gorm"
)

// FriendGroupRepository persists groups and their membership rows.
type FriendGroupRepository struct {
	db *gorm.DB
}

func NewFriendGroupRepository(db *gorm.DB) *FriendGroupRepository {
	return &FriendGroupRepository{db: db}
}

func (r *FriendGroupRepository) Create(group *model.FriendGroup) error {
	return r.db.Create(group).Error
}

func (r *FriendGroupRepository) GetByID(id uint) (*model.FriendGroup, error) {
	var g model.FriendGroup
	if err := r.db.First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *FriendGroupRepository) Update(group *model.FriendGroup) error {
	return r.db.Save(group).Error
}

func (r *FriendGroupRepository) Delete(id uint) error {
	return r.db.Delete(&model.FriendGroup{}, id).Error
}

func (r *FriendGroupRepository) ListByOwner(ownerID uint) ([]*model.FriendGroup, error) {
	var groups []*model.FriendGroup
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&groups).Error
	return groups, err
}

// AddMembers bulk-inserts membership rows.
func (r *FriendGroupRepository) AddMembers(members []*model.FriendGroupMember) error {
	if len(members) == 0 {
		return nil
	}
	return r.db.Create(members).Error
}

func (r *FriendGroupRepository) ListMembers(groupID uint) ([]*model.FriendGroupMember, error) {
	var members []*model.FriendGroupMember
	err := r.db.Where("group_id = ?", groupID).
		Order("added_at ASC").
		Find(&members).Error
	return members, err
}

// MemberUserIDs returns member user ids in insertion order.
func (r *FriendGroupRepository) MemberUserIDs(groupID uint) ([]uint, error) {
	members, err := r.ListMembers(groupID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(members))
	for i, m := range members {
		ids[i] = m.UserID
	}
	return ids, nil
}

// RemoveMember deletes one membership row and reports whether it existed.
func (r *FriendGroupRepository) RemoveMember(groupID, userID uint) (int64, error) {
	result := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.FriendGroupMember{})
	return result.RowsAffected, result.Error
}

// RemoveAllMembers clears a group's membership before the group row is
// deleted.
func (r *FriendGroupRepository) RemoveAllMembers(groupID uint) error {
	return r.db.Where("group_id = ?", groupID).
		Delete(&model.FriendGroupMember{}).Error
}
