package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jerealeksanteri/rounds-api-sub000/internal/model"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/apperr"

	"gorm.io/gorm"
)

// FriendGroupService manages owner-curated friend groups and the bulk
// session-invite fan-out over their members.
type FriendGroupService struct {
	groups      FriendGroupStore
	friendships FriendshipStore
	sessions    SessionStore
	users       UserDirectory
	notifier    *NotificationService
}

// NewFriendGroupService creates a FriendGroupService.
func NewFriendGroupService(groups FriendGroupStore, friendships FriendshipStore, sessions SessionStore, users UserDirectory, notifier *NotificationService) *FriendGroupService {
	return &FriendGroupService{
		groups:      groups,
		friendships: friendships,
		sessions:    sessions,
		users:       users,
		notifier:    notifier,
	}
}

// GroupDetail is a group with its resolved member users.
type GroupDetail struct {
	Group   *model.FriendGroup
	Members []*model.User
}

// BulkInviteResult reports the outcome of a group fan-out.
type BulkInviteResult struct {
	GroupName      string
	SessionName    string
	InvitesCreated int
}

// FilterNonFriends returns the candidates that do NOT hold an accepted
// friendship with ownerID, in input order. Empty result means every
// candidate is a valid member.
func (s *FriendGroupService) FilterNonFriends(ownerID uint, candidateIDs []uint) ([]uint, error) {
	friendIDs, err := s.friendships.AcceptedFriendIDs(ownerID, candidateIDs)
	if err != nil {
		return nil, err
	}

	friends := make(map[uint]bool, len(friendIDs))
	for _, id := range friendIDs {
		friends[id] = true
	}

	var nonFriends []uint
	for _, id := range candidateIDs {
		if !friends[id] {
			nonFriends = append(nonFriends, id)
		}
	}
	return nonFriends, nil
}

// CreateGroup creates a group, validating every initial member against the
// owner's friend graph first.
func (s *FriendGroupService) CreateGroup(ownerID uint, name, description string, initialMemberIDs []uint) (*model.FriendGroup, error) {
	if name == "" {
		return nil, apperr.Validation("group name is required")
	}

	memberIDs := dedupeIDs(initialMemberIDs)
	nonFriends, err := s.FilterNonFriends(ownerID, memberIDs)
	if err != nil {
		return nil, err
	}
	if len(nonFriends) > 0 {
		return nil, apperr.Validation("users %v are not friends of the group owner", nonFriends)
	}

	group := &model.FriendGroup{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}
	if err := s.groups.Create(group); err != nil {
		return nil, err
	}

	if len(memberIDs) > 0 {
		members := make([]*model.FriendGroupMember, len(memberIDs))
		for i, id := range memberIDs {
			members[i] = &model.FriendGroupMember{
				GroupID:   group.ID,
				UserID:    id,
				AddedByID: ownerID,
			}
		}
		if err := s.groups.AddMembers(members); err != nil {
			return nil, err
		}
	}

	return group, nil
}

// AddMembers adds candidates to a group. Non-friends fail validation; if
// every candidate is already a member the call fails with Conflict instead
// of silently succeeding. Otherwise only the non-member subset is inserted.
func (s *FriendGroupService) AddMembers(callerID, groupID uint, memberIDs []uint) ([]uint, error) {
	group, err := s.getOwnedGroup(callerID, groupID)
	if err != nil {
		return nil, err
	}

	memberIDs = dedupeIDs(memberIDs)
	if len(memberIDs) == 0 {
		return nil, apperr.Validation("no users to add")
	}

	nonFriends, err := s.FilterNonFriends(group.OwnerID, memberIDs)
	if err != nil {
		return nil, err
	}
	if len(nonFriends) > 0 {
		return nil, apperr.Validation("users %v are not friends of the group owner", nonFriends)
	}

	existingIDs, err := s.groups.MemberUserIDs(groupID)
	if err != nil {
		return nil, err
	}
	existing := make(map[uint]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	var newIDs []uint
	for _, id := range memberIDs {
		if !existing[id] {
			newIDs = append(newIDs, id)
		}
	}
	if len(newIDs) == 0 {
		return nil, apperr.Conflict("all candidates are already members of group %d", groupID)
	}

	members := make([]*model.FriendGroupMember, len(newIDs))
	for i, id := range newIDs {
		members[i] = &model.FriendGroupMember{
			GroupID:   groupID,
			UserID:    id,
			AddedByID: callerID,
		}
	}
	if err := s.groups.AddMembers(members); err != nil {
		return nil, err
	}

	return newIDs, nil
}

// RemoveMember removes one user from a group.
func (s *FriendGroupService) RemoveMember(callerID, groupID, userID uint) error {
	if _, err := s.getOwnedGroup(callerID, groupID); err != nil {
		return err
	}

	removed, err := s.groups.RemoveMember(groupID, userID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return apperr.NotFound("user %d is not a member of group %d", userID, groupID)
	}
	return nil
}

// UpdateGroup renames a group or changes its description.
func (s *FriendGroupService) UpdateGroup(callerID, groupID uint, name, description string) (*model.FriendGroup, error) {
	group, err := s.getOwnedGroup(callerID, groupID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperr.Validation("group name is required")
	}

	updated := *group
	updated.Name = name
	updated.Description = description
	if err := s.groups.Update(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteGroup removes the group and all its membership rows.
func (s *FriendGroupService) DeleteGroup(callerID, groupID uint) error {
	if _, err := s.getOwnedGroup(callerID, groupID); err != nil {
		return err
	}

	// Membership rows first, then the group row.
	if err := s.groups.RemoveAllMembers(groupID); err != nil {
		return err
	}
	return s.groups.Delete(groupID)
}

// GetGroup returns a group with its resolved members. Owner only.
func (s *FriendGroupService) GetGroup(callerID, groupID uint) (*GroupDetail, error) {
	group, err := s.getOwnedGroup(callerID, groupID)
	if err != nil {
		return nil, err
	}

	memberIDs, err := s.groups.MemberUserIDs(groupID)
	if err != nil {
		return nil, err
	}
	members, err := s.users.GetByIDs(memberIDs)
	if err != nil {
		return nil, err
	}

	return &GroupDetail{Group: group, Members: members}, nil
}

// ListGroups returns the groups the user owns.
func (s *FriendGroupService) ListGroups(ownerID uint) ([]*model.FriendGroup, error) {
	return s.groups.ListByOwner(ownerID)
}

// BulkInvite invites every member of the group to a session, one invite and
// one notification per member in membership order. There is no rollback
// across members: a failure partway leaves the earlier members invited and
// notified, and the result only reports the final count.
func (s *FriendGroupService) BulkInvite(callerID, groupID, sessionID uint) (*BulkInviteResult, error) {
	group, err := s.getOwnedGroup(callerID, groupID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session %d not found", sessionID)
		}
		return nil, err
	}

	memberIDs, err := s.groups.MemberUserIDs(groupID)
	if err != nil {
		return nil, err
	}

	created := 0
	for _, memberID := range memberIDs {
		invite := &model.SessionInvite{
			SessionID:   sessionID,
			UserID:      memberID,
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
			memberID,
			model.NotificationSessionInvite,
			"Session invite",
			fmt.Sprintf("You have been invited to %s", session.Name),
			string(metadata),
		); err != nil {
			return nil, err
		}
		created++
	}

	return &BulkInviteResult{
		GroupName:      group.Name,
		SessionName:    session.Name,
		InvitesCreated: created,
	}, nil
}

// getOwnedGroup loads a group and checks the caller owns it.
func (s *FriendGroupService) getOwnedGroup(callerID, groupID uint) (*model.FriendGroup, error) {
	group, err := s.groups.GetByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("group %d not found", groupID)
		}
		return nil, err
	}
	if group.OwnerID != callerID {
		return nil, apperr.Forbidden("user %d does not own group %d", callerID, groupID)
	}
	return group, nil
}

// dedupeIDs drops duplicate ids while preserving input order.
func dedupeIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
