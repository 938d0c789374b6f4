package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jerealeksanteri/rounds-api-sub000/internal/model"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/apperr"

	"gorm.io/gorm"
)

// FriendshipService runs the friendship lifecycle. An edge is directed
// (requester -> target); acceptance adds the mirrored accepted edge so both
// directions exist afterwards.
type FriendshipService struct {
	friendships FriendshipStore
	users       UserDirectory
	notifier    *NotificationService
}

// NewFriendshipService creates a FriendshipService.
func NewFriendshipService(friendships FriendshipStore, users UserDirectory, notifier *NotificationService) *FriendshipService {
	return &FriendshipService{friendships: friendships, users: users, notifier: notifier}
}

// FriendRequest pairs a pending edge with the other user on it.
type FriendRequest struct {
	Friendship *model.Friendship
	User       *model.User
}

// SendRequest creates a pending edge requester -> target and notifies the
// target. Any non-rejected edge between the pair, in either direction,
// blocks a new request.
func (s *FriendshipService) SendRequest(requesterID, targetID uint) (*model.Friendship, error) {
	if requesterID == targetID {
		return nil, apperr.Validation("cannot send a friend request to yourself")
	}

	requester, err := s.users.GetByID(requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %d not found", requesterID)
		}
		return nil, err
	}
	if _, err := s.users.GetByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %d not found", targetID)
		}
		return nil, err
	}

	existing, err := s.friendships.GetLiveBetween(requesterID, targetID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("a friendship between users %d and %d already exists", requesterID, targetID)
	}

	edge := &model.Friendship{
		UserID:      requesterID,
		FriendID:    targetID,
		Status:      model.FriendshipPending,
		CreatedByID: requesterID,
	}
	if err := s.friendships.Create(edge); err != nil {
		return nil, err
	}

	metadata, _ := json.Marshal(map[string]interface{}{
		"friendship_id": edge.ID,
		"requester_id":  requesterID,
	})
	if _, err := s.notifier.CreateAndSend(
		targetID,
		model.NotificationFriendRequest,
		"New friend request",
		fmt.Sprintf("%s wants to be your friend", requester.Username),
		string(metadata),
	); err != nil {
		return nil, err
	}

	return edge, nil
}

// Respond transitions a pending edge. Only the edge's recipient may do it;
// anyone else gets Forbidden. Acceptance always inserts a fresh mirrored
// accepted edge without checking for one first.
func (s *FriendshipService) Respond(callerID, friendshipID uint, accept bool) (*model.Friendship, error) {
	edge, err := s.friendships.GetByID(friendshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("friendship %d not found", friendshipID)
		}
		return nil, err
	}

	if edge.FriendID != callerID {
		return nil, apperr.Forbidden("only the request recipient may respond to friendship %d", friendshipID)
	}
	if edge.Status != model.FriendshipPending {
		return nil, apperr.Conflict("friendship %d is already %s", friendshipID, edge.Status)
	}

	newStatus := model.FriendshipRejected
	if accept {
		newStatus = model.FriendshipAccepted
	}
	if err := s.friendships.UpdateStatus(edge.ID, newStatus); err != nil {
		return nil, err
	}

	updated := *edge
	updated.Status = newStatus

	if !accept {
		return &updated, nil
	}

	mirror := &model.Friendship{
		UserID:      edge.FriendID,
		FriendID:    edge.UserID,
		Status:      model.FriendshipAccepted,
		CreatedByID: callerID,
	}
	if err := s.friendships.Create(mirror); err != nil {
		return nil, err
	}

	recipient, err := s.users.GetByID(callerID)
	if err != nil {
		return nil, err
	}
	metadata, _ := json.Marshal(map[string]interface{}{
		"friendship_id": edge.ID,
		"friend_id":     callerID,
	})
	if _, err := s.notifier.CreateAndSend(
		edge.UserID,
		model.NotificationFriendAccepted,
		"Friend request accepted",
		fmt.Sprintf("%s accepted your friend request", recipient.Username),
		string(metadata),
	); err != nil {
		return nil, err
	}

	return &updated, nil
}

// Remove deletes the edge between the caller and the other user, then makes
// a best-effort attempt on the mirrored edge. A missing mirror is not an
// error.
func (s *FriendshipService) Remove(callerID, otherUserID uint) error {
	edge, err := s.friendships.GetAnyBetween(callerID, otherUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("no friendship between users %d and %d", callerID, otherUserID)
		}
		return err
	}

	if edge.UserID != callerID && edge.FriendID != callerID {
		return apperr.Forbidden("user %d is not part of friendship %d", callerID, edge.ID)
	}

	if err := s.friendships.Delete(edge.ID); err != nil {
		return err
	}

	// Mirrored edge cleanup is best-effort.
	_, _ = s.friendships.DeleteByPair(edge.FriendID, edge.UserID)

	return nil
}

// Friends returns the users holding an accepted friendship with userID.
func (s *FriendshipService) Friends(userID uint) ([]*model.User, error) {
	edges, err := s.friendships.ListAcceptedByUser(userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(edges))
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		other := e.UserID
		if e.UserID == userID {
			other = e.FriendID
		}
		if !seen[other] {
			seen[other] = true
			ids = append(ids, other)
		}
	}

	return s.users.GetByIDs(ids)
}

// PendingRequests returns incoming pending requests with their senders.
func (s *FriendshipService) PendingRequests(userID uint) ([]*FriendRequest, error) {
	edges, err := s.friendships.ListPendingTo(userID)
	if err != nil {
		return nil, err
	}
	return s.attachUsers(edges, func(e *model.Friendship) uint { return e.UserID })
}

// SentRequests returns outgoing pending requests with their targets.
func (s *FriendshipService) SentRequests(userID uint) ([]*FriendRequest, error) {
	edges, err := s.friendships.ListPendingFrom(userID)
	if err != nil {
		return nil, err
	}
	return s.attachUsers(edges, func(e *model.Friendship) uint { return e.FriendID })
}

func (s *FriendshipService) attachUsers(edges []*model.Friendship, pick func(*model.Friendship) uint) ([]*FriendRequest, error) {
	requests := make([]*FriendRequest, 0, len(edges))
	for _, e := range edges {
		user, err := s.users.GetByID(pick(e))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		requests = append(requests, &FriendRequest{Friendship: e, User: user})
	}
	return requests, nil
}
