package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jerealeksanteri/rounds-api-sub000/internal/mention"
	"github.com/jerealeksanteri/rounds-api-sub000/internal/model"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/apperr"

	"gorm.io/gorm"
)

// CommentService manages session comments and the @-mention flow: mention
// rows mirror the comment's current content and mentioned users get
// notified, but only once per appearance in the comment's life.
type CommentService struct {
	comments CommentStore
	sessions SessionStore
	users    UserDirectory
	notifier *NotificationService
}

// NewCommentService creates a CommentService.
func NewCommentService(comments CommentStore, sessions SessionStore, users UserDirectory, notifier *NotificationService) *CommentService {
	return &CommentService{comments: comments, sessions: sessions, users: users, notifier: notifier}
}

// CreateComment persists a comment, extracts its mentions and notifies every
// mentioned user except the author.
func (s *CommentService) CreateComment(authorID, sessionID uint, content string) (*model.SessionComment, error) {
	if content == "" {
		return nil, apperr.Validation("comment content is required")
	}
	if _, err := s.sessions.GetByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session %d not found", sessionID)
		}
		return nil, err
	}

	comment := &model.SessionComment{
		SessionID: sessionID,
		AuthorID:  authorID,
		Content:   content,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}

	if err := s.refreshMentions(comment, nil); err != nil {
		return nil, err
	}

	return comment, nil
}

// UpdateComment replaces the comment's content. The mention set is rebuilt
// from scratch and only users who were not mentioned before get notified.
func (s *CommentService) UpdateComment(callerID, commentID uint, content string) (*model.SessionComment, error) {
	comment, err := s.getOwnComment(callerID, commentID)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, apperr.Validation("comment content is required")
	}

	// Snapshot who was mentioned before the rewrite.
	oldMentions, err := s.comments.ListMentionsByComment(commentID)
	if err != nil {
		return nil, err
	}
	previouslyMentioned := make(map[uint]bool, len(oldMentions))
	for _, m := range oldMentions {
		previouslyMentioned[m.MentionedUserID] = true
	}

	if err := s.comments.DeleteMentionsByComment(commentID); err != nil {
		return nil, err
	}

	updated := *comment
	updated.Content = content
	if err := s.comments.Update(&updated); err != nil {
		return nil, err
	}

	if err := s.refreshMentions(&updated, previouslyMentioned); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteComment removes the comment and its mention rows. Author only.
func (s *CommentService) DeleteComment(callerID, commentID uint) error {
	if _, err := s.getOwnComment(callerID, commentID); err != nil {
		return err
	}

	if err := s.comments.DeleteMentionsByComment(commentID); err != nil {
		return err
	}
	return s.comments.Delete(commentID)
}

// ListBySession returns a session's comments, oldest first.
func (s *CommentService) ListBySession(sessionID uint) ([]*model.SessionComment, error) {
	if _, err := s.sessions.GetByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session %d not found", sessionID)
		}
		return nil, err
	}
	return s.comments.ListBySession(sessionID)
}

// ListMentions returns the mention rows of a comment.
func (s *CommentService) ListMentions(commentID uint) ([]*model.CommentMention, error) {
	if _, err := s.comments.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment %d not found", commentID)
		}
		return nil, err
	}
	return s.comments.ListMentionsByComment(commentID)
}

// refreshMentions parses the comment's content, stores one mention row per
// resolved hit and notifies the mentioned users. Usernames that resolve to
// no user are dropped silently. Users in alreadyNotified (the pre-edit
// mention set) and the author never get a notification.
func (s *CommentService) refreshMentions(comment *model.SessionComment, alreadyNotified map[uint]bool) error {
	hits := mention.Parse(comment.Content)
	if len(hits) == 0 {
		return nil
	}

	var rows []*model.CommentMention
	var notifyIDs []uint
	notified := make(map[uint]bool, len(hits))
	for _, hit := range hits {
		user, err := s.users.GetByUsername(hit.Username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}

		rows = append(rows, &model.CommentMention{
			CommentID:       comment.ID,
			MentionedUserID: user.ID,
			StartPosition:   hit.Start,
			Length:          hit.Length,
		})

		if user.ID == comment.AuthorID || alreadyNotified[user.ID] || notified[user.ID] {
			continue
		}
		notified[user.ID] = true
		notifyIDs = append(notifyIDs, user.ID)
	}

	if err := s.comments.CreateMentions(rows); err != nil {
		return err
	}

	if len(notifyIDs) == 0 {
		return nil
	}

	author, err := s.users.GetByID(comment.AuthorID)
	if err != nil {
		return err
	}
	metadata, _ := json.Marshal(map[string]interface{}{
		"comment_id": comment.ID,
		"session_id": comment.SessionID,
	})
	for _, userID := range notifyIDs {
		if _, err := s.notifier.CreateAndSend(
			userID,
			model.NotificationMention,
			"You were mentioned",
			fmt.Sprintf("%s mentioned you in a comment", author.Username),
			string(metadata),
		); err != nil {
			return err
		}
	}
	return nil
}

// getOwnComment loads a comment and checks the caller authored it.
func (s *CommentService) getOwnComment(callerID, commentID uint) (*model.SessionComment, error) {
	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment %d not found", commentID)
		}
		return nil, err
	}
	if comment.AuthorID != callerID {
		return nil, apperr.Forbidden("user %d is not the author of comment %d", callerID, commentID)
	}
	return comment, nil
}
