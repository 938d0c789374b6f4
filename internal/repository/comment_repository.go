package repository

import (
	"github.com/jerealeksanteri/rounds-api-sub000/internal/model"

	"gorm.io/gorm"
)

// CommentRepository persists session comments and their mention rows.
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *model.SessionComment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepository) GetByID(id uint) (*model.SessionComment, error) {
	var c model.SessionComment
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) Update(comment *model.SessionComment) error {
	return r.db.Save(comment).Error
}

func (r *CommentRepository) Delete(id uint) error {
	return r.db.Delete(&model.SessionComment{}, id).Error
}

func (r *CommentRepository) ListBySession(sessionID uint) ([]*model.SessionComment, error) {
	var comments []*model.SessionComment
	err := r.db.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// CreateMentions bulk-inserts mention rows for one comment.
func (r *CommentRepository) CreateMentions(mentions []*model.CommentMention) error {
	if len(mentions) == 0 {
		return nil
	}
	return r.db.Create(mentions).Error
}

func (r *CommentRepository) ListMentionsByComment(commentID uint) ([]*model.CommentMention, error) {
	var mentions []*model.CommentMention
	err := r.db.Where("comment_id = ?", commentID).
		Order("start_position ASC").
		Find(&mentions).Error
	return mentions, err
}

// DeleteMentionsByComment clears the full mention set for a comment, done
// before a recreate on edit and before the comment row itself is deleted.
func (r *CommentRepository) DeleteMentionsByComment(commentID uint) error {
	return r.db.Where("comment_id = ?", commentID).
		Delete(&model.CommentMention{}).Error
}
