package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mitul77/gatherly/backend/internal/models"
	"github.com/mitul77/gatherly/backend/internal/pagination"
)

// CommentRepository defines the interface for activity comment operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	ListComments(activityID string, page pagination.PageRequest) (pagination.Page[models.CommentDto], error)
	DeleteComment(id, userID string) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a comment on an activity; the activity must exist
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	comment.CreatedAt = time.Now().UTC()

	return r.db.Transaction(func(tx *gorm.DB) error {
		var activity models.Activity
		if err := tx.Select("id").First(&activity, "id = ?", comment.ActivityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Create(comment).Error
	})
}

// ListComments returns one page of an activity's comments joined with
// their authors, oldest first with the comment id tiebreaking equal
// timestamps. A missing activity is NotFound; a bad cursor just restarts
// the walk from the beginning.
func (r *PostgresCommentRepository) ListComments(activityID string, page pagination.PageRequest) (pagination.Page[models.CommentDto], error) {
	var count int64
	if err := r.db.Model(&models.Activity{}).Where("id = ?", activityID).Count(&count).Error; err != nil {
		return pagination.Page[models.CommentDto]{}, err
	}
	if count == 0 {
		return pagination.Page[models.CommentDto]{}, ErrNotFound
	}

	page = page.Normalize()
	q := r.db.Table("comments").
		Select("comments.id, comments.body, comments.user_id, comments.created_at, users.display_name, users.image_url").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.activity_id = ?", activityID).
		Order("comments.created_at ASC, comments.id ASC").
		Limit(page.PageSize + 1)

	if after, afterID, ok := pagination.DecodeTimeCursor(page.Cursor); ok {
		q = q.Where("(comments.created_at > ? OR (comments.created_at = ? AND comments.id > ?))", after, after, afterID)
	}

	var comments []models.CommentDto
	if err := q.Scan(&comments).Error; err != nil {
		return pagination.Page[models.CommentDto]{}, err
	}

	return pagination.Slice(comments, page.PageSize, func(c models.CommentDto) string {
		return pagination.EncodeTimeCursor(c.CreatedAt, c.ID)
	}), nil
}

// DeleteComment deletes a comment; only its author may delete it
func (r *PostgresCommentRepository) DeleteComment(id, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
