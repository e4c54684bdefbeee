package repository

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id uint) (*models.Comment, bool, error)
	FindByPostID(ctx context.Context, postID uint) ([]models.Comment, error)
	FindAll(ctx context.Context, limit int) ([]models.Comment, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteByIDs(ctx context.Context, ids []uint) error
	DeleteByPostIDs(ctx context.Context, postIDs []uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	defer observability.TrackQuery("create", "comments")()
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uint) (*models.Comment, bool, error) {
	defer observability.TrackQuery("find_by_id", "comments")()
	return findOne[models.Comment](r.db.WithContext(ctx).Joins("CreatedBy").Where("comments.id = ?", id))
}

// FindByPostID returns the post's comments oldest first, the order they are read in a thread.
func (r *commentRepository) FindByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	defer observability.TrackQuery("find_by_post_id", "comments")()
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Joins("CreatedBy").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC").
		Order("comments.id ASC").
		Find(&comments).Error
	return comments, err
}

// FindAll returns the most recent comments across all posts, newest first.
// A limit of zero or less returns every comment.
func (r *commentRepository) FindAll(ctx context.Context, limit int) ([]models.Comment, error) {
	defer observability.TrackQuery("find_all", "comments")()
	comments := []models.Comment{}
	q := r.db.WithContext(ctx).
		Joins("CreatedBy").
		Order("comments.created_at DESC").
		Order("comments.id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&comments).Error
	return comments, err
}

func (r *commentRepository) DeleteByID(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "comments")()
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}

func (r *commentRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	defer observability.TrackQuery("delete", "comments")()
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Comment{}).Error
}

func (r *commentRepository) DeleteByPostIDs(ctx context.Context, postIDs []uint) error {
	if len(postIDs) == 0 {
		return nil
	}
	defer observability.TrackQuery("delete_by_post_ids", "comments")()
	return r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error
}
