// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostQuery narrows a post listing. Zero fields do not filter.
type PostQuery struct {
	CategorySlug string
	TagSlug      string
	Status       models.PostStatus
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	FindPage(ctx context.Context, q PostQuery, pageNumber, pageSize int) (models.PagedResult[*models.Post], error)
	FindByID(ctx context.Context, id uint) (*models.Post, bool, error)
	FindBySlug(ctx context.Context, slug string) (*models.Post, bool, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	AddPostTags(ctx context.Context, postID uint, tags []models.Tag) error
	DeleteByIDs(ctx context.Context, ids []uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) applyFilter(tx *gorm.DB, q PostQuery) *gorm.DB {
	if q.CategorySlug != "" {
		tx = tx.Where("posts.category_id IN (?)",
			r.db.Session(&gorm.Session{NewDB: true}).
				Model(&models.Category{}).
				Select("id").
				Where("slug = ?", q.CategorySlug))
	}
	if q.TagSlug != "" {
		tx = tx.Where("posts.id IN (?)",
			r.db.Session(&gorm.Session{NewDB: true}).
				Table("post_tags").
				Select("post_tags.post_id").
				Joins("JOIN tags ON tags.id = post_tags.tag_id").
				Where("tags.slug = ?", q.TagSlug))
	}
	if q.Status != "" {
		tx = tx.Where("posts.status = ?", q.Status)
	}
	return tx
}

// withDisplay joins the category and creator rows shown alongside a post.
func withDisplay(tx *gorm.DB) *gorm.DB {
	return tx.Joins("Category").Joins("CreatedBy")
}

// FindPage counts the matching posts and, if there are any, loads one page of
// them newest first. Page numbers are 1-based; anything below 1 reads page 1.
func (r *postRepository) FindPage(ctx context.Context, q PostQuery, pageNumber, pageSize int) (models.PagedResult[*models.Post], error) {
	defer observability.TrackQuery("find_page", "posts")()

	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), q).Count(&total).Error; err != nil {
		return models.PagedResult[*models.Post]{}, err
	}
	if total == 0 {
		return models.EmptyPage[*models.Post](), nil
	}

	offset := (pageNumber - 1) * pageSize
	var posts []*models.Post
	err := r.applyFilter(withDisplay(r.db.WithContext(ctx)), q).
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return models.PagedResult[*models.Post]{}, err
	}

	return models.NewPagedResult(posts, pageNumber, pageSize, total), nil
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*models.Post, bool, error) {
	defer observability.TrackQuery("find_by_id", "posts")()
	return findOne[models.Post](withDisplay(r.db.WithContext(ctx)).Where("posts.id = ?", id))
}

func (r *postRepository) FindBySlug(ctx context.Context, slug string) (*models.Post, bool, error) {
	defer observability.TrackQuery("find_by_slug", "posts")()
	return findOne[models.Post](withDisplay(r.db.WithContext(ctx)).Where("posts.slug = ?", slug))
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	defer observability.TrackQuery("count", "posts")()
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&total).Error
	return total, err
}

// Create inserts the post row only; the category and creator must already exist.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

// Update overwrites the mutable columns of the post with post.ID.
// The creator and creation time are never touched.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("update", "posts")()
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"title":             post.Title,
			"slug":              post.Slug,
			"short_description": post.ShortDescription,
			"content_markdown":  post.ContentMarkdown,
			"content_html":      post.ContentHTML,
			"status":            post.Status,
			"category_id":       post.CategoryID,
		}).Error
}

// AddPostTags inserts one association row per tag in a single statement.
// It is not idempotent: an existing (post, tag) pair fails the insert.
func (r *postRepository) AddPostTags(ctx context.Context, postID uint, tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	defer observability.TrackQuery("add_tags", "post_tags")()

	rows := make([]models.PostTag, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, models.PostTag{PostID: postID, TagID: tag.ID})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// DeleteByIDs removes the posts and their tag associations. Comments are
// not touched. An empty ids is a no-op.
func (r *postRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	defer observability.TrackQuery("delete", "posts")()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id IN ?", ids).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Post{}).Error
	})
}
