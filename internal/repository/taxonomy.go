package repository

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/slug"

	"gorm.io/gorm"
)

// labelRegistry holds the get-or-create and CRUD logic shared by categories and tags.
// Both are (id, name, unique slug) rows.
type labelRegistry[T any] struct {
	db       *gorm.DB
	table    string
	newLabel func(name, slug string) *T
}

func (r *labelRegistry[T]) GetOrCreateByName(ctx context.Context, name string) (*T, error) {
	defer observability.TrackQuery("get_or_create", r.table)()
	s := slug.Make(name)
	return getOrCreate(ctx, r.table, s,
		func() (*T, bool, error) { return r.FindBySlug(ctx, s) },
		func() (*T, error) {
			label := r.newLabel(name, s)
			if err := r.db.WithContext(ctx).Create(label).Error; err != nil {
				return nil, err
			}
			return label, nil
		},
	)
}

func (r *labelRegistry[T]) Create(ctx context.Context, label *T) error {
	defer observability.TrackQuery("create", r.table)()
	return r.db.WithContext(ctx).Create(label).Error
}

func (r *labelRegistry[T]) Update(ctx context.Context, label *T) error {
	defer observability.TrackQuery("update", r.table)()
	return r.db.WithContext(ctx).Model(label).Select("name", "slug").Updates(label).Error
}

func (r *labelRegistry[T]) FindAll(ctx context.Context) ([]T, error) {
	defer observability.TrackQuery("find_all", r.table)()
	var labels []T
	err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&labels).Error
	return labels, err
}

func (r *labelRegistry[T]) FindByID(ctx context.Context, id uint) (*T, bool, error) {
	defer observability.TrackQuery("find_by_id", r.table)()
	return findOne[T](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *labelRegistry[T]) FindBySlug(ctx context.Context, s string) (*T, bool, error) {
	defer observability.TrackQuery("find_by_slug", r.table)()
	return findOne[T](r.db.WithContext(ctx).Where("slug = ?", s))
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	GetOrCreateByName(ctx context.Context, name string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	DeleteByID(ctx context.Context, id uint) error
	FindAll(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uint) (*models.Category, bool, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, bool, error)
}

type categoryRepository struct {
	labelRegistry[models.Category]
}

// NewCategoryRepository returns a CategoryRepository backed by db.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{labelRegistry[models.Category]{
		db:    db,
		table: "categories",
		newLabel: func(name, s string) *models.Category {
			return &models.Category{Name: name, Slug: s}
		},
	}}
}

// DeleteByID removes the category. Posts still referencing it make the
// database reject the delete, and that error is returned as is.
func (r *categoryRepository) DeleteByID(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", r.table)()
	return r.db.WithContext(ctx).Delete(&models.Category{}, id).Error
}

// TagRepository defines persistence operations for tags, including the
// batched lookup that attaches tags to a set of posts.
type TagRepository interface {
	GetOrCreateByName(ctx context.Context, name string) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) error
	DeleteByID(ctx context.Context, id uint) error
	FindAll(ctx context.Context) ([]models.Tag, error)
	FindByID(ctx context.Context, id uint) (*models.Tag, bool, error)
	FindBySlug(ctx context.Context, slug string) (*models.Tag, bool, error)
	FindTagsByPostIDs(ctx context.Context, postIDs []uint) (map[uint][]models.Tag, error)
}

type tagRepository struct {
	labelRegistry[models.Tag]
}

// NewTagRepository returns a TagRepository backed by db.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{labelRegistry[models.Tag]{
		db:    db,
		table: "tags",
		newLabel: func(name, s string) *models.Tag {
			return &models.Tag{Name: name, Slug: s}
		},
	}}
}

// DeleteByID removes the tag and detaches it from every post.
func (r *tagRepository) DeleteByID(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", r.table)()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, id).Error
	})
}

type postTagRow struct {
	PostID uint
	ID     uint
	Name   string
	Slug   string
}

// FindTagsByPostIDs loads the tags of every listed post in one query.
// Posts without tags have no entry in the result.
func (r *tagRepository) FindTagsByPostIDs(ctx context.Context, postIDs []uint) (map[uint][]models.Tag, error) {
	result := make(map[uint][]models.Tag)
	if len(postIDs) == 0 {
		return result, nil
	}
	defer observability.TrackQuery("find_by_post_ids", "post_tags")()

	var rows []postTagRow
	err := r.db.WithContext(ctx).
		Table("post_tags").
		Select("post_tags.post_id, tags.id, tags.name, tags.slug").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Where("post_tags.post_id IN ?", postIDs).
		Order("tags.name ASC").
		Order("tags.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]map[uint]struct{})
	for _, row := range rows {
		if seen[row.PostID] == nil {
			seen[row.PostID] = make(map[uint]struct{})
		}
		if _, dup := seen[row.PostID][row.ID]; dup {
			continue
		}
		seen[row.PostID][row.ID] = struct{}{}
		result[row.PostID] = append(result[row.PostID], models.Tag{ID: row.ID, Name: row.Name, Slug: row.Slug})
	}
	return result, nil
}
