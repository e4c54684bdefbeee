package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// ListPostsInput selects a page of posts. CategorySlug and TagSlug are
// optional filters; Status restricts to one lifecycle state when set.
type ListPostsInput struct {
	CategorySlug string
	TagSlug      string
	Status       models.PostStatus
	PageNumber   int
	PageSize     int
}

type CreatePostInput struct {
	Title            string
	Slug             string
	ShortDescription string
	ContentMarkdown  string
	// ContentHTML is rendered from ContentMarkdown when empty.
	ContentHTML string
	Status      models.PostStatus
	CategoryID  uint
	CreatedByID uint
	Tags        []models.Tag
}

type UpdatePostInput struct {
	ID               uint
	Title            string
	Slug             string
	ShortDescription string
	ContentMarkdown  string
	ContentHTML      string
	Status           models.PostStatus
	CategoryID       uint
}

// ListPosts returns one page of posts, newest first, with tags attached.
// A filter that matches nothing yields the empty page, not an error.
func (s *ContentService) ListPosts(ctx context.Context, in ListPostsInput) (page models.PagedResult[*models.Post], err error) {
	ctx, end := begin(ctx, "list_posts")
	defer end(&err)

	if in.Status != "" && !in.Status.Valid() {
		return page, models.NewValidationError("Invalid status")
	}

	q := repository.PostQuery{
		CategorySlug: strings.TrimSpace(in.CategorySlug),
		TagSlug:      strings.TrimSpace(in.TagSlug),
		Status:       in.Status,
	}
	size := s.normalizePageSize(in.PageSize)

	err = s.store.ReadSnapshot(ctx, func(tx repository.Store) error {
		p, err := tx.Posts().FindPage(ctx, q, in.PageNumber, size)
		if err != nil {
			return err
		}
		if err := attachTags(ctx, tx.Tags(), p.Data...); err != nil {
			return err
		}
		page = p
		return nil
	})
	return page, err
}

func (s *ContentService) GetPostByID(ctx context.Context, id uint) (post *models.Post, err error) {
	ctx, end := begin(ctx, "get_post")
	defer end(&err)

	return s.getPost(ctx, id, func(r repository.PostRepository) (*models.Post, bool, error) {
		return r.FindByID(ctx, id)
	})
}

func (s *ContentService) GetPostBySlug(ctx context.Context, slug string) (post *models.Post, err error) {
	ctx, end := begin(ctx, "get_post")
	defer end(&err)

	return s.getPost(ctx, slug, func(r repository.PostRepository) (*models.Post, bool, error) {
		return r.FindBySlug(ctx, slug)
	})
}

func (s *ContentService) getPost(ctx context.Context, key interface{}, find func(repository.PostRepository) (*models.Post, bool, error)) (*models.Post, error) {
	var post *models.Post
	err := s.store.ReadSnapshot(ctx, func(tx repository.Store) error {
		p, found, err := find(tx.Posts())
		if err != nil {
			return err
		}
		if !found {
			return models.NewNotFoundError("Post", key)
		}
		if err := attachTags(ctx, tx.Tags(), p); err != nil {
			return err
		}
		post = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePost stores a new post and its tag associations atomically.
// The acting user is taken from in.CreatedByID.
func (s *ContentService) CreatePost(ctx context.Context, in CreatePostInput) (post *models.Post, err error) {
	ctx, end := begin(ctx, "create_post")
	defer end(&err)

	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	if err := validatePostFields(in.Title, in.Slug, in.CategoryID, status); err != nil {
		return nil, err
	}
	if in.CreatedByID == 0 {
		return nil, models.NewValidationError("Author is required")
	}
	tags, err := uniqueTags(in.Tags)
	if err != nil {
		return nil, err
	}

	post = &models.Post{
		Title:            strings.TrimSpace(in.Title),
		Slug:             strings.TrimSpace(in.Slug),
		ShortDescription: in.ShortDescription,
		ContentMarkdown:  in.ContentMarkdown,
		ContentHTML:      s.render(in.ContentMarkdown, in.ContentHTML),
		Status:           status,
		CategoryID:       in.CategoryID,
		CreatedByID:      in.CreatedByID,
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Posts().Create(ctx, post); err != nil {
			return err
		}
		return tx.Posts().AddPostTags(ctx, post.ID, tags)
	})
	if err != nil {
		return nil, err
	}
	post.Tags = tags
	return post, nil
}

// UpdatePost replaces the mutable fields of an existing post. The slug is
// fixed at creation; passing a different one is rejected.
func (s *ContentService) UpdatePost(ctx context.Context, in UpdatePostInput) (err error) {
	ctx, end := begin(ctx, "update_post")
	defer end(&err)

	if in.Status == "" {
		in.Status = models.PostStatusDraft
	}
	if err := validatePostFields(in.Title, in.Slug, in.CategoryID, in.Status); err != nil {
		return err
	}

	existing, found, err := s.store.Posts().FindByID(ctx, in.ID)
	if err != nil {
		return err
	}
	if !found {
		return models.NewNotFoundError("Post", in.ID)
	}
	if strings.TrimSpace(in.Slug) != existing.Slug {
		return models.NewValidationError("Slug cannot be changed")
	}

	existing.Title = strings.TrimSpace(in.Title)
	existing.ShortDescription = in.ShortDescription
	existing.ContentMarkdown = in.ContentMarkdown
	existing.ContentHTML = s.render(in.ContentMarkdown, in.ContentHTML)
	existing.Status = in.Status
	existing.CategoryID = in.CategoryID
	return s.store.Posts().Update(ctx, existing)
}

// DeletePosts removes the posts and their comments in one transaction,
// comments first. An empty ids is a no-op.
func (s *ContentService) DeletePosts(ctx context.Context, ids []uint) (err error) {
	if len(ids) == 0 {
		return nil
	}
	ctx, end := begin(ctx, "delete_posts")
	defer end(&err)

	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Comments().DeleteByPostIDs(ctx, ids); err != nil {
			return err
		}
		return tx.Posts().DeleteByIDs(ctx, ids)
	})
}

// CountPosts returns the total number of posts regardless of status.
func (s *ContentService) CountPosts(ctx context.Context) (int64, error) {
	return s.store.Posts().Count(ctx)
}

func validatePostFields(title, slug string, categoryID uint, status models.PostStatus) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(slug) == "" {
		return models.NewValidationError("Slug is required")
	}
	if categoryID == 0 {
		return models.NewValidationError("Category is required")
	}
	if !status.Valid() {
		return models.NewValidationError("Invalid status")
	}
	return nil
}

// uniqueTags drops repeated tags so the association insert never sees the same pair twice.
func uniqueTags(tags []models.Tag) ([]models.Tag, error) {
	out := make([]models.Tag, 0, len(tags))
	seen := make(map[uint]struct{}, len(tags))
	for _, t := range tags {
		if t.ID == 0 {
			return nil, models.NewValidationError("Tags must be saved before they are attached")
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}
