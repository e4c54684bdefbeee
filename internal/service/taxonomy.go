package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/slug"
)

// labelName trims name and checks that it yields a non-empty slug.
func labelName(kind, name string) (string, string, error) {
	name = strings.TrimSpace(name)
	s := slug.Make(name)
	if s == "" {
		return "", "", models.NewValidationError(kind + " name must contain letters or digits")
	}
	return name, s, nil
}

// GetOrCreateCategory returns the category whose slug matches name, creating it if needed.
// An existing category keeps its original display name.
func (s *ContentService) GetOrCreateCategory(ctx context.Context, name string) (category *models.Category, err error) {
	ctx, end := begin(ctx, "get_or_create_category")
	defer end(&err)

	name, _, err = labelName("Category", name)
	if err != nil {
		return nil, err
	}
	return s.store.Categories().GetOrCreateByName(ctx, name)
}

func (s *ContentService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.Categories().FindAll(ctx)
}

func (s *ContentService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, found, err := s.store.Categories().FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFoundError("Category", slug)
	}
	return category, nil
}

// UpdateCategory renames a category; its slug follows the new name.
func (s *ContentService) UpdateCategory(ctx context.Context, id uint, name string) (category *models.Category, err error) {
	ctx, end := begin(ctx, "update_category")
	defer end(&err)

	name, newSlug, err := labelName("Category", name)
	if err != nil {
		return nil, err
	}
	category, found, err := s.store.Categories().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFoundError("Category", id)
	}
	category.Name, category.Slug = name, newSlug
	if err := s.store.Categories().Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *ContentService) DeleteCategory(ctx context.Context, id uint) (err error) {
	ctx, end := begin(ctx, "delete_category")
	defer end(&err)

	return s.store.Categories().DeleteByID(ctx, id)
}

// GetOrCreateTag returns the tag whose slug matches name, creating it if needed.
func (s *ContentService) GetOrCreateTag(ctx context.Context, name string) (tag *models.Tag, err error) {
	ctx, end := begin(ctx, "get_or_create_tag")
	defer end(&err)

	name, _, err = labelName("Tag", name)
	if err != nil {
		return nil, err
	}
	return s.store.Tags().GetOrCreateByName(ctx, name)
}

func (s *ContentService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.store.Tags().FindAll(ctx)
}

func (s *ContentService) GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	tag, found, err := s.store.Tags().FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFoundError("Tag", slug)
	}
	return tag, nil
}

func (s *ContentService) UpdateTag(ctx context.Context, id uint, name string) (tag *models.Tag, err error) {
	ctx, end := begin(ctx, "update_tag")
	defer end(&err)

	name, newSlug, err := labelName("Tag", name)
	if err != nil {
		return nil, err
	}
	tag, found, err := s.store.Tags().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFoundError("Tag", id)
	}
	tag.Name, tag.Slug = name, newSlug
	if err := s.store.Tags().Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes the tag and detaches it from every post.
func (s *ContentService) DeleteTag(ctx context.Context, id uint) (err error) {
	ctx, end := begin(ctx, "delete_tag")
	defer end(&err)

	return s.store.Tags().DeleteByID(ctx, id)
}
