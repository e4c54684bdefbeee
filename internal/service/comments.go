package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
)

type CreateCommentInput struct {
	PostID      uint
	CreatedByID uint
	Content     string
}

const maxCommentLen = 10000

// ListComments returns a post's comments oldest first.
func (s *ContentService) ListComments(ctx context.Context, postID uint) (comments []models.Comment, err error) {
	ctx, end := begin(ctx, "list_comments")
	defer end(&err)

	return s.store.Comments().FindByPostID(ctx, postID)
}

// ListRecentComments returns the newest comments across all posts.
func (s *ContentService) ListRecentComments(ctx context.Context, limit int) (comments []models.Comment, err error) {
	ctx, end := begin(ctx, "list_recent_comments")
	defer end(&err)

	return s.store.Comments().FindAll(ctx, limit)
}

// CreateComment adds a comment under an existing post and returns it with its author loaded.
func (s *ContentService) CreateComment(ctx context.Context, in CreateCommentInput) (comment *models.Comment, err error) {
	ctx, end := begin(ctx, "create_comment")
	defer end(&err)

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}
	if in.CreatedByID == 0 {
		return nil, models.NewValidationError("Author is required")
	}

	_, found, err := s.store.Posts().FindByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	comment = &models.Comment{PostID: in.PostID, CreatedByID: in.CreatedByID, Content: content}
	if err := s.store.Comments().Create(ctx, comment); err != nil {
		return nil, err
	}

	loaded, found, err := s.store.Comments().FindByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return comment, nil
	}
	return loaded, nil
}

func (s *ContentService) DeleteComment(ctx context.Context, id uint) (err error) {
	ctx, end := begin(ctx, "delete_comment")
	defer end(&err)

	return s.store.Comments().DeleteByID(ctx, id)
}

// DeleteComments removes the listed comments. An empty ids is a no-op.
func (s *ContentService) DeleteComments(ctx context.Context, ids []uint) (err error) {
	if len(ids) == 0 {
		return nil
	}
	ctx, end := begin(ctx, "delete_comments")
	defer end(&err)

	return s.store.Comments().DeleteByIDs(ctx, ids)
}
