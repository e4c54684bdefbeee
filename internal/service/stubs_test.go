package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/require"
)

type postRepoStub struct {
	findPageFn    func(ctx context.Context, q repository.PostQuery, page, size int) (models.PagedResult[*models.Post], error)
	findByIDFn    func(ctx context.Context, id uint) (*models.Post, bool, error)
	findBySlugFn  func(ctx context.Context, slug string) (*models.Post, bool, error)
	countFn       func(ctx context.Context) (int64, error)
	createFn      func(ctx context.Context, post *models.Post) error
	updateFn      func(ctx context.Context, post *models.Post) error
	addPostTagsFn func(ctx context.Context, postID uint, tags []models.Tag) error
	deleteByIDsFn func(ctx context.Context, ids []uint) error
}

func (s postRepoStub) FindPage(ctx context.Context, q repository.PostQuery, page, size int) (models.PagedResult[*models.Post], error) {
	return s.findPageFn(ctx, q, page, size)
}

func (s postRepoStub) FindByID(ctx context.Context, id uint) (*models.Post, bool, error) {
	return s.findByIDFn(ctx, id)
}

func (s postRepoStub) FindBySlug(ctx context.Context, slug string) (*models.Post, bool, error) {
	return s.findBySlugFn(ctx, slug)
}

func (s postRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func (s postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}

func (s postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}

func (s postRepoStub) AddPostTags(ctx context.Context, postID uint, tags []models.Tag) error {
	return s.addPostTagsFn(ctx, postID, tags)
}

func (s postRepoStub) DeleteByIDs(ctx context.Context, ids []uint) error {
	return s.deleteByIDsFn(ctx, ids)
}

func noopPostRepo() postRepoStub {
	return postRepoStub{
		findPageFn: func(context.Context, repository.PostQuery, int, int) (models.PagedResult[*models.Post], error) {
			return models.EmptyPage[*models.Post](), nil
		},
		findByIDFn:    func(context.Context, uint) (*models.Post, bool, error) { return nil, false, nil },
		findBySlugFn:  func(context.Context, string) (*models.Post, bool, error) { return nil, false, nil },
		countFn:       func(context.Context) (int64, error) { return 0, nil },
		createFn:      func(context.Context, *models.Post) error { return nil },
		updateFn:      func(context.Context, *models.Post) error { return nil },
		addPostTagsFn: func(context.Context, uint, []models.Tag) error { return nil },
		deleteByIDsFn: func(context.Context, []uint) error { return nil },
	}
}

type commentRepoStub struct {
	createFn          func(ctx context.Context, comment *models.Comment) error
	findByIDFn        func(ctx context.Context, id uint) (*models.Comment, bool, error)
	findByPostIDFn    func(ctx context.Context, postID uint) ([]models.Comment, error)
	findAllFn         func(ctx context.Context, limit int) ([]models.Comment, error)
	deleteByIDFn      func(ctx context.Context, id uint) error
	deleteByIDsFn     func(ctx context.Context, ids []uint) error
	deleteByPostIDsFn func(ctx context.Context, postIDs []uint) error
}

func (s commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}

func (s commentRepoStub) FindByID(ctx context.Context, id uint) (*models.Comment, bool, error) {
	return s.findByIDFn(ctx, id)
}

func (s commentRepoStub) FindByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.findByPostIDFn(ctx, postID)
}

func (s commentRepoStub) FindAll(ctx context.Context, limit int) ([]models.Comment, error) {
	return s.findAllFn(ctx, limit)
}

func (s commentRepoStub) DeleteByID(ctx context.Context, id uint) error {
	return s.deleteByIDFn(ctx, id)
}

func (s commentRepoStub) DeleteByIDs(ctx context.Context, ids []uint) error {
	return s.deleteByIDsFn(ctx, ids)
}

func (s commentRepoStub) DeleteByPostIDs(ctx context.Context, postIDs []uint) error {
	return s.deleteByPostIDsFn(ctx, postIDs)
}

func noopCommentRepo() commentRepoStub {
	return commentRepoStub{
		createFn:          func(context.Context, *models.Comment) error { return nil },
		findByIDFn:        func(context.Context, uint) (*models.Comment, bool, error) { return nil, false, nil },
		findByPostIDFn:    func(context.Context, uint) ([]models.Comment, error) { return []models.Comment{}, nil },
		findAllFn:         func(context.Context, int) ([]models.Comment, error) { return []models.Comment{}, nil },
		deleteByIDFn:      func(context.Context, uint) error { return nil },
		deleteByIDsFn:     func(context.Context, []uint) error { return nil },
		deleteByPostIDsFn: func(context.Context, []uint) error { return nil },
	}
}

// labelRepoStub serves both the category and tag registries.
type labelRepoStub[T any] struct {
	getOrCreateFn func(ctx context.Context, name string) (*T, error)
	createFn      func(ctx context.Context, label *T) error
	updateFn      func(ctx context.Context, label *T) error
	deleteByIDFn  func(ctx context.Context, id uint) error
	findAllFn     func(ctx context.Context) ([]T, error)
	findByIDFn    func(ctx context.Context, id uint) (*T, bool, error)
	findBySlugFn  func(ctx context.Context, slug string) (*T, bool, error)
}

func (s labelRepoStub[T]) GetOrCreateByName(ctx context.Context, name string) (*T, error) {
	return s.getOrCreateFn(ctx, name)
}

func (s labelRepoStub[T]) Create(ctx context.Context, label *T) error {
	return s.createFn(ctx, label)
}

func (s labelRepoStub[T]) Update(ctx context.Context, label *T) error {
	return s.updateFn(ctx, label)
}

func (s labelRepoStub[T]) DeleteByID(ctx context.Context, id uint) error {
	return s.deleteByIDFn(ctx, id)
}

func (s labelRepoStub[T]) FindAll(ctx context.Context) ([]T, error) {
	return s.findAllFn(ctx)
}

func (s labelRepoStub[T]) FindByID(ctx context.Context, id uint) (*T, bool, error) {
	return s.findByIDFn(ctx, id)
}

func (s labelRepoStub[T]) FindBySlug(ctx context.Context, slug string) (*T, bool, error) {
	return s.findBySlugFn(ctx, slug)
}

func noopLabelRepo[T any]() labelRepoStub[T] {
	return labelRepoStub[T]{
		getOrCreateFn: func(context.Context, string) (*T, error) { return new(T), nil },
		createFn:      func(context.Context, *T) error { return nil },
		updateFn:      func(context.Context, *T) error { return nil },
		deleteByIDFn:  func(context.Context, uint) error { return nil },
		findAllFn:     func(context.Context) ([]T, error) { return []T{}, nil },
		findByIDFn:    func(context.Context, uint) (*T, bool, error) { return nil, false, nil },
		findBySlugFn:  func(context.Context, string) (*T, bool, error) { return nil, false, nil },
	}
}

type tagRepoStub struct {
	labelRepoStub[models.Tag]
	findTagsByPostIDsFn func(ctx context.Context, postIDs []uint) (map[uint][]models.Tag, error)
}

func (s tagRepoStub) FindTagsByPostIDs(ctx context.Context, postIDs []uint) (map[uint][]models.Tag, error) {
	return s.findTagsByPostIDsFn(ctx, postIDs)
}

func noopTagRepo() tagRepoStub {
	return tagRepoStub{
		labelRepoStub: noopLabelRepo[models.Tag](),
		findTagsByPostIDsFn: func(context.Context, []uint) (map[uint][]models.Tag, error) {
			return map[uint][]models.Tag{}, nil
		},
	}
}

type userRepoStub struct{}

func (userRepoStub) FindByID(context.Context, uint) (*models.User, bool, error) {
	return nil, false, nil
}

func (userRepoStub) FindByEmail(context.Context, string) (*models.User, bool, error) {
	return nil, false, nil
}

func (userRepoStub) Create(context.Context, *models.User) error { return nil }

// storeStub runs transactional callbacks against itself and counts how often
// each boundary was opened.
type storeStub struct {
	posts      repository.PostRepository
	comments   repository.CommentRepository
	categories repository.CategoryRepository
	tags       repository.TagRepository

	transactions int
	snapshots    int
}

func newStoreStub() *storeStub {
	return &storeStub{
		posts:      noopPostRepo(),
		comments:   noopCommentRepo(),
		categories: noopLabelRepo[models.Category](),
		tags:       noopTagRepo(),
	}
}

func (s *storeStub) Posts() repository.PostRepository { return s.posts }
func (s *storeStub) Comments() repository.CommentRepository { return s.comments }
func (s *storeStub) Categories() repository.CategoryRepository { return s.categories }
func (s *storeStub) Tags() repository.TagRepository { return s.tags }
func (s *storeStub) Users() repository.UserRepository { return userRepoStub{} }

func (s *storeStub) Transaction(_ context.Context, fn func(repository.Store) error) error {
	s.transactions++
	return fn(s)
}

func (s *storeStub) ReadSnapshot(_ context.Context, fn func(repository.Store) error) error {
	s.snapshots++
	return fn(s)
}

type rendererStub struct{ calls int }

func (r *rendererStub) Render(markdown string) string {
	r.calls++
	return "<p>" + markdown + "</p>"
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	require.Equal(t, models.CodeValidation, appErr.Code)
}

func assertNotFound(t *testing.T, err error, resource string, key interface{}) {
	t.Helper()
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	require.Equal(t, models.CodeNotFound, appErr.Code)
	require.Equal(t, resource, appErr.Resource)
	require.Equal(t, key, appErr.Key)
}
