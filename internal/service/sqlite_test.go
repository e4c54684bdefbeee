package service

import (
	"context"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/markdown"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	svc    *ContentService
	author *models.User
}

func setupSQLite(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{
		Env:          "development",
		DBDriver:     config.DriverSQLite,
		DBSQLitePath: ":memory:",
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.ApplySchema(context.Background(), db, cfg))

	store := repository.NewStore(db)
	author := &models.User{Name: "Siva", Email: "siva@gmail.com", Password: "x", Role: models.RoleAdmin}
	require.NoError(t, store.Users().Create(context.Background(), author))

	return &fixture{
		db:     db,
		svc:    NewContentService(store, markdown.NewRenderer(), Options{DefaultPageSize: 10}),
		author: author,
	}
}

func (f *fixture) createPost(t *testing.T, title string, category *models.Category, tags ...string) *models.Post {
	t.Helper()
	ctx := context.Background()

	var attached []models.Tag
	for _, name := range tags {
		tag, err := f.svc.GetOrCreateTag(ctx, name)
		require.NoError(t, err)
		attached = append(attached, *tag)
	}
	post, err := f.svc.CreatePost(ctx, CreatePostInput{
		Title:           title,
		Slug:            title,
		ContentMarkdown: "# " + title,
		Status:          models.PostStatusPublished,
		CategoryID:      category.ID,
		CreatedByID:     f.author.ID,
		Tags:            attached,
	})
	require.NoError(t, err)
	return post
}

func TestSQLite_EmptyStoreListsCanonicalEmptyPage(t *testing.T) {
	f := setupSQLite(t)

	page, err := f.svc.ListPosts(context.Background(), ListPostsInput{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, []*models.Post{}, page.Data)
	assert.Zero(t, page.TotalElements)
	assert.Zero(t, page.TotalPages)
	assert.False(t, page.IsFirst)
	assert.False(t, page.IsLast)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}

func TestSQLite_GetOrCreateCategoryIsStable(t *testing.T) {
	f := setupSQLite(t)
	ctx := context.Background()

	first, err := f.svc.GetOrCreateCategory(ctx, "Java")
	require.NoError(t, err)
	second, err := f.svc.GetOrCreateCategory(ctx, "java")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Java", second.Name)

	categories, err := f.svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestSQLite_ListingAggregatesTags(t *testing.T) {
	f := setupSQLite(t)
	ctx := context.Background()

	java, err := f.svc.GetOrCreateCategory(ctx, "Java")
	require.NoError(t, err)
	p1 := f.createPost(t, "p1", java, "java", "spring")
	p2 := f.createPost(t, "p2", java, "spring", "quarkus")
	p3 := f.createPost(t, "p3", java, "java", "quarkus")

	page, err := f.svc.ListPosts(ctx, ListPostsInput{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Data, 3)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.True(t, page.IsFirst)
	assert.True(t, page.IsLast)

	names := map[uint][]string{}
	for _, p := range page.Data {
		for _, tag := range p.Tags {
			names[p.ID] = append(names[p.ID], tag.Name)
		}
		assert.Equal(t, "Java", p.Category.Name)
		assert.Equal(t, "Siva", p.CreatedBy.Name)
	}
	assert.Equal(t, []string{"java", "spring"}, names[p1.ID])
	assert.Equal(t, []string{"quarkus", "spring"}, names[p2.ID])
	assert.Equal(t, []string{"java", "quarkus"}, names[p3.ID])

	byTag, err := f.svc.ListPosts(ctx, ListPostsInput{TagSlug: "java", PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byTag.TotalElements)

	byCategory, err := f.svc.ListPosts(ctx, ListPostsInput{CategorySlug: "java", PageNumber: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, byCategory.Data, 1)
	assert.Equal(t, 2, byCategory.TotalPages)
	assert.True(t, byCategory.HasPrevious)
	assert.True(t, byCategory.IsLast)

	post, err := f.svc.GetPostBySlug(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, post.Tags, 2)
	assert.Contains(t, post.ContentHTML, "<h1>p1</h1>")
}

func TestSQLite_UnknownTagYieldsEmptyPage(t *testing.T) {
	f := setupSQLite(t)
	ctx := context.Background()

	category, err := f.svc.GetOrCreateCategory(ctx, "Go")
	require.NoError(t, err)
	f.createPost(t, "only", category, "go")

	page, err := f.svc.ListPosts(ctx, ListPostsInput{TagSlug: "nonexistent", PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, models.EmptyPage[*models.Post](), page)
}

func TestSQLite_DeletePostsCascadesComments(t *testing.T) {
	f := setupSQLite(t)
	ctx := context.Background()

	category, err := f.svc.GetOrCreateCategory(ctx, "Go")
	require.NoError(t, err)
	post := f.createPost(t, "doomed", category, "go")
	keep := f.createPost(t, "kept", category)

	for _, body := range []string{"first", "second"} {
		_, err := f.svc.CreateComment(ctx, CreateCommentInput{PostID: post.ID, CreatedByID: f.author.ID, Content: body})
		require.NoError(t, err)
	}
	_, err = f.svc.CreateComment(ctx, CreateCommentInput{PostID: keep.ID, CreatedByID: f.author.ID, Content: "stays"})
	require.NoError(t, err)

	comments, err := f.svc.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)

	require.NoError(t, f.svc.DeletePosts(ctx, []uint{post.ID}))

	_, err = f.svc.GetPostByID(ctx, post.ID)
	assert.True(t, models.IsNotFound(err))

	comments, err = f.svc.ListComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	var links int64
	require.NoError(t, f.db.Model(&models.PostTag{}).Where("post_id = ?", post.ID).Count(&links).Error)
	assert.Zero(t, links)

	recent, err := f.svc.ListRecentComments(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "stays", recent[0].Content)

	n, err := f.svc.CountPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSQLite_DeleteTagDetachesPosts(t *testing.T) {
	f := setupSQLite(t)
	ctx := context.Background()

	category, err := f.svc.GetOrCreateCategory(ctx, "Go")
	require.NoError(t, err)
	post := f.createPost(t, "tagged", category, "go", "sql")

	sql, err := f.svc.GetTagBySlug(ctx, "sql")
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteTag(ctx, sql.ID))

	reloaded, err := f.svc.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Tags, 1)
	assert.Equal(t, "go", reloaded.Tags[0].Slug)

	tags, err := f.svc.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestSQLite_UpdatePost(t *testing.T) {
	f := setupSQLite(t)
	ctx := context.Background()

	category, err := f.svc.GetOrCreateCategory(ctx, "Go")
	require.NoError(t, err)
	other, err := f.svc.UpdateCategory(ctx, category.ID, "Golang")
	require.NoError(t, err)
	assert.Equal(t, "golang", other.Slug)

	post := f.createPost(t, "draft", category)
	require.NoError(t, f.svc.UpdatePost(ctx, UpdatePostInput{
		ID:              post.ID,
		Title:           "Published Draft",
		Slug:            "draft",
		ContentMarkdown: "*now*",
		Status:          models.PostStatusPublished,
		CategoryID:      category.ID,
	}))

	reloaded, err := f.svc.GetPostBySlug(ctx, "draft")
	require.NoError(t, err)
	assert.Equal(t, "Published Draft", reloaded.Title)
	assert.Contains(t, reloaded.ContentHTML, "<em>now</em>")
	assert.Equal(t, "Golang", reloaded.Category.Name)
}
