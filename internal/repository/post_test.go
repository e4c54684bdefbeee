package repository

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postRowColumns = []string{
	"id", "title", "slug", "status", "category_id", "created_by", "created_at",
	"Category__id", "Category__name", "Category__slug",
	"CreatedBy__id", "CreatedBy__name", "CreatedBy__email",
}

func TestPostRepository_FindPage_EmptySkipsDataQuery(t *testing.T) {
	tests := []struct {
		name  string
		query PostQuery
		count string
		args  []driver.Value
	}{
		{
			name:  "no filter",
			count: `SELECT count(*) FROM "posts"`,
		},
		{
			name:  "unknown tag",
			query: PostQuery{TagSlug: "nonexistent"},
			count: `SELECT count(*) FROM "posts" WHERE posts.id IN (SELECT post_tags.post_id FROM "post_tags" JOIN tags ON tags.id = post_tags.tag_id WHERE tags.slug = $1)`,
			args:  []driver.Value{"nonexistent"},
		},
		{
			name:  "unknown category",
			query: PostQuery{CategorySlug: "nope"},
			count: `SELECT count(*) FROM "posts" WHERE posts.category_id IN (SELECT "id" FROM "categories" WHERE slug = $1)`,
			args:  []driver.Value{"nope"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewPostRepository(db)

			expect := mock.ExpectQuery(regexp.QuoteMeta(tt.count))
			if len(tt.args) > 0 {
				expect = expect.WithArgs(tt.args...)
			}
			expect.WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

			page, err := repo.FindPage(context.Background(), tt.query, 1, 10)
			require.NoError(t, err)
			assert.Equal(t, models.EmptyPage[*models.Post](), page)
			assert.NotNil(t, page.Data)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_FindPage_OffsetAndMetadata(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE posts.status = $1`)).
		WithArgs("PUBLISHED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(`FROM "posts" LEFT JOIN .* WHERE posts\.status = \$1 ORDER BY posts\.created_at DESC,posts\.id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("PUBLISHED", 10, 20).
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow(5, "Fifth", "fifth", "PUBLISHED", 1, 1, now, 1, "Java", "java", 1, "Siva", "siva@gmail.com").
			AddRow(4, "Fourth", "fourth", "PUBLISHED", 1, 1, now, 1, "Java", "java", 1, "Siva", "siva@gmail.com"))

	page, err := repo.FindPage(context.Background(), PostQuery{Status: models.PostStatusPublished}, 3, 10)
	require.NoError(t, err)

	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(25), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.PageNumber)
	assert.True(t, page.IsLast)
	assert.True(t, page.HasPrevious)
	assert.False(t, page.HasNext)
	assert.Equal(t, "Java", page.Data[0].Category.Name)
	assert.Equal(t, "Siva", page.Data[0].CreatedBy.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_FindPage_ClampsPageToOne(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`ORDER BY posts\.created_at DESC,posts\.id DESC LIMIT \$1`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(postRowColumns))

	page, err := repo.FindPage(context.Background(), PostQuery{}, -4, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.PageNumber)
	assert.True(t, page.IsFirst)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_FindBySlug(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`WHERE posts\.slug = \$1 LIMIT \$2`).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows(postRowColumns))

	post, found, err := repo.FindBySlug(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, post)

	mock.ExpectQuery(`WHERE posts\.slug = \$1 LIMIT \$2`).
		WithArgs("hello", 1).
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow(1, "Hello", "hello", "DRAFT", 2, 3, time.Now(), 2, "Go", "go", 3, "Ann", "ann@example.com"))

	post, found, err = repo.FindBySlug(context.Background(), "hello")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint(1), post.ID)
	assert.Equal(t, models.PostStatusDraft, post.Status)
	assert.Equal(t, "go", post.Category.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	post := &models.Post{
		Title:           "Test Post",
		Slug:            "test-post",
		ContentMarkdown: "# hi",
		ContentHTML:     "<h1>hi</h1>",
		Status:          models.PostStatusDraft,
		CategoryID:      1,
		CreatedByID:     2,
		Category:        models.Category{ID: 1, Name: "Go", Slug: "go"},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), post))
	assert.Equal(t, uint(11), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &models.Post{ID: 4, Title: "New", Slug: "old", Status: models.PostStatusPublished, CategoryID: 1})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_AddPostTags(t *testing.T) {
	t.Run("one batched insert", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "post_tags" ("post_id","tag_id") VALUES ($1,$2),($3,$4)`)).
			WithArgs(5, 1, 5, 2).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := repo.AddPostTags(context.Background(), 5, []models.Tag{{ID: 1}, {ID: 2}})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no tags is a no-op", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		require.NoError(t, repo.AddPostTags(context.Background(), 5, nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_DeleteByIDs(t *testing.T) {
	t.Run("associations then posts in one transaction", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "post_tags" WHERE post_id IN ($1,$2)`)).
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE id IN ($1,$2)`)).
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		require.NoError(t, repo.DeleteByIDs(context.Background(), []uint{1, 2}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty ids never touch the database", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		require.NoError(t, repo.DeleteByIDs(context.Background(), nil))
		require.NoError(t, repo.DeleteByIDs(context.Background(), []uint{}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Count(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
