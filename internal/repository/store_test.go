package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestStore_TransactionCommits(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE post_id IN ($1)`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// DeleteByIDs nests its own transaction, which becomes a savepoint.
	mock.ExpectExec(`SAVEPOINT sp`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "post_tags" WHERE post_id IN ($1)`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE id IN ($1)`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Transaction(context.Background(), func(tx Store) error {
		if err := tx.Comments().DeleteByPostIDs(context.Background(), []uint{1}); err != nil {
			return err
		}
		return tx.Posts().DeleteByIDs(context.Background(), []uint{1})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_TransactionRollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE post_id IN ($1)`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := store.Transaction(context.Background(), func(tx Store) error {
		if err := tx.Comments().DeleteByPostIDs(context.Background(), []uint{1}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotOptions(t *testing.T) {
	pg, _ := setupMockDB(t)
	opts := snapshotOptions(pg)
	require.NotNil(t, opts)
	assert.Equal(t, sql.LevelRepeatableRead, opts.Isolation)
	assert.True(t, opts.ReadOnly)

	lite, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	assert.Nil(t, snapshotOptions(lite))
}
