package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Store groups the repositories that share one connection or transaction.
type Store interface {
	Posts() PostRepository
	Comments() CommentRepository
	Categories() CategoryRepository
	Tags() TagRepository
	Users() UserRepository

	// Transaction runs fn against a Store bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(Store) error) error
	// ReadSnapshot runs fn inside a read-only transaction so that several
	// reads observe the same state where the engine supports it.
	ReadSnapshot(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore returns a Store backed by db.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Posts() PostRepository { return NewPostRepository(s.db) }
func (s *gormStore) Comments() CommentRepository { return NewCommentRepository(s.db) }
func (s *gormStore) Categories() CategoryRepository { return NewCategoryRepository(s.db) }
func (s *gormStore) Tags() TagRepository { return NewTagRepository(s.db) }
func (s *gormStore) Users() UserRepository { return NewUserRepository(s.db) }

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) ReadSnapshot(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	}, snapshotOptions(s.db))
}

// snapshotOptions returns REPEATABLE READ for PostgreSQL. SQLite transactions
// are already serialized, so it gets the driver default.
func snapshotOptions(db *gorm.DB) *sql.TxOptions {
	if db.Dialector.Name() == "postgres" {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	return nil
}
