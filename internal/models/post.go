// Package models contains data structures for the blog's domain models.
package models

// PostStatus controls whether a post is visible in public listings.
type PostStatus string

const (
	// PostStatusDraft marks a post that only its author should see.
	PostStatusDraft PostStatus = "DRAFT"
	// PostStatusPublished marks a post that appears in public listings.
	PostStatusPublished PostStatus = "PUBLISHED"
)

// Valid reports whether s is one of the known statuses.
func (s PostStatus) Valid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// Post represents a blog article.
type Post struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	Slug             string     `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	ShortDescription string     `gorm:"type:text" json:"short_description"`
	ContentMarkdown  string     `gorm:"type:text;not null" json:"content_markdown"`
	ContentHTML      string     `gorm:"type:text;not null" json:"content_html"`
	Status           PostStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	CategoryID       uint       `gorm:"not null;index" json:"category_id"`
	Category         Category   `gorm:"foreignKey:CategoryID" json:"category"`
	CreatedByID      uint       `gorm:"column:created_by;not null;index" json:"created_by_id"`
	CreatedBy        User       `gorm:"foreignKey:CreatedByID" json:"created_by"`
	// Tags is not persisted on the row; the post_tags table is authoritative
	// and the set is attached at query time.
	Tags []Tag `gorm:"-" json:"tags"`
	Timestamps
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// PostTag is one row of the post/tag association.
type PostTag struct {
	PostID uint `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	TagID  uint `gorm:"primaryKey;autoIncrement:false;index" json:"tag_id"`
}

// TableName specifies the table name for GORM.
func (PostTag) TableName() string {
	return "post_tags"
}
