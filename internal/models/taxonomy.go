package models

// Category groups posts. Exactly one category exists per slug.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:150;not null" json:"name"`
	Slug string `gorm:"size:150;not null;uniqueIndex" json:"slug"`
}

// TableName specifies the table name for GORM.
func (Category) TableName() string {
	return "categories"
}

// Tag is a free-form label attached to posts through post_tags.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:150;not null" json:"name"`
	Slug string `gorm:"size:150;not null;uniqueIndex" json:"slug"`
}

// TableName specifies the table name for GORM.
func (Tag) TableName() string {
	return "tags"
}
