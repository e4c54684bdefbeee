package models

// Comment is a reader's reply under a post.
type Comment struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Content     string `gorm:"type:text;not null" json:"content"`
	PostID      uint   `gorm:"not null;index" json:"post_id"`
	CreatedByID uint   `gorm:"column:created_by;not null;index" json:"created_by_id"`
	CreatedBy   User   `gorm:"foreignKey:CreatedByID" json:"created_by"`
	Timestamps
}

// TableName specifies the table name for GORM.
func (Comment) TableName() string {
	return "comments"
}
