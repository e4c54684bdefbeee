package models

// Role is the coarse permission level of a user.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// User is the author of posts and comments.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:150;not null" json:"name"`
	Email    string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;default:'ROLE_USER'" json:"role"`
	Timestamps
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}
