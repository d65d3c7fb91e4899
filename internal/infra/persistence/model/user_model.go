package model

import "time"

// UserModel mirrors the 'users' table. The unique index on email is the
// authoritative uniqueness guarantee for registrations.
type UserModel struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash     string    `gorm:"column:password;type:varchar(255);not null"`
	Name             string    `gorm:"type:varchar(100);not null"`
	Phone            string    `gorm:"type:varchar(30);not null"`
	RoleID           int64     `gorm:"not null"`
	Role             *RoleModel `gorm:"foreignKey:RoleID"`
	ResetToken       *string    `gorm:"column:reset_token;type:varchar(64)"`
	ResetTokenExpiry *time.Time `gorm:"column:reset_token_expiry"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
