package model

// RoleModel mirrors the 'roles' table. The unique index on name guarantees at
// most one row per role name across concurrent creators.
type RoleModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(30);uniqueIndex;not null"`
	Description string `gorm:"type:varchar(255)"`
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}
