package models

import "time"

// AuthorizedUser is one whitelist entry. Entries are managed outside this
// system; the backend only reads them and stamps last_login.
type AuthorizedUser struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Name      string     `json:"name" gorm:"default:''"`
	Role      string     `json:"role" gorm:"default:'user'"`
	Enabled   bool       `json:"enabled" gorm:"default:true"`
	LastLogin *time.Time `json:"last_login" gorm:"column:last_login"`
}

// TableName overrides the default table name.
func (AuthorizedUser) TableName() string {
	return "authorized_users"
}
