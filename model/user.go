package model

import "time"

// User is a credential record. Users are created at registration and are
// never updated or deleted afterwards. The password column stores a bcrypt
// hash, never plaintext.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
