package model

import (
	"time"
)

/*

User is a data model for a registered account

Id: primary key, use to identify a user
CreatedAt: time when entity is created

Username: unique handle used for login and profile URLs
Email: contact email, not required to be unique
PasswordHash: bcrypt hash of the password, never serialized

Posts: posts authored by this user, "has-many" relation. Follows and likes
are modeled as standalone join rows (Follow, Like) instead of gorm
many-to-many associations so that cleanup on delete stays explicit.

*/

type User struct {
	Id           string    `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"createdAt" gorm:"<-:create"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"not null"`

	Posts []*Post `json:"posts,omitempty" gorm:"foreignKey:UserID"`
}
