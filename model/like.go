package model

import (
	"time"
)

/*

Like is a "user liked a post" relation

UserID: user who liked
PostID: post being liked
CreatedAt: time when relation is created

Same constraint discipline as Follow: the composite primary key enforces
uniqueness of the (user, post) pair, and a toggle that loses an insert race
reads the conflict back as "already liked".

*/

type Like struct {
	UserID    string    `json:"userId" gorm:"primaryKey"`
	PostID    string    `json:"postId" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
}
