package model

import (
	"time"
)

/*

Follow is a directed "follower receives followee's posts" relation

FollowerID: user who follows
FolloweeID: user being followed
CreatedAt: time when relation is created

The composite primary key doubles as the uniqueness constraint on the
(follower, followee) pair. Racing duplicate inserts are resolved with
ON CONFLICT DO NOTHING rather than application-level locks.

*/

type Follow struct {
	FollowerID string    `json:"followerId" gorm:"primaryKey"`
	FolloweeID string    `json:"followeeId" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"createdAt"`
}
