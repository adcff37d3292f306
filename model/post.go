package model

import (
	"time"
)

/*

Post is a data model for a short text post

Id: primary key, use to identify a post
Cursor: monotonically increasing insertion counter, assigned by the post
store at insert time. Posts with the same CreatedAt are ordered by cursor so
that feed ordering stays deterministic.
CreatedAt: time when entity is created, immutable after insert
UserID:
User: author of this post, "belongs-to" relation

Content: post body, required to be non-empty

LikeCount and LikedByViewer are per-query annotations computed by the feed
assembler (left joins against the likes table). They are read-only scan
targets and never become columns of the posts table.

*/

type Post struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	Cursor    int64     `json:"cursor" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"<-:create"`
	UserID    string    `json:"userId" gorm:"index;not null"`
	User      User      `json:"user"`
	Content   string    `json:"content" gorm:"not null"`

	LikeCount     int64 `json:"likeCount" gorm:"->;-:migration"`
	LikedByViewer bool  `json:"likedByViewer" gorm:"->;-:migration"`
}

// FormattedTimestamp renders the creation time the way the profile and feed
// pages display it, e.g. "28 Aug 2026 at 14:03:27".
func (p Post) FormattedTimestamp() string {
	return p.CreatedAt.Format("02 Jan 2006 at 15:04:05")
}

// TimeSince renders the elapsed time since creation, truncated to seconds.
func (p Post) TimeSince() string {
	return time.Since(p.CreatedAt).Truncate(time.Second).String()
}
