// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an author in the Inkwell application.
//
// Deleted is the domain-level soft-delete flag: a deleted user keeps their
// row (and their published segments), but is severed from the follow graph
// and excluded from follower/following listings.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Publicity int       `gorm:"not null;default:0" json:"publicity"`
	Deleted   bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Follow is a directed edge in the social graph: follower follows followee.
// Materialized as its own table so both directions are indexed lookups
// instead of a scan over all users.
type Follow struct {
	FollowerID uint      `gorm:"primaryKey;autoIncrement:false" json:"follower_id"`
	FolloweeID uint      `gorm:"primaryKey;autoIncrement:false;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}
