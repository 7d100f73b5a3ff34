package models

import (
	"time"
)

// Maximum length for story and segment titles.
const MaxTitleLength = 50

// Segment is a published node of branching story content. Segments form a
// forest: ParentID is nil for a story root, otherwise it references another
// segment. StoryPart is the depth within the story (1 for roots, parent+1
// otherwise), computed once at creation and never recomputed.
//
// A segment is immutable after publication; only its likes set changes.
type Segment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AuthorID      uint      `gorm:"not null;index" json:"author_id"`
	Author        User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	StoryTitle    string    `gorm:"size:50;not null" json:"story_title"`
	SegmentTitle  string    `gorm:"size:50;not null" json:"segment_title"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	ParentID      *uint     `gorm:"index" json:"parent_id,omitempty"`
	StoryPart     int       `gorm:"not null" json:"story_part"`
	DatePublished time.Time `gorm:"not null;index" json:"date_published"`
}

// SegmentLike records that a user liked a segment. The composite primary
// key gives the likes set its set semantics at the storage layer: the same
// user cannot like the same segment twice.
type SegmentLike struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	SegmentID uint      `gorm:"primaryKey;autoIncrement:false;index" json:"segment_id"`
	CreatedAt time.Time `json:"created_at"`
}
