package models

import (
	"time"
)

// Draft is the mutable staging counterpart of a Segment. Unlike a segment
// it can be edited after creation (every edit bumps LastModified) and it
// carries no likes. ParentID, when set, references a published Segment —
// drafts never chain off other drafts.
//
// A draft leaves the store one of two ways: deletion, or publication into
// a Segment with the same content fields.
type Draft struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AuthorID     uint      `gorm:"not null;index" json:"author_id"`
	Author       User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	StoryTitle   string    `gorm:"size:50;not null" json:"story_title"`
	SegmentTitle string    `gorm:"size:50;not null" json:"segment_title"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	ParentID     *uint     `gorm:"index" json:"parent_id,omitempty"`
	StoryPart    int       `gorm:"not null" json:"story_part"`
	LastModified time.Time `gorm:"not null;index" json:"last_modified"`
}
