package server

import (
	"strconv"
	"time"

	"inkwell/internal/models"
)

// publishedDateLayout is the human-readable timestamp format the web client
// renders directly.
const publishedDateLayout = "January 2, 2006 3:04:05 PM"

// UserView is the public projection of an account: no password hash, no
// internal flags.
type UserView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Publicity int    `json:"publicity"`
	CreatedAt string `json:"created_at"`
}

// SegmentView is the read projection of a published segment. The author
// appears as a username, the parent as its ID or "none" for story roots.
type SegmentView struct {
	ID            uint   `json:"id"`
	Author        string `json:"author"`
	StoryTitle    string `json:"story_title"`
	SegmentTitle  string `json:"segment_title"`
	Content       string `json:"content"`
	StoryPart     int    `json:"story_part"`
	Parent        string `json:"parent"`
	DatePublished string `json:"date_published"`
}

// DraftView mirrors SegmentView for the private workbench, with the
// modification timestamp in place of a publication date.
type DraftView struct {
	ID           uint   `json:"id"`
	Author       string `json:"author"`
	StoryTitle   string `json:"story_title"`
	SegmentTitle string `json:"segment_title"`
	Content      string `json:"content"`
	StoryPart    int    `json:"story_part"`
	Parent       string `json:"parent"`
	LastModified string `json:"last_modified"`
}

func formatDate(t time.Time) string {
	return t.Local().Format(publishedDateLayout)
}

func formatParent(parentID *uint) string {
	if parentID == nil {
		return "none"
	}
	return strconv.FormatUint(uint64(*parentID), 10)
}

func toUserView(user *models.User) UserView {
	return UserView{
		ID:        user.ID,
		Username:  user.Username,
		Publicity: user.Publicity,
		CreatedAt: formatDate(user.CreatedAt),
	}
}

func toUserViews(users []models.User) []UserView {
	views := make([]UserView, len(users))
	for i := range users {
		views[i] = toUserView(&users[i])
	}
	return views
}

func toSegmentView(segment *models.Segment) SegmentView {
	return SegmentView{
		ID:            segment.ID,
		Author:        segment.Author.Username,
		StoryTitle:    segment.StoryTitle,
		SegmentTitle:  segment.SegmentTitle,
		Content:       segment.Content,
		StoryPart:     segment.StoryPart,
		Parent:        formatParent(segment.ParentID),
		DatePublished: formatDate(segment.DatePublished),
	}
}

func toSegmentViews(segments []models.Segment) []SegmentView {
	views := make([]SegmentView, len(segments))
	for i := range segments {
		views[i] = toSegmentView(&segments[i])
	}
	return views
}

func toDraftView(draft *models.Draft) DraftView {
	return DraftView{
		ID:           draft.ID,
		Author:       draft.Author.Username,
		StoryTitle:   draft.StoryTitle,
		SegmentTitle: draft.SegmentTitle,
		Content:      draft.Content,
		StoryPart:    draft.StoryPart,
		Parent:       formatParent(draft.ParentID),
		LastModified: formatDate(draft.LastModified),
	}
}

func toDraftViews(drafts []models.Draft) []DraftView {
	views := make([]DraftView, len(drafts))
	for i := range drafts {
		views[i] = toDraftView(&drafts[i])
	}
	return views
}
