package service

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// SegmentInput carries the author-provided fields of a new segment or draft.
type SegmentInput struct {
	StoryTitle   string
	SegmentTitle string
	Content      string
	ParentID     *uint
}

// SegmentService handles published story segments: the branching tree,
// likes, and the homepage feed.
type SegmentService struct {
	segmentRepo repository.SegmentRepository
	userRepo    repository.UserRepository
	users       *UserService

	pageSize      int
	caseSensitive bool
}

// NewSegmentService creates a new segment service
func NewSegmentService(segmentRepo repository.SegmentRepository, userRepo repository.UserRepository, users *UserService, pageSize int, caseSensitive bool) *SegmentService {
	return &SegmentService{
		segmentRepo:   segmentRepo,
		userRepo:      userRepo,
		users:         users,
		pageSize:      pageSize,
		caseSensitive: caseSensitive,
	}
}

func (s *SegmentService) validateInput(in SegmentInput) error {
	if err := validation.ValidateTitle("story", in.StoryTitle); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateTitle("segment", in.SegmentTitle); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateContent(in.Content); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

// resolveStoryPart derives the depth of a new node from its parent: 1 for a
// root, parent+1 otherwise. The parent must already be published.
func (s *SegmentService) resolveStoryPart(ctx context.Context, parentID *uint) (int, error) {
	if parentID == nil {
		return 1, nil
	}
	parent, err := s.segmentRepo.GetByID(ctx, *parentID)
	if err != nil {
		return 0, err
	}
	if parent == nil {
		return 0, models.NewNotFoundError("Parent segment", *parentID)
	}
	return parent.StoryPart + 1, nil
}

// Create publishes a new segment for the author.
func (s *SegmentService) Create(ctx context.Context, authorID uint, in SegmentInput) (*models.Segment, error) {
	return s.create(ctx, authorID, in, false)
}

func (s *SegmentService) create(ctx context.Context, authorID uint, in SegmentInput, fromDraft bool) (*models.Segment, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	part, err := s.resolveStoryPart(ctx, in.ParentID)
	if err != nil {
		return nil, err
	}

	segment := &models.Segment{
		AuthorID:      authorID,
		StoryTitle:    in.StoryTitle,
		SegmentTitle:  in.SegmentTitle,
		Content:       in.Content,
		ParentID:      in.ParentID,
		StoryPart:     part,
		DatePublished: time.Now().UTC(),
	}
	if err := s.segmentRepo.Create(ctx, segment); err != nil {
		return nil, err
	}

	observability.SegmentsPublished.WithLabelValues(
		strconv.FormatBool(in.ParentID == nil),
		strconv.FormatBool(fromDraft),
	).Inc()
	return segment, nil
}

// GetByID returns the segment or a not-found error.
func (s *SegmentService) GetByID(ctx context.Context, id uint) (*models.Segment, error) {
	segment, err := s.segmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if segment == nil {
		return nil, models.NewNotFoundError("Segment", id)
	}
	return segment, nil
}

// List returns published segments newest first.
func (s *SegmentService) List(ctx context.Context, limit, offset int) ([]models.Segment, error) {
	return s.segmentRepo.List(ctx, limit, offset)
}

// ByAuthor returns the named author's segments newest first.
func (s *SegmentService) ByAuthor(ctx context.Context, username string) ([]models.Segment, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.segmentRepo.GetByAuthorID(ctx, author.ID)
}

// Children returns the direct continuations of a segment, newest first.
func (s *SegmentService) Children(ctx context.Context, parentID uint) ([]models.Segment, error) {
	if _, err := s.GetByID(ctx, parentID); err != nil {
		return nil, err
	}
	return s.segmentRepo.GetChildren(ctx, parentID)
}

// Story returns the whole subtree under rootID (root included) in
// breadth-first order, so readers see the tree level by level.
func (s *SegmentService) Story(ctx context.Context, rootID uint) ([]models.Segment, error) {
	root, err := s.GetByID(ctx, rootID)
	if err != nil {
		return nil, err
	}

	story := []models.Segment{*root}
	frontier := []uint{rootID}
	for len(frontier) > 0 {
		var next []uint
		for _, id := range frontier {
			children, err := s.segmentRepo.GetChildren(ctx, id)
			if err != nil {
				return nil, err
			}
			for _, child := range children {
				story = append(story, child)
				next = append(next, child.ID)
			}
		}
		frontier = next
	}
	return story, nil
}

// Like adds the user to the segment's likes set. The author's publicity
// moves only when the set actually grew, so repeated likes from the same
// user count once.
func (s *SegmentService) Like(ctx context.Context, segmentID, userID uint) (bool, error) {
	segment, err := s.GetByID(ctx, segmentID)
	if err != nil {
		return false, err
	}
	added, err := s.segmentRepo.Like(ctx, userID, segmentID)
	if err != nil {
		return false, err
	}
	if added {
		if err := s.users.adjustPublicity(ctx, segment.AuthorID, 1); err != nil {
			return false, err
		}
	}
	return added, nil
}

// Unlike removes the user from the likes set, decrementing publicity only
// when a like was actually removed.
func (s *SegmentService) Unlike(ctx context.Context, segmentID, userID uint) (bool, error) {
	segment, err := s.GetByID(ctx, segmentID)
	if err != nil {
		return false, err
	}
	removed, err := s.segmentRepo.Unlike(ctx, userID, segmentID)
	if err != nil {
		return false, err
	}
	if removed {
		if err := s.users.adjustPublicity(ctx, segment.AuthorID, -1); err != nil {
			return false, err
		}
	}
	return removed, nil
}

// LikerIDs returns the IDs of users who liked the segment.
func (s *SegmentService) LikerIDs(ctx context.Context, segmentID uint) ([]uint, error) {
	if _, err := s.GetByID(ctx, segmentID); err != nil {
		return nil, err
	}
	return s.segmentRepo.LikerIDs(ctx, segmentID)
}

// Homepage builds the user's feed: segments by the user and everyone they
// follow, newest first, capped at the configured page size.
//
// A non-blank filter is a comma-separated keyword list. A segment matches
// when every keyword appears as a whole word somewhere in its content or
// titles. The user's own segments are always kept in a filtered feed, even
// when they match no keyword.
func (s *SegmentService) Homepage(ctx context.Context, userID uint, filter string) ([]models.Segment, error) {
	ids, err := s.userRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids = append(ids, userID)

	candidates, err := s.segmentRepo.GetByAuthorIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	keywords := splitKeywords(filter)
	start := time.Now()
	feed := candidates
	if len(keywords) > 0 {
		feed = s.filterCandidates(candidates, keywords, userID)
	}
	observability.HomepageFilterLatency.
		WithLabelValues(strconv.FormatBool(len(keywords) > 0)).
		Observe(time.Since(start).Seconds())

	if len(feed) > s.pageSize {
		feed = feed[:s.pageSize]
	}
	return feed, nil
}

func splitKeywords(filter string) []string {
	var keywords []string
	for _, part := range strings.Split(filter, ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

func (s *SegmentService) filterCandidates(candidates []models.Segment, keywords []string, userID uint) []models.Segment {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		expr := `\b` + regexp.QuoteMeta(kw) + `\b`
		if !s.caseSensitive {
			expr = `(?i)` + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			continue
		}
		patterns = append(patterns, re)
	}

	var feed []models.Segment
	for _, segment := range candidates {
		if segment.AuthorID == userID || matchesAll(segment, patterns) {
			feed = append(feed, segment)
		}
	}
	// Candidates arrive newest first and the filter preserves order, so a
	// re-sort is only a safety net for equal timestamps.
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].DatePublished.After(feed[j].DatePublished)
	})
	return feed
}

func matchesAll(segment models.Segment, patterns []*regexp.Regexp) bool {
	haystack := segment.Content + " " + segment.StoryTitle + " " + segment.SegmentTitle
	for _, re := range patterns {
		if !re.MatchString(haystack) {
			return false
		}
	}
	return true
}
