// Package seed provides database seeding utilities for development and
// testing. These helpers are intended for development only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumAuthors  int
	NumStories  int
	ShouldClean bool
	// SkipBcrypt stores a plaintext marker password instead of a hash.
	// Much faster for large seeds; never use outside development.
	SkipBcrypt bool
}

// Seeder populates the database with demo story data.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var storyMoods = []string{
	"Lost", "Burning", "Silent", "Forgotten", "Endless", "Hollow",
	"Golden", "Shattered", "Wandering", "Midnight", "Crimson", "Last",
}

var storySubjects = []string{
	"Road", "Lighthouse", "Archive", "Orchard", "Harbor", "Winter",
	"Cartographer", "Garden", "Expedition", "Letters", "Key", "City",
}

var segmentLabels = []string{
	"Opening", "The Turn", "A Detour", "What Came After", "The Meeting",
	"Interlude", "The Long Night", "Crossing", "A Confession", "The Door",
}

func (s *Seeder) storyTitle() string {
	return fmt.Sprintf("The %s %s",
		storyMoods[s.rng.Intn(len(storyMoods))],
		storySubjects[s.rng.Intn(len(storySubjects))])
}

func (s *Seeder) segmentTitle() string {
	return segmentLabels[s.rng.Intn(len(segmentLabels))]
}

func (s *Seeder) segmentContent() string {
	return gofakeit.Paragraph(2, 4, 12, "\n\n")
}

// pastTime returns a timestamp spread over the last maxDays days so feeds
// look lived-in instead of all landing on the same second.
func (s *Seeder) pastTime(maxDays int) time.Time {
	back := time.Duration(s.rng.Intn(maxDays*24*60)) * time.Minute
	return time.Now().UTC().Add(-back)
}

// ClearAll removes all seeded rows. Deletion order respects foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, table := range []string{"segment_likes", "follows", "drafts", "segments", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// SeedAuthors creates demo accounts. All of them share the password
// "password123".
func (s *Seeder) SeedAuthors() ([]*models.User, error) {
	log.Printf("Seeding %d authors...", s.opts.NumAuthors)

	password := "password123"
	if !s.opts.SkipBcrypt {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		password = string(hashed)
	}

	users := make([]*models.User, 0, s.opts.NumAuthors)
	for i := 0; i < s.opts.NumAuthors; i++ {
		username := strings.ToLower(gofakeit.Username())
		if len(username) > 24 {
			username = username[:24]
		}
		user := &models.User{
			// Suffix keeps collisions out of the unique index.
			Username: fmt.Sprintf("%s%d", username, gofakeit.Number(100, 999)),
			Password: password,
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedStories creates branching story trees: each story gets a root segment
// and a few continuation branches, some of them nested.
func (s *Seeder) SeedStories(authors []*models.User) ([]*models.Segment, error) {
	log.Printf("Seeding %d stories...", s.opts.NumStories)

	var segments []*models.Segment
	for i := 0; i < s.opts.NumStories; i++ {
		author := authors[s.rng.Intn(len(authors))]
		title := s.storyTitle()

		root := &models.Segment{
			AuthorID:      author.ID,
			StoryTitle:    title,
			SegmentTitle:  s.segmentTitle(),
			Content:       s.segmentContent(),
			StoryPart:     1,
			DatePublished: s.pastTime(90),
		}
		if err := s.db.Create(root).Error; err != nil {
			return nil, err
		}
		segments = append(segments, root)

		// 0-3 direct continuations, each with a chance of its own child.
		for b := 0; b < s.rng.Intn(4); b++ {
			branchAuthor := authors[s.rng.Intn(len(authors))]
			child := &models.Segment{
				AuthorID:      branchAuthor.ID,
				StoryTitle:    title,
				SegmentTitle:  s.segmentTitle(),
				Content:       s.segmentContent(),
				ParentID:      &root.ID,
				StoryPart:     root.StoryPart + 1,
				DatePublished: root.DatePublished.Add(time.Duration(1+s.rng.Intn(72)) * time.Hour),
			}
			if err := s.db.Create(child).Error; err != nil {
				return nil, err
			}
			segments = append(segments, child)

			if s.rng.Intn(2) == 0 {
				grandAuthor := authors[s.rng.Intn(len(authors))]
				grandchild := &models.Segment{
					AuthorID:      grandAuthor.ID,
					StoryTitle:    title,
					SegmentTitle:  s.segmentTitle(),
					Content:       s.segmentContent(),
					ParentID:      &child.ID,
					StoryPart:     child.StoryPart + 1,
					DatePublished: child.DatePublished.Add(time.Duration(1+s.rng.Intn(72)) * time.Hour),
				}
				if err := s.db.Create(grandchild).Error; err != nil {
					return nil, err
				}
				segments = append(segments, grandchild)
			}
		}
	}
	return segments, nil
}

// SeedFollows wires authors into a loose social mesh: everyone follows a
// handful of others.
func (s *Seeder) SeedFollows(authors []*models.User) error {
	log.Println("Seeding follow graph...")
	for _, follower := range authors {
		for n := 0; n < 2+s.rng.Intn(4); n++ {
			followee := authors[s.rng.Intn(len(authors))]
			if followee.ID == follower.ID {
				continue
			}
			follow := &models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}
			// Duplicate picks collide on the composite key; skip them.
			if err := s.db.Where(follow).FirstOrCreate(follow).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedLikes sprinkles likes across segments and keeps each author's
// publicity counter consistent with the likes their work received.
func (s *Seeder) SeedLikes(authors []*models.User, segments []*models.Segment) error {
	log.Println("Seeding likes...")
	for _, segment := range segments {
		for n := 0; n < s.rng.Intn(5); n++ {
			reader := authors[s.rng.Intn(len(authors))]
			like := &models.SegmentLike{UserID: reader.ID, SegmentID: segment.ID}
			var count int64
			if err := s.db.Model(&models.SegmentLike{}).
				Where("user_id = ? AND segment_id = ?", reader.ID, segment.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := s.db.Create(like).Error; err != nil {
				return err
			}
			if err := s.db.Model(&models.User{}).
				Where("id = ?", segment.AuthorID).
				UpdateColumn("publicity", gorm.Expr("publicity + 1")).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedDrafts gives some authors unpublished work in progress.
func (s *Seeder) SeedDrafts(authors []*models.User, segments []*models.Segment) error {
	log.Println("Seeding drafts...")
	for _, author := range authors {
		if s.rng.Intn(3) != 0 {
			continue
		}

		draft := &models.Draft{
			AuthorID:     author.ID,
			StoryTitle:   s.storyTitle(),
			SegmentTitle: s.segmentTitle(),
			Content:      s.segmentContent(),
			StoryPart:    1,
			LastModified: s.pastTime(14),
		}
		// Half the drafts continue an existing published segment.
		if len(segments) > 0 && s.rng.Intn(2) == 0 {
			parent := segments[s.rng.Intn(len(segments))]
			draft.StoryTitle = parent.StoryTitle
			draft.ParentID = &parent.ID
			draft.StoryPart = parent.StoryPart + 1
		}
		if err := s.db.Create(draft).Error; err != nil {
			return err
		}
	}
	return nil
}

// Run executes the full seeding pipeline.
func (s *Seeder) Run() error {
	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	authors, err := s.SeedAuthors()
	if err != nil {
		return err
	}
	segments, err := s.SeedStories(authors)
	if err != nil {
		return err
	}
	if err := s.SeedFollows(authors); err != nil {
		return err
	}
	if err := s.SeedLikes(authors, segments); err != nil {
		return err
	}
	if err := s.SeedDrafts(authors, segments); err != nil {
		return err
	}

	log.Printf("Seeded %d authors and %d segments.", len(authors), len(segments))
	return nil
}
