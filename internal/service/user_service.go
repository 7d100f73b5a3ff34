// Package service contains business logic for the application.
package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// FollowOutcome names the direction a follow toggle resolved to.
type FollowOutcome string

const (
	OutcomeFollowed   FollowOutcome = "followed"
	OutcomeUnfollowed FollowOutcome = "unfollowed"
)

// UserService handles account lifecycle and the follow graph.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new account. Usernames are unique case-insensitively.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Username is already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the account. Deleted
// accounts fail authentication the same way as wrong passwords.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Deleted {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// GetByID returns the user or a not-found error.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}

// GetByUsername resolves a username (case-insensitively) to an account.
// Deleted accounts resolve too: their published work remains addressable.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}

// UpdateProfile changes username and/or password. Empty arguments leave the
// corresponding field untouched.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, username, password string) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if username != "" && username != user.Username {
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != userID {
			return nil, models.NewConflictError("Username is already taken")
		}
		user.Username = username
	}

	if password != "" {
		if err := validation.ValidatePassword(password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete soft-deletes the account: the row and the user's published
// segments survive, but every follow edge touching the user is removed.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.SoftDelete(ctx, userID)
}

// ToggleFollow follows the named user if not yet followed, unfollows
// otherwise, and reports which way it went.
func (s *UserService) ToggleFollow(ctx context.Context, followerID uint, followeeUsername string) (FollowOutcome, error) {
	followee, err := s.GetByUsername(ctx, followeeUsername)
	if err != nil {
		return "", err
	}
	if followee.ID == followerID {
		return "", models.NewValidationError("You cannot follow yourself")
	}
	if followee.Deleted {
		return "", models.NewNotFoundError("User", followeeUsername)
	}

	// Try the follow first; a no-op insert means the edge already existed
	// and the toggle resolves to unfollow. Both legs are single atomic
	// statements, so racing toggles never double-apply.
	added, err := s.userRepo.Follow(ctx, followerID, followee.ID)
	if err != nil {
		return "", err
	}
	if added {
		return OutcomeFollowed, nil
	}
	if _, err := s.userRepo.Unfollow(ctx, followerID, followee.ID); err != nil {
		return "", err
	}
	return OutcomeUnfollowed, nil
}

// Follow adds a follow edge. Adding an existing edge is a no-op.
func (s *UserService) Follow(ctx context.Context, followerID uint, followeeUsername string) error {
	followee, err := s.GetByUsername(ctx, followeeUsername)
	if err != nil {
		return err
	}
	if followee.ID == followerID {
		return models.NewValidationError("You cannot follow yourself")
	}
	if followee.Deleted {
		return models.NewNotFoundError("User", followeeUsername)
	}
	_, err = s.userRepo.Follow(ctx, followerID, followee.ID)
	return err
}

// Unfollow removes a follow edge. Removing an absent edge is a no-op.
func (s *UserService) Unfollow(ctx context.Context, followerID uint, followeeUsername string) error {
	followee, err := s.GetByUsername(ctx, followeeUsername)
	if err != nil {
		return err
	}
	_, err = s.userRepo.Unfollow(ctx, followerID, followee.ID)
	return err
}

// Followers lists accounts following the named user, deleted ones excluded.
func (s *UserService) Followers(ctx context.Context, username string) ([]models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.userRepo.Followers(ctx, user.ID)
}

// Following lists accounts the named user follows, deleted ones excluded.
func (s *UserService) Following(ctx context.Context, username string) ([]models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.userRepo.Following(ctx, user.ID)
}

// Publicity returns the author's accumulated like counter.
func (s *UserService) Publicity(ctx context.Context, username string) (int, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	return user.Publicity, nil
}

// adjustPublicity moves an author's counter after a like-set change. Kept
// unexported: only the segment like path may call it.
func (s *UserService) adjustPublicity(ctx context.Context, authorID uint, delta int) error {
	_, err := s.userRepo.AdjustPublicity(ctx, authorID, delta)
	return err
}
