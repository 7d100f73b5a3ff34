package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func appCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestRegisterHashesPassword(t *testing.T) {
	var created *models.User
	repo := &stubUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, user *models.User) error {
			user.ID = 1
			created = user
			return nil
		},
	}
	svc := NewUserService(repo)

	user, err := svc.Register(context.Background(), "storyteller", "CorrectHorse1Battery")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "storyteller", user.Username)
	assert.NotEqual(t, "CorrectHorse1Battery", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("CorrectHorse1Battery")))
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	repo := &stubUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 9, Username: "storyteller"}, nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.Register(context.Background(), "storyteller", "CorrectHorse1Battery")
	assert.Equal(t, "CONFLICT", appCode(t, err))
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := NewUserService(&stubUserRepo{})

	_, err := svc.Register(context.Background(), "ab", "CorrectHorse1Battery")
	assert.Equal(t, "VALIDATION_ERROR", appCode(t, err))

	_, err = svc.Register(context.Background(), "storyteller", "short")
	assert.Equal(t, "VALIDATION_ERROR", appCode(t, err))
}

func TestAuthenticateDeletedAccountFails(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("CorrectHorse1Battery"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &stubUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, Username: "ghost", Password: string(hashed), Deleted: true}, nil
		},
	}
	svc := NewUserService(repo)

	_, err = svc.Authenticate(context.Background(), "ghost", "CorrectHorse1Battery")
	assert.Equal(t, "UNAUTHORIZED", appCode(t, err))
}

func TestToggleFollowFollowsThenUnfollows(t *testing.T) {
	edgeExists := false
	repo := &stubUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 2, Username: "followee"}, nil
		},
		followFn: func(ctx context.Context, followerID, followeeID uint) (bool, error) {
			if edgeExists {
				return false, nil
			}
			edgeExists = true
			return true, nil
		},
		unfollowFn: func(ctx context.Context, followerID, followeeID uint) (bool, error) {
			was := edgeExists
			edgeExists = false
			return was, nil
		},
	}
	svc := NewUserService(repo)
	ctx := context.Background()

	outcome, err := svc.ToggleFollow(ctx, 1, "followee")
	require.NoError(t, err)
	assert.Equal(t, OutcomeFollowed, outcome)

	outcome, err = svc.ToggleFollow(ctx, 1, "followee")
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnfollowed, outcome)
	assert.False(t, edgeExists)
}

func TestToggleFollowRejectsSelf(t *testing.T) {
	repo := &stubUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, Username: "me"}, nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.ToggleFollow(context.Background(), 1, "me")
	assert.Equal(t, "VALIDATION_ERROR", appCode(t, err))
}

func TestToggleFollowRejectsDeletedFollowee(t *testing.T) {
	repo := &stubUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 2, Username: "ghost", Deleted: true}, nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.ToggleFollow(context.Background(), 1, "ghost")
	assert.Equal(t, "NOT_FOUND", appCode(t, err))
}

func TestToggleFollowUnknownUser(t *testing.T) {
	repo := &stubUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			return nil, nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.ToggleFollow(context.Background(), 1, "nobody")
	assert.Equal(t, "NOT_FOUND", appCode(t, err))
}

func TestUpdateProfileUsernameConflict(t *testing.T) {
	repo := &stubUserRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 1, Username: "old"}, nil
		},
		getByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: 2, Username: "taken"}, nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.UpdateProfile(context.Background(), 1, "taken", "")
	assert.Equal(t, "CONFLICT", appCode(t, err))
}

func TestDeleteRunsSoftDelete(t *testing.T) {
	softDeleted := uint(0)
	repo := &stubUserRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "author"}, nil
		},
		softDeleteFn: func(ctx context.Context, id uint) error {
			softDeleted = id
			return nil
		},
	}
	svc := NewUserService(repo)

	require.NoError(t, svc.Delete(context.Background(), 7))
	assert.Equal(t, uint(7), softDeleted)
}
