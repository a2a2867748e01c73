package users

import (
	"context"

	"github.com/dmitrijs2005/pstoolkit/internal/models"
)

type Repository interface {
	// Create inserts a Pending user and returns its id. A taken username
	// yields common.ErrDuplicateUsername.
	Create(ctx context.Context, username, passwordHash string) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.UserWithProfile, error)

	SetStatus(ctx context.Context, id int64, status models.UserStatus) error
	CompareAndSetStatus(ctx context.Context, id int64, from, to models.UserStatus) (bool, error)
	CountByStatus(ctx context.Context) (models.StatusCounts, int, error)

	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
	UpsertProfile(ctx context.Context, p models.Profile) error
}
