package users

import (
	"context"

	"github.com/wcorp/cyberrange/internal/server/models"
)

type Repository interface {
	Exists(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByCredentials(ctx context.Context, username, password string) (*models.User, error)
	GetProfile(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
}
