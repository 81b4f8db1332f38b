package legacy

import (
	"context"

	"github.com/wcorp/cyberrange/internal/server/models"
)

type Repository interface {
	FindByCredentials(ctx context.Context, username, password string) (models.Row, error)
	Search(ctx context.Context, q string) ([]models.Row, error)
}
