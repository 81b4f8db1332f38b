package files

import (
	"context"

	"github.com/wcorp/cyberrange/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	Count(ctx context.Context) (int64, error)
}
