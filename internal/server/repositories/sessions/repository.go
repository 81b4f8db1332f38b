package sessions

import (
	"context"

	"github.com/wcorp/cyberrange/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Session) error
	Count(ctx context.Context) (int64, error)
}
