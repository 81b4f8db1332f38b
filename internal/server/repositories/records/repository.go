package records

import (
	"context"

	"github.com/wcorp/cyberrange/internal/server/models"
)

type Repository interface {
	ListSensitive(ctx context.Context, userID string) ([]*models.SensitiveRecord, error)
	ListNotes(ctx context.Context, userID string) ([]*models.InternalNote, error)
}
