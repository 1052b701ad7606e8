package points

import (
	"context"

	"github.com/dermalyze/dermalyze/internal/identity"
)

// Service awards gamification points. The increment happens in a single
// atomic operation at the user store, so concurrent awards for the same
// user never lose updates.
type Service struct {
	users identity.Repository
}

// NewService builds a points service over the user store.
func NewService(users identity.Repository) *Service {
	return &Service{users: users}
}

// AddPoint awards one point and returns the new total.
func (s *Service) AddPoint(ctx context.Context, userID string) (int64, error) {
	return s.users.IncrementPoints(ctx, userID)
}
