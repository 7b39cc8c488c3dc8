package reviews

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/developermasrurhassan/chill-gamer-client/internal/domain"
	"github.com/developermasrurhassan/chill-gamer-client/internal/obslog"
)

// API is the slice of the store client the review workflow needs.
type API interface {
	Reviews(ctx context.Context) ([]domain.Review, error)
	HighestRatedReviews(ctx context.Context) ([]domain.Review, error)
	ReviewByID(ctx context.Context, id string) (*domain.Review, error)
	UserReviews(ctx context.Context, email string) ([]domain.Review, error)
	CreateReview(ctx context.Context, r *domain.Review) (*domain.Review, error)
	UpdateReview(ctx context.Context, id string, r *domain.Review) (*domain.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

// ValidationError names the missing field. Raised before any network call.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

func (e *ValidationError) Kind() domain.FailKind {
	return domain.FailValidation
}

// Manager is the review-authoring boundary over the store client.
type Manager struct {
	api API
}

func NewManager(api API) *Manager {
	return &Manager{api: api}
}

// validate checks the required fields of a review submission.
func validate(r *domain.Review) error {
	switch {
	case strings.TrimSpace(r.GameTitle) == "":
		return &ValidationError{Field: "gameTitle"}
	case strings.TrimSpace(r.Genre) == "":
		return &ValidationError{Field: "genre"}
	case strings.TrimSpace(r.Description) == "":
		return &ValidationError{Field: "description"}
	case r.Rating < 0 || r.Rating > 5:
		return &ValidationError{Field: "rating"}
	case strings.TrimSpace(r.UserEmail) == "":
		return &ValidationError{Field: "userEmail"}
	}
	return nil
}

// Create validates and publishes a new review. The store assigns id and
// createdAt.
func (m *Manager) Create(ctx context.Context, r *domain.Review) (*domain.Review, error) {
	if err := validate(r); err != nil {
		return nil, err
	}
	created, err := m.api.CreateReview(ctx, r)
	if err != nil {
		return nil, err
	}
	obslog.L().Info("review_create", zap.String("review_id", created.ID), zap.String("title", created.GameTitle))
	return created, nil
}

// Update validates and sends a partial update for an existing review.
func (m *Manager) Update(ctx context.Context, id string, r *domain.Review) (*domain.Review, error) {
	if err := validate(r); err != nil {
		return nil, err
	}
	return m.api.UpdateReview(ctx, id, r)
}

// Delete removes a review by id.
func (m *Manager) Delete(ctx context.Context, id string) error {
	err := m.api.DeleteReview(ctx, id)
	if err == nil {
		obslog.L().Info("review_delete", zap.String("review_id", id))
	}
	return err
}

// ByID fetches one review; domain.ErrNotFound when the id matches nothing.
func (m *Manager) ByID(ctx context.Context, id string) (*domain.Review, error) {
	return m.api.ReviewByID(ctx, id)
}

// ByUser fetches all reviews authored by the given user.
func (m *Manager) ByUser(ctx context.Context, email string) ([]domain.Review, error) {
	return m.api.UserReviews(ctx, email)
}

// HighestRated returns the server's pre-sorted top reviews (trending view).
func (m *Manager) HighestRated(ctx context.Context) ([]domain.Review, error) {
	return m.api.HighestRatedReviews(ctx)
}

// ForGame returns the reviews linked to a game by exact title match; that
// string is the only linkage between the two collections.
func (m *Manager) ForGame(ctx context.Context, gameTitle string) ([]domain.Review, error) {
	all, err := m.api.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Review
	for _, r := range all {
		if r.GameTitle == gameTitle {
			out = append(out, r)
		}
	}
	return out, nil
}
