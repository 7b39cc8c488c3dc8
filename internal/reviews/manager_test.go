package reviews

import (
	"context"
	"errors"
	"testing"

	"github.com/developermasrurhassan/chill-gamer-client/internal/domain"
)

type fakeAPI struct {
	reviews     []domain.Review
	createCalls int
}

func (f *fakeAPI) Reviews(ctx context.Context) ([]domain.Review, error) { return f.reviews, nil }

func (f *fakeAPI) HighestRatedReviews(ctx context.Context) ([]domain.Review, error) {
	return f.reviews, nil
}

func (f *fakeAPI) ReviewByID(ctx context.Context, id string) (*domain.Review, error) {
	for i := range f.reviews {
		if f.reviews[i].ID == id {
			return &f.reviews[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAPI) UserReviews(ctx context.Context, email string) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range f.reviews {
		if r.UserEmail == email {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateReview(ctx context.Context, r *domain.Review) (*domain.Review, error) {
	f.createCalls++
	created := *r
	created.ID = "r-new"
	f.reviews = append(f.reviews, created)
	return &created, nil
}

func (f *fakeAPI) UpdateReview(ctx context.Context, id string, r *domain.Review) (*domain.Review, error) {
	return r, nil
}

func (f *fakeAPI) DeleteReview(ctx context.Context, id string) error { return nil }

func validReview() *domain.Review {
	return &domain.Review{
		GameTitle:   "Hades",
		Genre:       "Action",
		Description: "good",
		Rating:      4.5,
		UserEmail:   "u@example.com",
	}
}

func TestCreateValidatesBeforeNetwork(t *testing.T) {
	api := &fakeAPI{}
	m := NewManager(api)
	ctx := context.Background()

	cases := []struct {
		field string
		mut   func(*domain.Review)
	}{
		{"gameTitle", func(r *domain.Review) { r.GameTitle = " " }},
		{"genre", func(r *domain.Review) { r.Genre = "" }},
		{"description", func(r *domain.Review) { r.Description = "" }},
		{"rating", func(r *domain.Review) { r.Rating = 6 }},
		{"userEmail", func(r *domain.Review) { r.UserEmail = "" }},
	}
	for _, tc := range cases {
		r := validReview()
		tc.mut(r)
		_, err := m.Create(ctx, r)
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != tc.field {
			t.Fatalf("field %s: got %v", tc.field, err)
		}
		if domain.KindOf(err) != domain.FailValidation {
			t.Fatalf("field %s: kind %q", tc.field, domain.KindOf(err))
		}
	}
	if api.createCalls != 0 {
		t.Fatalf("validation failures reached the network: %d calls", api.createCalls)
	}
}

func TestCreateValidSubmission(t *testing.T) {
	api := &fakeAPI{}
	m := NewManager(api)
	created, err := m.Create(context.Background(), validReview())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("created review missing store-assigned id")
	}
}

func TestForGameExactTitleMatch(t *testing.T) {
	api := &fakeAPI{reviews: []domain.Review{
		{ID: "1", GameTitle: "Hades"},
		{ID: "2", GameTitle: "Hades II"},
		{ID: "3", GameTitle: "Hades"},
	}}
	m := NewManager(api)
	got, err := m.ForGame(context.Background(), "Hades")
	if err != nil {
		t.Fatalf("ForGame: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("exact title match wrong: %v", got)
	}
}

func TestByIDNotFound(t *testing.T) {
	m := NewManager(&fakeAPI{})
	if _, err := m.ByID(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
