package usecase

import (
	"context"
	"strings"
	"testing"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/dto/request"
	"travel-agency/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestimonialFixture() (TestimonialService, *fakeTestimonialRepo, *memStorage) {
	repo := newFakeTestimonialRepo()
	blobs := newMemStorage()
	return NewTestimonialService(repo, newAssetStore(blobs, nil, zap.NewNop()), zap.NewNop()), repo, blobs
}

func TestTestimonialService_Create(t *testing.T) {
	svc, repo, blobs := newTestimonialFixture()
	avatar := png("maria.png")

	got, err := svc.Create(context.Background(), &request.CreateTestimonialRequest{
		Name:            "Maria ",
		Rating:          5,
		TestimonialText: "Best trip ever",
	}, &avatar)
	require.NoError(t, err)

	require.NotNil(t, got.AvatarImageURL)
	assert.True(t, strings.HasPrefix(*got.AvatarImageURL, testBaseURL+"/testimonials/"))
	assert.Equal(t, "Maria", got.Name)
	assert.Equal(t, []string{}, got.TripImageURLs)
	assert.Len(t, repo.items, 1)
	assert.Equal(t, 1, blobs.count())
}

func TestTestimonialService_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  request.CreateTestimonialRequest
	}{
		{name: "rating too high", req: request.CreateTestimonialRequest{Name: "A", Rating: 6, TestimonialText: "x"}},
		{name: "missing text", req: request.CreateTestimonialRequest{Name: "A", Rating: 4}},
		{name: "empty trip url", req: request.CreateTestimonialRequest{Name: "A", Rating: 4, TestimonialText: "x", TripImageURLs: []string{""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, blobs := newTestimonialFixture()
			avatar := png("a.png")

			_, err := svc.Create(context.Background(), &tt.req, &avatar)
			require.ErrorIs(t, err, apperror.ErrValidation)
			assert.Empty(t, repo.items)
			assert.Zero(t, blobs.count())
		})
	}
}

func TestTestimonialService_GetAllNormalizesQuery(t *testing.T) {
	svc, repo, _ := newTestimonialFixture()

	got, err := svc.GetAll(context.Background(), &request.TestimonialListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 0, Limit: 500},
		SortBy:           "rating",
		SortOrder:        "asc",
	})
	require.NoError(t, err)

	assert.Equal(t, [4]any{1, 100, "rating", "ASC"}, repo.lastQuery)
	assert.NotNil(t, got.Data)
	assert.Equal(t, 1, got.Meta.Page)

	_, err = svc.GetAll(context.Background(), &request.TestimonialListRequest{SortBy: "password"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestTestimonialService_GetLatestClampsLimit(t *testing.T) {
	svc, repo, _ := newTestimonialFixture()

	_, err := svc.GetLatest(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTestimonialsLatest, repo.lastLatest)

	_, err = svc.GetLatest(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastLatest)
}

func TestTestimonialService_UpdateAvatar(t *testing.T) {
	svc, repo, blobs := newTestimonialFixture()
	old := testBaseURL + "/testimonials/old.png"
	seed := &entity.Testimonial{Name: "Juan", AvatarImageURL: &old, Rating: 4, TestimonialText: "Nice"}
	require.NoError(t, repo.Create(context.Background(), seed))

	rating := 3
	avatar := png("new.png")
	got, err := svc.Update(context.Background(), seed.ID, &request.UpdateTestimonialRequest{Rating: &rating}, &avatar)
	require.NoError(t, err)

	assert.Equal(t, 3, got.Rating)
	assert.Equal(t, "Nice", got.TestimonialText)
	require.NotNil(t, got.AvatarImageURL)
	assert.NotEqual(t, old, *got.AvatarImageURL)
	assert.Equal(t, []string{"testimonials/old.png"}, blobs.deletedNames())
}

func TestTestimonialService_Delete(t *testing.T) {
	svc, repo, blobs := newTestimonialFixture()
	avatar := testBaseURL + "/testimonials/a.png"
	seed := &entity.Testimonial{Name: "Ana", AvatarImageURL: &avatar, Rating: 5, TestimonialText: "Great"}
	require.NoError(t, repo.Create(context.Background(), seed))

	require.NoError(t, svc.Delete(context.Background(), seed.ID))
	assert.Empty(t, repo.items)
	assert.Equal(t, []string{"testimonials/a.png"}, blobs.deletedNames())

	err := svc.Delete(context.Background(), seed.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
