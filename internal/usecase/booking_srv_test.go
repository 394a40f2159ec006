package usecase

import (
	"context"
	"testing"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func newBookingFixture(t *testing.T) (BookingService, *fakeBookingRepo, *fakeUserRepo) {
	t.Helper()
	bookings := newFakeBookingRepo()
	users := newFakeUserRepo()
	destinations := &fakeDestinationRepo{
		findByID: func(_ context.Context, id int64) (*entity.Destination, error) {
			if id != 7 {
				return nil, nil
			}
			d := &entity.Destination{Title: "Bali", Slug: "bali"}
			d.ID = 7
			return d, nil
		},
	}
	repo := &repository.Repository{Booking: bookings, User: users, Destination: destinations}
	return NewBookingService(repo, zap.NewNop()), bookings, users
}

func validQuote() *request.CreateQuoteRequest {
	return &request.CreateQuoteRequest{
		DestinationID:   7,
		Adults:          2,
		Children:        1,
		SpecialRequests: "Vegetarian meals",
		ContactInfo: request.ContactInfoRequest{
			Name:  "Ana Maria Lopez",
			Email: "Ana@Example.com",
			Phone: "+51 999 111",
		},
	}
}

func TestBuildQuoteSummary(t *testing.T) {
	req := validQuote()
	req.NeedsAccommodation = true

	want := "Vegetarian meals\n" +
		"Adults: 2\n" +
		"Children: 1\n" +
		"Infants: 0\n" +
		"Seniors: 0\n" +
		"Needs accommodation: Yes\n" +
		"Contact: Ana Maria Lopez, Ana@Example.com, +51 999 111"
	assert.Equal(t, want, buildQuoteSummary(req))

	req.SpecialRequests = "  "
	req.NeedsAccommodation = false
	summary := buildQuoteSummary(req)
	assert.True(t, len(summary) > 0)
	assert.Contains(t, summary, "Needs accommodation: No")
	assert.NotContains(t, summary, "\n\n")
	assert.Equal(t, "Adults: 2", summary[:len("Adults: 2")])
}

func TestHeadcount(t *testing.T) {
	req := &request.CreateQuoteRequest{Adults: 2, Children: 3, Infants: 1, Seniors: 4}
	assert.Equal(t, 10, headcount(req))
}

func TestCreateQuote_AnonymousCreatesTemporaryUserOnce(t *testing.T) {
	svc, bookings, users := newBookingFixture(t)
	ctx := context.Background()

	first, err := svc.CreateQuote(ctx, nil, validQuote())
	require.NoError(t, err)
	second, err := svc.CreateQuote(ctx, nil, validQuote())
	require.NoError(t, err)

	assert.Len(t, users.users, 1)
	user := users.users["ana@example.com"]
	require.NotNil(t, user)
	assert.Equal(t, "Ana", user.FirstName)
	assert.Equal(t, "Maria Lopez", user.LastName)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.False(t, user.IsActive)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, bookings.bookings[first.ID].UserID, bookings.bookings[second.ID].UserID)

	stored := bookings.bookings[first.ID]
	assert.Equal(t, entity.BookingStatusPending, stored.Status)
	assert.Equal(t, entity.BookingTypeQuote, stored.BookingType)
	assert.Equal(t, 3, stored.NumPeople)
	assert.Zero(t, stored.TotalPrice)
}

func TestCreateQuote_AuthenticatedUserOwnsBooking(t *testing.T) {
	svc, bookings, users := newBookingFixture(t)
	userID := int64(42)

	resp, err := svc.CreateQuote(context.Background(), &userID, validQuote())
	require.NoError(t, err)

	assert.Equal(t, int64(42), bookings.bookings[resp.ID].UserID)
	assert.Empty(t, users.users)
}

func TestCreateQuote_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *request.CreateQuoteRequest)
		wantErr error
		field   string
	}{
		{
			name:    "unknown destination",
			mutate:  func(r *request.CreateQuoteRequest) { r.DestinationID = 99 },
			wantErr: apperror.ErrNotFound,
		},
		{
			name:    "too many adults",
			mutate:  func(r *request.CreateQuoteRequest) { r.Adults = 11 },
			wantErr: apperror.ErrValidation,
			field:   "adults",
		},
		{
			name:    "no adults",
			mutate:  func(r *request.CreateQuoteRequest) { r.Adults = 0 },
			wantErr: apperror.ErrValidation,
			field:   "adults",
		},
		{
			name:    "bad contact email",
			mutate:  func(r *request.CreateQuoteRequest) { r.ContactInfo.Email = "nope" },
			wantErr: apperror.ErrValidation,
			field:   "contactInfo.email",
		},
		{
			name: "end before start",
			mutate: func(r *request.CreateQuoteRequest) {
				r.StartDate = strPtr("2025-06-10")
				r.EndDate = strPtr("2025-06-01")
			},
			wantErr: apperror.ErrValidation,
			field:   "endDate",
		},
		{
			name: "same day trip",
			mutate: func(r *request.CreateQuoteRequest) {
				r.StartDate = strPtr("2025-06-10")
				r.EndDate = strPtr("2025-06-10")
			},
			wantErr: apperror.ErrValidation,
			field:   "endDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, bookings, _ := newBookingFixture(t)
			req := validQuote()
			tt.mutate(req)

			_, err := svc.CreateQuote(context.Background(), nil, req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, bookings.bookings)

			if tt.field != "" {
				var verr *apperror.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, tt.field)
			}
		})
	}
}

func TestCreateQuote_UnknownDestinationMessage(t *testing.T) {
	svc, _, _ := newBookingFixture(t)
	req := validQuote()
	req.DestinationID = 99

	_, err := svc.CreateQuote(context.Background(), nil, req)
	assert.Contains(t, err.Error(), "selected destination does not exist")
}

func TestUpdateStatus_EnforcesTransitions(t *testing.T) {
	svc, bookings, _ := newBookingFixture(t)
	ctx := context.Background()

	created, err := svc.CreateQuote(ctx, nil, validQuote())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, created.ID, &request.UpdateBookingStatusRequest{Status: "completed"})
	require.ErrorIs(t, err, apperror.ErrInvalidTransition)
	assert.Equal(t, entity.BookingStatusPending, bookings.bookings[created.ID].Status)

	resp, err := svc.UpdateStatus(ctx, created.ID, &request.UpdateBookingStatusRequest{
		Status:      "approved",
		BookingType: strPtr("BOOKING"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusApproved, resp.Status)
	assert.Equal(t, entity.BookingTypeBooking, bookings.bookings[created.ID].BookingType)

	_, err = svc.UpdateStatus(ctx, created.ID, &request.UpdateBookingStatusRequest{Status: "pending"})
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestUpdateStatus_ConcurrentChangeRejected(t *testing.T) {
	svc, bookings, _ := newBookingFixture(t)
	ctx := context.Background()

	created, err := svc.CreateQuote(ctx, nil, validQuote())
	require.NoError(t, err)

	// pending -> approved is legal for what we read, but another admin
	// cancels the booking before our write lands
	bookings.afterFind = func(stored *entity.Booking) {
		stored.Status = entity.BookingStatusCancelled
	}

	_, err = svc.UpdateStatus(ctx, created.ID, &request.UpdateBookingStatusRequest{Status: "approved"})
	require.ErrorIs(t, err, apperror.ErrInvalidTransition)
	assert.Equal(t, entity.BookingStatusCancelled, bookings.bookings[created.ID].Status)
}

func TestUpdate_StatusChangeIsConditional(t *testing.T) {
	svc, bookings, _ := newBookingFixture(t)
	ctx := context.Background()

	created, err := svc.CreateQuote(ctx, nil, validQuote())
	require.NoError(t, err)

	bookings.afterFind = func(stored *entity.Booking) {
		stored.Status = entity.BookingStatusCompleted
	}

	price := 1500.0
	_, err = svc.Update(ctx, created.ID, &request.UpdateBookingRequest{Status: strPtr("in_review"), TotalPrice: &price})
	require.ErrorIs(t, err, apperror.ErrInvalidTransition)
	assert.Equal(t, entity.BookingStatusCompleted, bookings.bookings[created.ID].Status)
	assert.NotEqual(t, price, bookings.bookings[created.ID].TotalPrice, "rejected write leaves the row alone")
}

func TestUpdate_WithoutStatusIsUnconditional(t *testing.T) {
	svc, bookings, _ := newBookingFixture(t)
	ctx := context.Background()

	created, err := svc.CreateQuote(ctx, nil, validQuote())
	require.NoError(t, err)

	bookings.afterFind = func(stored *entity.Booking) {
		stored.Status = entity.BookingStatusInReview
	}

	price := 980.0
	resp, err := svc.Update(ctx, created.ID, &request.UpdateBookingRequest{TotalPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, price, resp.TotalPrice)
	assert.Equal(t, entity.BookingStatusInReview, resp.Status)
}

func TestUpdateStatus_UnknownBooking(t *testing.T) {
	svc, _, _ := newBookingFixture(t)
	_, err := svc.UpdateStatus(context.Background(), 404, &request.UpdateBookingStatusRequest{Status: "sent"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdate_DatesCheckedAgainstStoredValues(t *testing.T) {
	svc, _, _ := newBookingFixture(t)
	ctx := context.Background()

	req := validQuote()
	req.StartDate = strPtr("2025-06-10")
	req.EndDate = strPtr("2025-06-20")
	created, err := svc.CreateQuote(ctx, nil, req)
	require.NoError(t, err)

	// new start lands after the stored end
	_, err = svc.Update(ctx, created.ID, &request.UpdateBookingRequest{StartDate: strPtr("2025-06-25")})
	require.ErrorIs(t, err, apperror.ErrValidation)

	price := 1250.5
	resp, err := svc.Update(ctx, created.ID, &request.UpdateBookingRequest{
		TotalPrice: &price,
		Status:     strPtr("in_review"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1250.5, resp.TotalPrice)
	assert.Equal(t, entity.BookingStatusInReview, resp.Status)
}

func TestAddParticipant(t *testing.T) {
	svc, bookings, _ := newBookingFixture(t)
	ctx := context.Background()

	created, err := svc.CreateQuote(ctx, nil, validQuote())
	require.NoError(t, err)

	p, err := svc.AddParticipant(ctx, created.ID, &request.BookingParticipantRequest{
		FullName:       " Ana Lopez ",
		Age:            31,
		DocumentType:   "passport",
		DocumentNumber: "X123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Lopez", p.FullName)
	require.Len(t, bookings.participants, 1)
	assert.Equal(t, created.ID, bookings.participants[0].BookingID)

	// headcount stays what the quote said
	assert.Equal(t, 3, bookings.bookings[created.ID].NumPeople)

	_, err = svc.AddParticipant(ctx, 999, &request.BookingParticipantRequest{
		FullName: "x", DocumentType: "id", DocumentNumber: "1",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
