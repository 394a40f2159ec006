package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/pkg/apperror"
	"travel-agency/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type BookingService interface {
	// Public endpoint, userID is nil for anonymous callers
	CreateQuote(ctx context.Context, userID *int64, req *request.CreateQuoteRequest) (*response.BookingResponse, error)

	// Authenticated user
	GetMyBookings(ctx context.Context, userID int64) ([]response.BookingResponse, error)

	// Admin endpoints
	GetByID(ctx context.Context, id int64) (*response.BookingResponse, error)
	GetPaginated(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	Update(ctx context.Context, id int64, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	UpdateStatus(ctx context.Context, id int64, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	AddParticipant(ctx context.Context, bookingID int64, req *request.BookingParticipantRequest) (*response.BookingParticipantResponse, error)
}

type bookingService struct {
	repo *repository.Repository // booking, destination & user
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateQuote(ctx context.Context, userID *int64, req *request.CreateQuoteRequest) (*response.BookingResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create quote validation failed", zap.Any("errors", errs))
		return nil, apperror.NewValidationError(errs)
	}
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	// 2. Cek destination
	destination, err := s.repo.Destination.FindByID(ctx, req.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("find destination %d: %w", req.DestinationID, err)
	}
	if destination == nil {
		s.log.Warn("Quote for unknown destination", zap.Int64("destination_id", req.DestinationID))
		return nil, fmt.Errorf("%w: selected destination does not exist", apperror.ErrNotFound)
	}

	// 3. Tentukan pemilik booking
	var ownerID int64
	if userID != nil {
		ownerID = *userID
	} else {
		ownerID, err = s.temporaryUser(ctx, req.ContactInfo)
		if err != nil {
			return nil, err
		}
	}

	// 4. Simpan booking
	specialRequests := buildQuoteSummary(req)
	booking := &entity.Booking{
		UserID:          ownerID,
		DestinationID:   req.DestinationID,
		Status:          entity.BookingStatusPending,
		BookingType:     entity.ParseBookingType(req.BookingType),
		StartDate:       startDate,
		EndDate:         endDate,
		NumPeople:       headcount(req),
		TotalPrice:      0,
		SpecialRequests: &specialRequests,
		NeedsFlight:     req.NeedsFlight,
	}

	id, err := s.repo.Booking.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	s.log.Info("Quote created",
		zap.Int64("booking_id", id),
		zap.Int64("user_id", ownerID),
		zap.Bool("anonymous", userID == nil),
		zap.String("booking_type", string(booking.BookingType)),
		zap.Int("num_people", booking.NumPeople),
	)

	// 5. Reload supaya field join ikut terisi
	return s.GetByID(ctx, id)
}

func (s *bookingService) GetMyBookings(ctx context.Context, userID int64) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find bookings of user %d: %w", userID, err)
	}
	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) GetByID(ctx context.Context, id int64) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetPaginated(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	req.Page, req.Limit = utils.NormalizePage(req.Page, req.Limit)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	var filter entity.BookingFilter
	if req.Status != "" {
		status := entity.BookingStatus(req.Status)
		filter.Status = &status
	}
	if req.BookingType != "" {
		bookingType := entity.ParseBookingType(req.BookingType)
		filter.BookingType = &bookingType
	}

	page, err := s.repo.Booking.GetPaginated(ctx, req.Page, req.Limit, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(page.Data), page.Page, page.Limit, page.Total), nil
}

func (s *bookingService) Update(ctx context.Context, id int64, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs), zap.Int64("booking_id", id))
		return nil, apperror.NewValidationError(errs)
	}

	existing, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := &entity.BookingPatch{
		TotalPrice:      req.TotalPrice,
		NumPeople:       req.NumPeople,
		SpecialRequests: req.SpecialRequests,
		NeedsFlight:     req.NeedsFlight,
	}

	// 2. Status harus mengikuti tabel transisi
	if req.Status != nil {
		status := entity.BookingStatus(*req.Status)
		if err := s.checkTransition(existing, status); err != nil {
			return nil, err
		}
		patch.FromStatus = &existing.Status
		patch.Status = &status
	}
	if req.BookingType != nil {
		bookingType := entity.ParseBookingType(*req.BookingType)
		patch.BookingType = &bookingType
	}

	// 3. Tanggal dicek terhadap nilai yang sudah tersimpan
	if patch.StartDate, patch.EndDate, err = parseDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	start, end := existing.StartDate, existing.EndDate
	if patch.StartDate != nil {
		start = patch.StartDate
	}
	if patch.EndDate != nil {
		end = patch.EndDate
	}
	if start != nil && end != nil && !end.After(*start) {
		return nil, apperror.Field("endDate", "Must be after startDate")
	}

	if err := s.repo.Booking.Update(ctx, id, patch); err != nil {
		return nil, fmt.Errorf("update booking %d: %w", id, err)
	}

	s.log.Info("Booking updated", zap.Int64("booking_id", id))
	return s.GetByID(ctx, id)
}

func (s *bookingService) UpdateStatus(ctx context.Context, id int64, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	existing, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	status := entity.BookingStatus(req.Status)
	if err := s.checkTransition(existing, status); err != nil {
		return nil, err
	}

	var bookingType *entity.BookingType
	if req.BookingType != nil {
		t := entity.ParseBookingType(*req.BookingType)
		bookingType = &t
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, existing.Status, status, bookingType); err != nil {
		return nil, fmt.Errorf("update booking status %d: %w", id, err)
	}

	s.log.Info("Booking status changed",
		zap.Int64("booking_id", id),
		zap.String("from", string(existing.Status)),
		zap.String("to", string(status)),
	)
	return s.GetByID(ctx, id)
}

func (s *bookingService) AddParticipant(ctx context.Context, bookingID int64, req *request.BookingParticipantRequest) (*response.BookingParticipantResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	if _, err := s.findBooking(ctx, bookingID); err != nil {
		return nil, err
	}

	participant, err := s.repo.Booking.CreateParticipant(ctx, &entity.BookingParticipant{
		BookingID:      bookingID,
		FullName:       strings.TrimSpace(req.FullName),
		Age:            req.Age,
		DocumentType:   strings.TrimSpace(req.DocumentType),
		DocumentNumber: strings.TrimSpace(req.DocumentNumber),
	})
	if err != nil {
		return nil, fmt.Errorf("add participant to booking %d: %w", bookingID, err)
	}

	s.log.Info("Participant added",
		zap.Int64("booking_id", bookingID),
		zap.Int64("participant_id", participant.ID),
	)

	resp := response.ParticipantToResponse(*participant)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) findBooking(ctx context.Context, id int64) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %d: %w", id, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %d", apperror.ErrNotFound, id)
	}
	return booking, nil
}

func (s *bookingService) checkTransition(existing *entity.Booking, to entity.BookingStatus) error {
	if entity.CanTransition(existing.Status, to) {
		return nil
	}
	s.log.Warn("Rejected booking status change",
		zap.Int64("booking_id", existing.ID),
		zap.String("from", string(existing.Status)),
		zap.String("to", string(to)),
	)
	return fmt.Errorf("%w: %s -> %s", apperror.ErrInvalidTransition, existing.Status, to)
}

// temporaryUser resolves the contact email to a user id, creating an inactive
// account the first time the email is seen.
func (s *bookingService) temporaryUser(ctx context.Context, contact request.ContactInfoRequest) (int64, error) {
	// random password; the account cannot log in until an admin sets one
	hash, err := utils.HashPassword(uuid.NewString())
	if err != nil {
		return 0, fmt.Errorf("hash temporary password: %w", err)
	}

	firstName, lastName := utils.SplitFullName(contact.Name)
	phone := strings.TrimSpace(contact.Phone)

	id, err := s.repo.User.CreateTemporary(ctx, &entity.User{
		Email:        strings.ToLower(strings.TrimSpace(contact.Email)),
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         entity.RoleUser,
		Phone:        &phone,
	})
	if err != nil {
		return 0, fmt.Errorf("resolve temporary user: %w", err)
	}
	return id, nil
}

// headcount is computed once at creation and never recomputed from participants
func headcount(req *request.CreateQuoteRequest) int {
	return req.Adults + req.Children + req.Infants + req.Seniors
}

// buildQuoteSummary packs the request details staff need into one readable block
func buildQuoteSummary(req *request.CreateQuoteRequest) string {
	accommodation := "No"
	if req.NeedsAccommodation {
		accommodation = "Yes"
	}

	parts := []string{
		strings.TrimSpace(req.SpecialRequests),
		fmt.Sprintf("Adults: %d", req.Adults),
		fmt.Sprintf("Children: %d", req.Children),
		fmt.Sprintf("Infants: %d", req.Infants),
		fmt.Sprintf("Seniors: %d", req.Seniors),
		"Needs accommodation: " + accommodation,
		fmt.Sprintf("Contact: %s, %s, %s", req.ContactInfo.Name, req.ContactInfo.Email, req.ContactInfo.Phone),
	}

	lines := parts[:0]
	for _, p := range parts {
		if p != "" {
			lines = append(lines, p)
		}
	}
	return strings.Join(lines, "\n")
}

// parseDateRange parses optional YYYY-MM-DD dates; when both are present end must follow start
func parseDateRange(start, end *string) (*time.Time, *time.Time, error) {
	startDate, err := parseDate("startDate", start)
	if err != nil {
		return nil, nil, err
	}
	endDate, err := parseDate("endDate", end)
	if err != nil {
		return nil, nil, err
	}
	if startDate != nil && endDate != nil && !endDate.After(*startDate) {
		return nil, nil, apperror.Field("endDate", "Must be after startDate")
	}
	return startDate, endDate, nil
}

func parseDate(field string, value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*value))
	if err != nil {
		return nil, apperror.Field(field, "Must match the format YYYY-MM-DD")
	}
	return &t, nil
}
