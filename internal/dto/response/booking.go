package response

import (
	"time"

	"travel-agency/internal/data/entity"
)

// dates travel as YYYY-MM-DD
const dateLayout = "2006-01-02"

type BookingParticipantResponse struct {
	ID             int64     `json:"id"`
	BookingID      int64     `json:"bookingId"`
	FullName       string    `json:"fullName"`
	Age            int       `json:"age"`
	DocumentType   string    `json:"documentType"`
	DocumentNumber string    `json:"documentNumber"`
	CreatedAt      time.Time `json:"createdAt"`
}

type BookingResponse struct {
	ID              int64                        `json:"id"`
	UserID          int64                        `json:"userId"`
	DestinationID   int64                        `json:"destinationId"`
	Status          entity.BookingStatus         `json:"status"`
	BookingType     entity.BookingType           `json:"bookingType"`
	StartDate       *string                      `json:"startDate"`
	EndDate         *string                      `json:"endDate"`
	NumPeople       int                          `json:"numPeople"`
	TotalPrice      float64                      `json:"totalPrice"`
	SpecialRequests *string                      `json:"specialRequests,omitempty"`
	NeedsFlight     bool                         `json:"needsFlight"`
	CreatedAt       time.Time                    `json:"createdAt"`
	UpdatedAt       time.Time                    `json:"updatedAt"`
	Participants    []BookingParticipantResponse `json:"participants"`
	DestinationName string                       `json:"destinationName,omitempty"`
	ContactName     string                       `json:"contactName,omitempty"`
	ContactPhone    *string                      `json:"contactPhone,omitempty"`
	ContactEmail    string                       `json:"contactEmail,omitempty"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func ParticipantToResponse(p entity.BookingParticipant) BookingParticipantResponse {
	return BookingParticipantResponse{
		ID:             p.ID,
		BookingID:      p.BookingID,
		FullName:       p.FullName,
		Age:            p.Age,
		DocumentType:   p.DocumentType,
		DocumentNumber: p.DocumentNumber,
		CreatedAt:      p.CreatedAt,
	}
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		DestinationID:   b.DestinationID,
		Status:          b.Status,
		BookingType:     b.BookingType,
		StartDate:       formatDate(b.StartDate),
		EndDate:         formatDate(b.EndDate),
		NumPeople:       b.NumPeople,
		TotalPrice:      b.TotalPrice,
		SpecialRequests: b.SpecialRequests,
		NeedsFlight:     b.NeedsFlight,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		Participants:    mapSlice(b.Participants, ParticipantToResponse),
		DestinationName: b.DestinationName,
		ContactName:     b.ContactName,
		ContactPhone:    b.ContactPhone,
		ContactEmail:    b.ContactEmail,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	return mapSlice(bookings, func(b *entity.Booking) BookingResponse {
		return BookingToResponse(b)
	})
}
