package entity

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending         BookingStatus = "pending"
	BookingStatusInReview        BookingStatus = "in_review"
	BookingStatusSent            BookingStatus = "sent"
	BookingStatusInContact       BookingStatus = "in_contact"
	BookingStatusApproved        BookingStatus = "approved"
	BookingStatusApprovedAndPaid BookingStatus = "approved_and_paid"
	BookingStatusRejected        BookingStatus = "rejected"
	BookingStatusCancelled       BookingStatus = "cancelled"
	BookingStatusCompleted       BookingStatus = "completed"
)

type BookingType string

const (
	BookingTypeQuote   BookingType = "quote"
	BookingTypeBooking BookingType = "booking"
)

// ParseBookingType accepts the stored value or the upper case constant name
// ("quote", "QUOTE") and falls back to a quote for anything else.
func ParseBookingType(value string) BookingType {
	switch BookingType(strings.ToLower(strings.TrimSpace(value))) {
	case BookingTypeBooking:
		return BookingTypeBooking
	default:
		return BookingTypeQuote
	}
}

// bookingTransitions lists the statuses reachable from each status.
// cancelled and completed are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending: {
		BookingStatusInReview, BookingStatusInContact, BookingStatusSent,
		BookingStatusApproved, BookingStatusRejected, BookingStatusCancelled,
	},
	BookingStatusInReview: {
		BookingStatusSent, BookingStatusInContact,
		BookingStatusApproved, BookingStatusRejected, BookingStatusCancelled,
	},
	BookingStatusSent: {
		BookingStatusInContact, BookingStatusApproved, BookingStatusRejected, BookingStatusCancelled,
	},
	BookingStatusInContact: {
		BookingStatusSent, BookingStatusInReview,
		BookingStatusApproved, BookingStatusRejected, BookingStatusCancelled,
	},
	BookingStatusApproved:        {BookingStatusApprovedAndPaid, BookingStatusCancelled},
	BookingStatusApprovedAndPaid: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusRejected:        {BookingStatusInReview},
	BookingStatusCancelled:       {},
	BookingStatusCompleted:       {},
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanTransition reports whether from -> to is allowed. Staying on the same
// status is always allowed.
func CanTransition(from, to BookingStatus) bool {
	if !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Booking struct {
	Base
	UserID          int64         `db:"user_id"`
	DestinationID   int64         `db:"destination_id"`
	Status          BookingStatus `db:"status"`
	BookingType     BookingType   `db:"booking_type"`
	StartDate       *time.Time    `db:"start_date"`
	EndDate         *time.Time    `db:"end_date"`
	NumPeople       int           `db:"num_people"`
	TotalPrice      float64       `db:"total_price"`
	SpecialRequests *string       `db:"special_requests"`
	NeedsFlight     bool          `db:"needs_flight"`

	// derived from joins at read time, never written
	DestinationName string
	ContactName     string
	ContactPhone    *string
	ContactEmail    string

	Participants []BookingParticipant
}

type BookingParticipant struct {
	BaseSimple
	BookingID      int64  `db:"booking_id"`
	FullName       string `db:"full_name"`
	Age            int    `db:"age"`
	DocumentType   string `db:"document_type"`
	DocumentNumber string `db:"document_number"`
}

// BookingPatch is a partial update; nil fields are left unchanged.
// FromStatus, when set, makes the write conditional on the stored status so
// a transition checked against a stale read cannot overwrite a newer one.
type BookingPatch struct {
	FromStatus      *BookingStatus
	Status          *BookingStatus
	BookingType     *BookingType
	StartDate       *time.Time
	EndDate         *time.Time
	NumPeople       *int
	TotalPrice      *float64
	SpecialRequests *string
	NeedsFlight     *bool
}

type BookingFilter struct {
	Status      *BookingStatus
	BookingType *BookingType
}
