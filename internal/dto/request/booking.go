package request

type ContactInfoRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,max=20"`
}

// CreateQuoteRequest. Omitted headcounts other than adults count as zero.
type CreateQuoteRequest struct {
	DestinationID      int64              `json:"destinationId" validate:"required,min=1"`
	StartDate          *string            `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate            *string            `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Adults             int                `json:"adults" validate:"min=1,max=10"`
	Children           int                `json:"children" validate:"min=0,max=8"`
	Infants            int                `json:"infants" validate:"min=0,max=5"`
	Seniors            int                `json:"seniors" validate:"min=0,max=5"`
	NeedsAccommodation bool               `json:"needsAccommodation"`
	NeedsFlight        bool               `json:"needsFlight"`
	SpecialRequests    string             `json:"specialRequests,omitempty"`
	ContactInfo        ContactInfoRequest `json:"contactInfo"`
	BookingType        string             `json:"bookingType,omitempty"`
}

type UpdateBookingRequest struct {
	Status          *string  `json:"status,omitempty" validate:"omitempty,oneof=pending in_review sent in_contact approved approved_and_paid rejected cancelled completed"`
	BookingType     *string  `json:"bookingType,omitempty" validate:"omitempty,oneof=quote booking QUOTE BOOKING"`
	TotalPrice      *float64 `json:"totalPrice,omitempty" validate:"omitempty,gte=0"`
	StartDate       *string  `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate         *string  `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	NumPeople       *int     `json:"numPeople,omitempty" validate:"omitempty,min=1"`
	SpecialRequests *string  `json:"specialRequests,omitempty"`
	NeedsFlight     *bool    `json:"needsFlight,omitempty"`
}

type UpdateBookingStatusRequest struct {
	Status      string  `json:"status" validate:"required,oneof=pending in_review sent in_contact approved approved_and_paid rejected cancelled completed"`
	BookingType *string `json:"bookingType,omitempty" validate:"omitempty,oneof=quote booking QUOTE BOOKING"`
}

type BookingParticipantRequest struct {
	FullName       string `json:"fullName" validate:"required,max=255"`
	Age            int    `json:"age" validate:"min=0,max=120"`
	DocumentType   string `json:"documentType" validate:"required,max=50"`
	DocumentNumber string `json:"documentNumber" validate:"required,max=100"`
}

type BookingListRequest struct {
	PaginatedRequest
	Status      string `validate:"omitempty,oneof=pending in_review sent in_contact approved approved_and_paid rejected cancelled completed"`
	BookingType string `validate:"omitempty,oneof=quote booking QUOTE BOOKING"`
}
