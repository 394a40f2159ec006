package repository

import (
	"travel-agency/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Destination  DestinationRepository
	Booking      BookingRepository
	Slider       SliderRepository
	Testimonial  TestimonialRepository
	Subscription SubscriptionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Destination:  NewDestinationRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Slider:       NewSliderRepository(db, log),
		Testimonial:  NewTestimonialRepository(db, log),
		Subscription: NewSubscriptionRepository(db, log),
	}
}
