package adaptor

import (
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

// Options carries the HTTP-layer settings every handler shares
type Options struct {
	Translator     utils.Translator
	Debug          bool
	UploadMaxBytes int64
}

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Destination  *DestinationHandler
	Booking      *BookingHandler
	Slider       *SliderHandler
	Testimonial  *TestimonialHandler
	Subscription *SubscriptionHandler
	Upload       *UploadHandler
}

func NewHandler(service *usecase.Service, opts Options, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, opts, log),
		User:         NewUserHandler(service.User, opts, log),
		Destination:  NewDestinationHandler(service.Destination, opts, log),
		Booking:      NewBookingHandler(service.Booking, opts, log),
		Slider:       NewSliderHandler(service.Slider, opts, log),
		Testimonial:  NewTestimonialHandler(service.Testimonial, service.Upload, opts, log),
		Subscription: NewSubscriptionHandler(service.Subscription, opts, log),
		Upload:       NewUploadHandler(service.Upload, opts, log),
	}
}

func newErrorWriter(log *zap.Logger, opts Options) errorWriter {
	return errorWriter{log: log, tr: opts.Translator, debug: opts.Debug}
}
