package usecase

import (
	"strings"

	"travel-agency/internal/data/repository"
	"travel-agency/pkg/cache"
	"travel-agency/pkg/imaging"
	"travel-agency/pkg/storage"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

// Infra bundles the external collaborators services need besides the database
type Infra struct {
	Storage   storage.BlobStorage
	Optimizer *imaging.Optimizer
	Cache     cache.Cache
	JWT       *utils.JWTManager
}

type Service struct {
	Auth         AuthService
	User         UserService
	Destination  DestinationService
	Booking      BookingService
	Slider       SliderService
	Testimonial  TestimonialService
	Subscription SubscriptionService
	Upload       UploadService
}

func NewService(repo *repository.Repository, infra Infra, config *utils.Config, log *zap.Logger) *Service {
	if infra.Cache == nil {
		infra.Cache = cache.Noop{}
	}
	assets := newAssetStore(infra.Storage, infra.Optimizer, log)

	return &Service{
		Auth:         NewAuthService(repo.User, infra.JWT, log),
		User:         NewUserService(repo.User, log),
		Destination:  NewDestinationService(repo.Destination, assets, infra.Cache, log),
		Booking:      NewBookingService(repo, log),
		Slider:       NewSliderService(repo.Slider, assets, log),
		Testimonial:  NewTestimonialService(repo.Testimonial, assets, log),
		Subscription: NewSubscriptionService(repo.Subscription, log),
		Upload:       NewUploadService(assets, config.Image.UploadMaxBytes, log),
	}
}

func normalizeEnum(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
