package usecase

import (
	"context"
	"errors"
	"fmt"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/pkg/apperror"
	"travel-agency/pkg/cache"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

const (
	destinationMainFolder    = "destinations/main"
	destinationGalleryFolder = "destinations/gallery"

	MaxGalleryFiles         = 10
	DefaultLatestLimit      = 6
	MaxLatestLimit          = 50
	DefaultRecommendedLimit = 3
	MaxRecommendedLimit     = 50
)

type DestinationService interface {
	Create(ctx context.Context, req *request.CreateDestinationRequest, mainImage *request.FileUpload, gallery []request.FileUpload) (*response.DestinationResponse, error)
	Update(ctx context.Context, id int64, req *request.UpdateDestinationRequest, mainImage *request.FileUpload, gallery []request.FileUpload) (*response.DestinationResponse, error)
	Delete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (*response.DestinationResponse, error)
	GetBySlug(ctx context.Context, slug string) (*response.DestinationResponse, error)
	GetLatest(ctx context.Context, limit int) ([]response.DestinationResponse, error)
	GetLatestSpecial(ctx context.Context) (*response.DestinationResponse, error)
	GetRecommendedByType(ctx context.Context, destType string, limit int) ([]response.DestinationResponse, error)
	GetPaginatedByType(ctx context.Context, destType string, page, limit int) (*response.PaginatedResponse[response.DestinationResponse], error)
	GetAll(ctx context.Context, page, limit int) (*response.PaginatedResponse[response.DestinationResponse], error)
}

type destinationService struct {
	repo   repository.DestinationRepository
	assets *assetStore
	cache  cache.Cache
	log    *zap.Logger
}

func NewDestinationService(repo repository.DestinationRepository, assets *assetStore, c cache.Cache, log *zap.Logger) DestinationService {
	if c == nil {
		c = cache.Noop{}
	}
	return &destinationService{
		repo:   repo,
		assets: assets,
		cache:  c,
		log:    log.With(zap.String("service", "destination")),
	}
}

// ==================== COMMANDS ====================

func (s *destinationService) Create(
	ctx context.Context,
	req *request.CreateDestinationRequest,
	mainImage *request.FileUpload,
	gallery []request.FileUpload,
) (*response.DestinationResponse, error) {
	// 1. Validasi input
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create destination validation failed", zap.Any("errors", errs))
		return nil, apperror.NewValidationError(errs)
	}
	if mainImage == nil && req.ImageSrc == "" {
		return nil, apperror.Field("imageSrc", "A main image file or URL is required")
	}
	if len(gallery) > MaxGalleryFiles {
		return nil, apperror.Field("galleryImages", fmt.Sprintf("At most %d files are allowed", MaxGalleryFiles))
	}

	// 2. Upload gambar sebelum menulis ke database
	destination := createRequestToEntity(req)
	var uploaded []string

	if mainImage != nil {
		url, err := s.assets.Upload(ctx, destinationMainFolder, mainImage)
		if err != nil {
			return nil, err
		}
		destination.ImageSrc = url
		uploaded = append(uploaded, url)
	}

	if len(gallery) > 0 {
		urls, err := s.assets.UploadAll(ctx, destinationGalleryFolder, gallery)
		if err != nil {
			s.assets.RemoveAll(ctx, uploaded)
			return nil, err
		}
		for _, url := range urls {
			destination.GalleryImages = append(destination.GalleryImages, entity.GalleryImage{ImageURL: url})
		}
		uploaded = append(uploaded, urls...)
	}

	// 3. Simpan aggregate
	created, err := s.repo.Create(ctx, destination)
	if err != nil {
		s.assets.RemoveAll(ctx, uploaded)
		if errors.Is(err, apperror.ErrConstraintViolation) {
			s.log.Warn("Destination slug already taken", zap.String("slug", req.Slug))
		}
		return nil, fmt.Errorf("create destination: %w", err)
	}

	invalidate(ctx, s.cache, s.log)

	s.log.Info("Destination created",
		zap.Int64("destination_id", created.ID),
		zap.String("slug", created.Slug),
		zap.Int("gallery_images", len(created.GalleryImages)),
	)

	resp := response.DestinationToResponse(created)
	return &resp, nil
}

func (s *destinationService) Update(
	ctx context.Context,
	id int64,
	req *request.UpdateDestinationRequest,
	mainImage *request.FileUpload,
	gallery []request.FileUpload,
) (*response.DestinationResponse, error) {
	// 1. Validasi input
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update destination validation failed", zap.Any("errors", errs), zap.Int64("destination_id", id))
		return nil, apperror.NewValidationError(errs)
	}
	if len(gallery) > MaxGalleryFiles {
		return nil, apperror.Field("galleryImages", fmt.Sprintf("At most %d files are allowed", MaxGalleryFiles))
	}

	// 2. Cek destination ada, supaya tidak upload file untuk id yang tidak ada
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find destination %d: %w", id, err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: destination %d", apperror.ErrNotFound, id)
	}

	patch := updateRequestToPatch(req)
	var uploaded []string

	// 3. Gambar utama
	if mainImage != nil {
		url, err := s.assets.Upload(ctx, destinationMainFolder, mainImage)
		if err != nil {
			return nil, err
		}
		patch.ImageSrc = &url
		uploaded = append(uploaded, url)
	}

	// 4. Galeri: clear > keep list + uploads > untouched
	switch {
	case req.ClearGallery:
		empty := []entity.GalleryImage{}
		patch.GalleryImages = &empty

	case req.KeepGallery() != nil || len(gallery) > 0:
		images := []entity.GalleryImage{}
		if keep := req.KeepGallery(); keep != nil {
			for _, img := range *keep {
				images = append(images, entity.GalleryImage{ImageURL: img.ImageURL})
			}
		}
		if len(gallery) > 0 {
			urls, err := s.assets.UploadAll(ctx, destinationGalleryFolder, gallery)
			if err != nil {
				s.assets.RemoveAll(ctx, uploaded)
				return nil, err
			}
			for _, url := range urls {
				images = append(images, entity.GalleryImage{ImageURL: url})
			}
			uploaded = append(uploaded, urls...)
		}
		patch.GalleryImages = &images
	}

	// 5. Update lewat repository
	updated, previous, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.assets.RemoveAll(ctx, uploaded)
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("%w: destination %d", apperror.ErrNotFound, id)
		}
		return nil, fmt.Errorf("update destination %d: %w", id, err)
	}

	// 6. Hapus gambar lama yang tidak dipakai lagi
	s.assets.RemoveAll(ctx, orphanedURLs(previous, updated.AssetURLs()))
	invalidate(ctx, s.cache, s.log)

	s.log.Info("Destination updated",
		zap.Int64("destination_id", id),
		zap.Bool("new_main_image", mainImage != nil),
		zap.Int("new_gallery_images", len(gallery)),
		zap.Bool("clear_gallery", req.ClearGallery),
	)

	resp := response.DestinationToResponse(updated)
	return &resp, nil
}

func (s *destinationService) Delete(ctx context.Context, id int64) error {
	urls, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return fmt.Errorf("%w: destination %d", apperror.ErrNotFound, id)
		}
		return fmt.Errorf("delete destination %d: %w", id, err)
	}

	// the row is gone; blob cleanup can only log
	s.assets.RemoveAll(ctx, urls)
	invalidate(ctx, s.cache, s.log)

	s.log.Info("Destination deleted", zap.Int64("destination_id", id), zap.Int("assets", len(urls)))
	return nil
}

// ==================== QUERIES ====================

func (s *destinationService) GetByID(ctx context.Context, id int64) (*response.DestinationResponse, error) {
	return cached(ctx, s.cache, s.log, fmt.Sprintf("destination:id:%d", id), func() (*response.DestinationResponse, error) {
		destination, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find destination %d: %w", id, err)
		}
		if destination == nil {
			return nil, fmt.Errorf("%w: destination %d", apperror.ErrNotFound, id)
		}
		resp := response.DestinationToResponse(destination)
		return &resp, nil
	})
}

func (s *destinationService) GetBySlug(ctx context.Context, slug string) (*response.DestinationResponse, error) {
	return cached(ctx, s.cache, s.log, "destination:slug:"+slug, func() (*response.DestinationResponse, error) {
		destination, err := s.repo.FindBySlug(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("find destination %q: %w", slug, err)
		}
		if destination == nil {
			return nil, fmt.Errorf("%w: destination %q", apperror.ErrNotFound, slug)
		}
		resp := response.DestinationToResponse(destination)
		return &resp, nil
	})
}

func (s *destinationService) GetLatest(ctx context.Context, limit int) ([]response.DestinationResponse, error) {
	limit = clampLimit(limit, DefaultLatestLimit, MaxLatestLimit)
	return cached(ctx, s.cache, s.log, fmt.Sprintf("destinations:latest:%d", limit), func() ([]response.DestinationResponse, error) {
		destinations, err := s.repo.FindLatest(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("find latest destinations: %w", err)
		}
		return response.DestinationsToResponse(destinations), nil
	})
}

func (s *destinationService) GetLatestSpecial(ctx context.Context) (*response.DestinationResponse, error) {
	return cached(ctx, s.cache, s.log, "destinations:special:latest", func() (*response.DestinationResponse, error) {
		destination, err := s.repo.FindLatestSpecial(ctx)
		if err != nil {
			return nil, fmt.Errorf("find latest special destination: %w", err)
		}
		if destination == nil {
			return nil, fmt.Errorf("%w: no special destination", apperror.ErrNotFound)
		}
		resp := response.DestinationToResponse(destination)
		return &resp, nil
	})
}

func (s *destinationService) GetRecommendedByType(ctx context.Context, destType string, limit int) ([]response.DestinationResponse, error) {
	t, err := parseDestinationType(destType)
	if err != nil {
		return nil, err
	}
	limit = clampLimit(limit, DefaultRecommendedLimit, MaxRecommendedLimit)

	return cached(ctx, s.cache, s.log, fmt.Sprintf("destinations:recommended:%s:%d", t, limit), func() ([]response.DestinationResponse, error) {
		destinations, err := s.repo.FindRecommendedByType(ctx, t, limit)
		if err != nil {
			return nil, fmt.Errorf("find recommended destinations: %w", err)
		}
		return response.DestinationsToResponse(destinations), nil
	})
}

func (s *destinationService) GetPaginatedByType(ctx context.Context, destType string, page, limit int) (*response.PaginatedResponse[response.DestinationResponse], error) {
	t, err := parseDestinationType(destType)
	if err != nil {
		return nil, err
	}
	page, limit = utils.NormalizePage(page, limit)

	key := fmt.Sprintf("destinations:type:%s:%d:%d", t, page, limit)
	return cached(ctx, s.cache, s.log, key, func() (*response.PaginatedResponse[response.DestinationResponse], error) {
		result, err := s.repo.FindPaginatedByType(ctx, t, page, limit)
		if err != nil {
			return nil, fmt.Errorf("find destinations by type: %w", err)
		}
		return toDestinationPage(result), nil
	})
}

func (s *destinationService) GetAll(ctx context.Context, page, limit int) (*response.PaginatedResponse[response.DestinationResponse], error) {
	page, limit = utils.NormalizePage(page, limit)

	key := fmt.Sprintf("destinations:all:%d:%d", page, limit)
	return cached(ctx, s.cache, s.log, key, func() (*response.PaginatedResponse[response.DestinationResponse], error) {
		result, err := s.repo.FindAllPaginated(ctx, page, limit)
		if err != nil {
			return nil, fmt.Errorf("find destinations: %w", err)
		}
		return toDestinationPage(result), nil
	})
}

// ==================== HELPER METHODS ====================

func toDestinationPage(p *repository.Page[*entity.Destination]) *response.PaginatedResponse[response.DestinationResponse] {
	return response.NewPaginatedResponse(response.DestinationsToResponse(p.Data), p.Page, p.Limit, p.Total)
}

func parseDestinationType(value string) (entity.DestinationType, error) {
	t := entity.DestinationType(normalizeEnum(value))
	if !t.Valid() {
		return "", apperror.Field("type", "Must be one of: national, international")
	}
	return t, nil
}

func clampLimit(limit, def, max int) int {
	if limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

func createRequestToEntity(req *request.CreateDestinationRequest) *entity.Destination {
	return &entity.Destination{
		Title:         req.Title,
		Slug:          req.Slug,
		ImageSrc:      req.ImageSrc,
		Duration:      req.Duration,
		ActivityLevel: req.ActivityLevel,
		ActivityType:  req.ActivityType,
		GroupSize:     req.GroupSize,
		Description:   req.Description,
		Price:         req.Price,
		Location:      req.Location,
		IsRecommended: req.IsRecommended,
		IsSpecial:     req.IsSpecial,
		Type:          entity.DestinationType(req.Type),
		Itinerary:     toItinerary(req.Itinerary),
		Includes:      toIncludes(req.Includes),
		Excludes:      toExcludes(req.Excludes),
		Tips:          toTips(req.Tips),
		Faqs:          toFaqs(req.Faqs),
		GalleryImages: toGallery(req.GalleryImages),
	}
}

// updateRequestToPatch keeps nil collections nil so the repository leaves them alone
func updateRequestToPatch(req *request.UpdateDestinationRequest) *entity.DestinationPatch {
	patch := &entity.DestinationPatch{
		Title:         req.Title,
		Slug:          req.Slug,
		ImageSrc:      req.ImageSrc,
		Duration:      req.Duration,
		ActivityLevel: req.ActivityLevel,
		ActivityType:  req.ActivityType,
		GroupSize:     req.GroupSize,
		Description:   req.Description,
		Price:         req.Price,
		Location:      req.Location,
		IsRecommended: req.IsRecommended,
		IsSpecial:     req.IsSpecial,
	}
	if req.Type != nil {
		t := entity.DestinationType(*req.Type)
		patch.Type = &t
	}
	if req.Itinerary != nil {
		v := toItinerary(*req.Itinerary)
		patch.Itinerary = &v
	}
	if req.Includes != nil {
		v := toIncludes(*req.Includes)
		patch.Includes = &v
	}
	if req.Excludes != nil {
		v := toExcludes(*req.Excludes)
		patch.Excludes = &v
	}
	if req.Tips != nil {
		v := toTips(*req.Tips)
		patch.Tips = &v
	}
	if req.Faqs != nil {
		v := toFaqs(*req.Faqs)
		patch.Faqs = &v
	}
	return patch
}

func toItinerary(items []request.ItineraryItemRequest) []entity.ItineraryItem {
	out := make([]entity.ItineraryItem, 0, len(items))
	for _, it := range items {
		details := make([]entity.ItineraryDetail, 0, len(it.Details))
		for _, d := range it.Details {
			details = append(details, entity.ItineraryDetail{Detail: d.Detail})
		}
		out = append(out, entity.ItineraryItem{Day: it.Day, Title: it.Title, Details: details})
	}
	return out
}

func toIncludes(items []request.IncludeRequest) []entity.Include {
	out := make([]entity.Include, 0, len(items))
	for _, it := range items {
		out = append(out, entity.Include{Item: it.Item})
	}
	return out
}

func toExcludes(items []request.ExcludeRequest) []entity.Exclude {
	out := make([]entity.Exclude, 0, len(items))
	for _, it := range items {
		out = append(out, entity.Exclude{Item: it.Item})
	}
	return out
}

func toTips(items []request.TipRequest) []entity.Tip {
	out := make([]entity.Tip, 0, len(items))
	for _, it := range items {
		out = append(out, entity.Tip{Tip: it.Tip})
	}
	return out
}

func toFaqs(items []request.FaqRequest) []entity.Faq {
	out := make([]entity.Faq, 0, len(items))
	for _, it := range items {
		out = append(out, entity.Faq{Question: it.Question, Answer: it.Answer})
	}
	return out
}

func toGallery(items []request.GalleryImageRequest) []entity.GalleryImage {
	out := make([]entity.GalleryImage, 0, len(items))
	for _, it := range items {
		out = append(out, entity.GalleryImage{ImageURL: it.ImageURL})
	}
	return out
}
