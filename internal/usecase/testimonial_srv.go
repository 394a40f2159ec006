package usecase

import (
	"context"
	"fmt"
	"strings"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/pkg/apperror"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

const (
	testimonialFolder         = "testimonials"
	DefaultTestimonialsLatest = 6
)

type TestimonialService interface {
	Create(ctx context.Context, req *request.CreateTestimonialRequest, avatar *request.FileUpload) (*response.TestimonialResponse, error)
	GetAll(ctx context.Context, req *request.TestimonialListRequest) (*response.PaginatedResponse[response.TestimonialResponse], error)
	GetLatest(ctx context.Context, limit int) ([]response.TestimonialResponse, error)
	GetByID(ctx context.Context, id int64) (*response.TestimonialResponse, error)
	Update(ctx context.Context, id int64, req *request.UpdateTestimonialRequest, avatar *request.FileUpload) (*response.TestimonialResponse, error)
	Delete(ctx context.Context, id int64) error
}

type testimonialService struct {
	repo   repository.TestimonialRepository
	assets *assetStore
	log    *zap.Logger
}

func NewTestimonialService(repo repository.TestimonialRepository, assets *assetStore, log *zap.Logger) TestimonialService {
	return &testimonialService{
		repo:   repo,
		assets: assets,
		log:    log.With(zap.String("service", "testimonial")),
	}
}

func (s *testimonialService) Create(ctx context.Context, req *request.CreateTestimonialRequest, avatar *request.FileUpload) (*response.TestimonialResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create testimonial validation failed", zap.Any("errors", errs))
		return nil, apperror.NewValidationError(errs)
	}

	testimonial := &entity.Testimonial{
		Name:            strings.TrimSpace(req.Name),
		AvatarImageURL:  req.AvatarImageURL,
		Rating:          req.Rating,
		TestimonialText: req.TestimonialText,
		TripImageURLs:   req.TripImageURLs,
	}

	if avatar != nil {
		url, err := s.assets.Upload(ctx, testimonialFolder, avatar)
		if err != nil {
			return nil, err
		}
		testimonial.AvatarImageURL = &url
	}

	if err := s.repo.Create(ctx, testimonial); err != nil {
		if avatar != nil {
			s.assets.RemoveAll(ctx, []string{*testimonial.AvatarImageURL})
		}
		return nil, fmt.Errorf("create testimonial: %w", err)
	}

	resp := response.TestimonialToResponse(testimonial)
	return &resp, nil
}

func (s *testimonialService) GetAll(ctx context.Context, req *request.TestimonialListRequest) (*response.PaginatedResponse[response.TestimonialResponse], error) {
	req.Page, req.Limit = utils.NormalizePage(req.Page, req.Limit)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	page, err := s.repo.FindAll(ctx, req.Page, req.Limit, req.SortBy, strings.ToUpper(req.SortOrder))
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	return response.NewPaginatedResponse(response.TestimonialsToResponse(page.Data), page.Page, page.Limit, page.Total), nil
}

func (s *testimonialService) GetLatest(ctx context.Context, limit int) ([]response.TestimonialResponse, error) {
	limit = clampLimit(limit, DefaultTestimonialsLatest, utils.MaxLimit)
	testimonials, err := s.repo.FindLatest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("latest testimonials: %w", err)
	}
	return response.TestimonialsToResponse(testimonials), nil
}

func (s *testimonialService) GetByID(ctx context.Context, id int64) (*response.TestimonialResponse, error) {
	testimonial, err := s.findTestimonial(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.TestimonialToResponse(testimonial)
	return &resp, nil
}

func (s *testimonialService) Update(ctx context.Context, id int64, req *request.UpdateTestimonialRequest, avatar *request.FileUpload) (*response.TestimonialResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update testimonial validation failed", zap.Any("errors", errs), zap.Int64("testimonial_id", id))
		return nil, apperror.NewValidationError(errs)
	}

	testimonial, err := s.findTestimonial(ctx, id)
	if err != nil {
		return nil, err
	}
	var oldAvatar string
	if testimonial.AvatarImageURL != nil {
		oldAvatar = *testimonial.AvatarImageURL
	}

	if req.Name != nil {
		testimonial.Name = strings.TrimSpace(*req.Name)
	}
	if req.AvatarImageURL != nil {
		testimonial.AvatarImageURL = req.AvatarImageURL
	}
	if req.Rating != nil {
		testimonial.Rating = *req.Rating
	}
	if req.TestimonialText != nil {
		testimonial.TestimonialText = *req.TestimonialText
	}
	if req.TripImageURLs != nil {
		testimonial.TripImageURLs = *req.TripImageURLs
	}

	if avatar != nil {
		url, err := s.assets.Upload(ctx, testimonialFolder, avatar)
		if err != nil {
			return nil, err
		}
		testimonial.AvatarImageURL = &url
	}

	if err := s.repo.Update(ctx, testimonial); err != nil {
		if avatar != nil {
			s.assets.RemoveAll(ctx, []string{*testimonial.AvatarImageURL})
		}
		return nil, fmt.Errorf("update testimonial %d: %w", id, err)
	}

	if avatar != nil && oldAvatar != "" {
		s.assets.RemoveAll(ctx, []string{oldAvatar})
	}

	s.log.Info("Testimonial updated", zap.Int64("testimonial_id", id))
	resp := response.TestimonialToResponse(testimonial)
	return &resp, nil
}

func (s *testimonialService) Delete(ctx context.Context, id int64) error {
	testimonial, err := s.findTestimonial(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete testimonial %d: %w", id, err)
	}
	if testimonial.AvatarImageURL != nil {
		s.assets.RemoveAll(ctx, []string{*testimonial.AvatarImageURL})
	}
	return nil
}

func (s *testimonialService) findTestimonial(ctx context.Context, id int64) (*entity.Testimonial, error) {
	testimonial, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find testimonial %d: %w", id, err)
	}
	if testimonial == nil {
		return nil, fmt.Errorf("%w: testimonial %d", apperror.ErrNotFound, id)
	}
	return testimonial, nil
}
