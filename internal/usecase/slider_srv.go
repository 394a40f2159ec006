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

const sliderFolder = "sliders"

type SliderService interface {
	Create(ctx context.Context, req *request.CreateSliderRequest, image *request.FileUpload) (*response.SliderResponse, error)
	GetAll(ctx context.Context, active *bool) ([]response.SliderResponse, error)
	GetByID(ctx context.Context, id int64) (*response.SliderResponse, error)
	Update(ctx context.Context, id int64, req *request.UpdateSliderRequest, image *request.FileUpload) (*response.SliderResponse, error)
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, id int64, req *request.ReorderSliderRequest) (*response.ReorderResponse, error)
}

type sliderService struct {
	repo   repository.SliderRepository
	assets *assetStore
	log    *zap.Logger
}

func NewSliderService(repo repository.SliderRepository, assets *assetStore, log *zap.Logger) SliderService {
	return &sliderService{
		repo:   repo,
		assets: assets,
		log:    log.With(zap.String("service", "slider")),
	}
}

func (s *sliderService) Create(ctx context.Context, req *request.CreateSliderRequest, image *request.FileUpload) (*response.SliderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create slider validation failed", zap.Any("errors", errs))
		return nil, apperror.NewValidationError(errs)
	}
	if image == nil && req.ImageURL == "" {
		return nil, apperror.Field("image", "An image file or imageUrl is required")
	}

	slider := &entity.Slider{
		Title:      strings.TrimSpace(req.Title),
		Subtitle:   strings.TrimSpace(req.Subtitle),
		Location:   strings.TrimSpace(req.Location),
		ImageURL:   req.ImageURL,
		ButtonText: req.ButtonText,
		ButtonURL:  req.ButtonURL,
		IsActive:   true,
	}
	if req.IsActive != nil {
		slider.IsActive = *req.IsActive
	}

	if image != nil {
		url, err := s.assets.Upload(ctx, sliderFolder, image)
		if err != nil {
			return nil, err
		}
		slider.ImageURL = url
	}

	if err := s.repo.Create(ctx, slider, req.DisplayOrder); err != nil {
		if image != nil {
			s.assets.RemoveAll(ctx, []string{slider.ImageURL})
		}
		return nil, fmt.Errorf("create slider: %w", err)
	}

	resp := response.SliderToResponse(slider)
	return &resp, nil
}

func (s *sliderService) GetAll(ctx context.Context, active *bool) ([]response.SliderResponse, error) {
	sliders, err := s.repo.FindAll(ctx, active)
	if err != nil {
		return nil, fmt.Errorf("list sliders: %w", err)
	}
	return response.SlidersToResponse(sliders), nil
}

func (s *sliderService) GetByID(ctx context.Context, id int64) (*response.SliderResponse, error) {
	slider, err := s.findSlider(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.SliderToResponse(slider)
	return &resp, nil
}

func (s *sliderService) Update(ctx context.Context, id int64, req *request.UpdateSliderRequest, image *request.FileUpload) (*response.SliderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update slider validation failed", zap.Any("errors", errs), zap.Int64("slider_id", id))
		return nil, apperror.NewValidationError(errs)
	}

	slider, err := s.findSlider(ctx, id)
	if err != nil {
		return nil, err
	}
	oldImage := slider.ImageURL

	// merge
	if req.Title != nil {
		slider.Title = strings.TrimSpace(*req.Title)
	}
	if req.Subtitle != nil {
		slider.Subtitle = strings.TrimSpace(*req.Subtitle)
	}
	if req.Location != nil {
		slider.Location = strings.TrimSpace(*req.Location)
	}
	if req.ImageURL != nil {
		slider.ImageURL = *req.ImageURL
	}
	if req.ButtonText != nil {
		slider.ButtonText = req.ButtonText
	}
	if req.ButtonURL != nil {
		slider.ButtonURL = req.ButtonURL
	}
	if req.IsActive != nil {
		slider.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		slider.DisplayOrder = *req.DisplayOrder
	}

	if image != nil {
		url, err := s.assets.Upload(ctx, sliderFolder, image)
		if err != nil {
			return nil, err
		}
		slider.ImageURL = url
	}

	if err := s.repo.Update(ctx, slider); err != nil {
		if image != nil {
			s.assets.RemoveAll(ctx, []string{slider.ImageURL})
		}
		return nil, fmt.Errorf("update slider %d: %w", id, err)
	}

	if oldImage != slider.ImageURL {
		s.assets.RemoveAll(ctx, []string{oldImage})
	}

	s.log.Info("Slider updated", zap.Int64("slider_id", id))
	resp := response.SliderToResponse(slider)
	return &resp, nil
}

func (s *sliderService) Delete(ctx context.Context, id int64) error {
	// fetch first to know which blob to clean up
	slider, err := s.findSlider(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete slider %d: %w", id, err)
	}

	s.assets.RemoveAll(ctx, []string{slider.ImageURL})
	return nil
}

func (s *sliderService) Reorder(ctx context.Context, id int64, req *request.ReorderSliderRequest) (*response.ReorderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	moved, err := s.repo.Reorder(ctx, id, entity.ReorderDirection(req.Direction))
	if err != nil {
		return nil, err
	}
	return &response.ReorderResponse{Moved: moved}, nil
}

func (s *sliderService) findSlider(ctx context.Context, id int64) (*entity.Slider, error) {
	slider, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find slider %d: %w", id, err)
	}
	if slider == nil {
		return nil, fmt.Errorf("%w: slider %d", apperror.ErrNotFound, id)
	}
	return slider, nil
}
