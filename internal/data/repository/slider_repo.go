package repository

import (
	"context"
	"errors"
	"fmt"

	"travel-agency/internal/data/entity"
	"travel-agency/pkg/apperror"
	"travel-agency/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SliderRepository interface {
	// Create appends the slider after the last one unless DisplayOrder is set
	Create(ctx context.Context, slider *entity.Slider, displayOrder *int) error
	FindByID(ctx context.Context, id int64) (*entity.Slider, error)
	FindAll(ctx context.Context, active *bool) ([]*entity.Slider, error)
	Update(ctx context.Context, slider *entity.Slider) error
	Delete(ctx context.Context, id int64) error
	// Reorder swaps the slider with its neighbour; false when already at the edge
	Reorder(ctx context.Context, id int64, direction entity.ReorderDirection) (bool, error)
}

type sliderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSliderRepository(db database.PgxIface, log *zap.Logger) SliderRepository {
	return &sliderRepository{
		db:  db,
		log: log.With(zap.String("repository", "slider")),
	}
}

const sliderColumns = `id, title, subtitle, location, image_url, button_text, button_url, is_active, display_order, created_at, updated_at`

func scanSlider(row rowScanner) (*entity.Slider, error) {
	var s entity.Slider
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Subtitle,
		&s.Location,
		&s.ImageURL,
		&s.ButtonText,
		&s.ButtonURL,
		&s.IsActive,
		&s.DisplayOrder,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sliderRepository) Create(ctx context.Context, slider *entity.Slider, displayOrder *int) error {
	query := `
		INSERT INTO sliders (title, subtitle, location, image_url, button_text, button_url, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
		        COALESCE($8, (SELECT COALESCE(MAX(display_order), -1) + 1 FROM sliders)))
		RETURNING id, display_order, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		slider.Title,
		slider.Subtitle,
		slider.Location,
		slider.ImageURL,
		slider.ButtonText,
		slider.ButtonURL,
		slider.IsActive,
		displayOrder,
	).Scan(&slider.ID, &slider.DisplayOrder, &slider.CreatedAt, &slider.UpdatedAt)
	if err != nil {
		err = wrapPgError("insert slider", err)
		r.log.Error("Failed to create slider", zap.Error(err), zap.String("title", slider.Title))
		return fmt.Errorf("create slider: %w", err)
	}

	r.log.Info("Slider created",
		zap.Int64("slider_id", slider.ID),
		zap.Int("display_order", slider.DisplayOrder),
	)
	return nil
}

func (r *sliderRepository) FindByID(ctx context.Context, id int64) (*entity.Slider, error) {
	slider, err := scanSlider(r.db.QueryRow(ctx, `SELECT `+sliderColumns+` FROM sliders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find slider", zap.Error(err), zap.Int64("slider_id", id))
		return nil, fmt.Errorf("find slider %d: %w", id, err)
	}
	return slider, nil
}

func (r *sliderRepository) FindAll(ctx context.Context, active *bool) ([]*entity.Slider, error) {
	return r.findAll(ctx, r.db, active)
}

func (r *sliderRepository) findAll(ctx context.Context, q database.Querier, active *bool) ([]*entity.Slider, error) {
	query := `SELECT ` + sliderColumns + ` FROM sliders`
	args := []any{}
	if active != nil {
		query += ` WHERE is_active = $1`
		args = append(args, *active)
	}
	query += ` ORDER BY display_order ASC, id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list sliders", zap.Error(err))
		return nil, wrapPgError("list sliders", err)
	}
	sliders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Slider, error) {
		return scanSlider(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan sliders: %w", err)
	}
	if sliders == nil {
		sliders = []*entity.Slider{}
	}
	return sliders, nil
}

func (r *sliderRepository) Update(ctx context.Context, slider *entity.Slider) error {
	query := `
		UPDATE sliders
		SET title = $2, subtitle = $3, location = $4, image_url = $5, button_text = $6,
		    button_url = $7, is_active = $8, display_order = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		slider.ID,
		slider.Title,
		slider.Subtitle,
		slider.Location,
		slider.ImageURL,
		slider.ButtonText,
		slider.ButtonURL,
		slider.IsActive,
		slider.DisplayOrder,
	).Scan(&slider.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: slider %d", apperror.ErrNotFound, slider.ID)
	}
	if err != nil {
		err = wrapPgError("update slider", err)
		r.log.Error("Failed to update slider", zap.Error(err), zap.Int64("slider_id", slider.ID))
		return fmt.Errorf("update slider %d: %w", slider.ID, err)
	}
	return nil
}

func (r *sliderRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM sliders WHERE id = $1`, id)
	if err != nil {
		err = wrapPgError("delete slider", err)
		r.log.Error("Failed to delete slider", zap.Error(err), zap.Int64("slider_id", id))
		return fmt.Errorf("delete slider %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: slider %d", apperror.ErrNotFound, id)
	}
	r.log.Info("Slider deleted", zap.Int64("slider_id", id))
	return nil
}

func (r *sliderRepository) Reorder(ctx context.Context, id int64, direction entity.ReorderDirection) (bool, error) {
	moved := false

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		// serialize concurrent reorders
		if _, err := tx.Exec(ctx, `LOCK TABLE sliders IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return wrapPgError("lock sliders", err)
		}

		sliders, err := r.findAll(ctx, tx, nil)
		if err != nil {
			return err
		}

		current := -1
		for i, s := range sliders {
			if s.ID == id {
				current = i
				break
			}
		}
		if current < 0 {
			return fmt.Errorf("%w: slider %d", apperror.ErrNotFound, id)
		}

		neighbour := current - 1
		if direction == entity.ReorderDown {
			neighbour = current + 1
		}
		if neighbour < 0 || neighbour >= len(sliders) {
			return nil
		}

		// positions become dense 0..n-1 so equal display orders still swap
		sliders[current], sliders[neighbour] = sliders[neighbour], sliders[current]
		for pos, s := range sliders {
			if s.DisplayOrder == pos {
				continue
			}
			if _, err := tx.Exec(ctx,
				`UPDATE sliders SET display_order = $2, updated_at = NOW() WHERE id = $1`,
				s.ID, pos); err != nil {
				return wrapPgError("update display order", err)
			}
		}
		moved = true
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			r.log.Error("Failed to reorder slider", zap.Error(err), zap.Int64("slider_id", id))
		}
		return false, fmt.Errorf("reorder slider %d: %w", id, err)
	}

	r.log.Info("Slider reorder",
		zap.Int64("slider_id", id),
		zap.String("direction", string(direction)),
		zap.Bool("moved", moved),
	)
	return moved, nil
}
