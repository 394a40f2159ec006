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

// sortable columns; anything else falls back to created_at
var testimonialSortColumns = map[string]string{
	"created_at": "created_at",
	"createdAt":  "created_at",
	"rating":     "rating",
	"name":       "name",
}

type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *entity.Testimonial) error
	FindByID(ctx context.Context, id int64) (*entity.Testimonial, error)
	FindAll(ctx context.Context, page, limit int, sortBy, sortOrder string) (*Page[*entity.Testimonial], error)
	FindLatest(ctx context.Context, limit int) ([]*entity.Testimonial, error)
	Update(ctx context.Context, testimonial *entity.Testimonial) error
	Delete(ctx context.Context, id int64) error
}

type testimonialRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTestimonialRepository(db database.PgxIface, log *zap.Logger) TestimonialRepository {
	return &testimonialRepository{
		db:  db,
		log: log.With(zap.String("repository", "testimonial")),
	}
}

const testimonialColumns = `id, name, avatar_image_url, rating, testimonial_text, trip_image_urls, created_at, updated_at`

func scanTestimonial(row rowScanner) (*entity.Testimonial, error) {
	var t entity.Testimonial
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.AvatarImageURL,
		&t.Rating,
		&t.TestimonialText,
		&t.TripImageURLs,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if t.TripImageURLs == nil {
		t.TripImageURLs = []string{}
	}
	return &t, nil
}

func tripImages(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return urls
}

func (r *testimonialRepository) Create(ctx context.Context, testimonial *entity.Testimonial) error {
	query := `
		INSERT INTO testimonials (name, avatar_image_url, rating, testimonial_text, trip_image_urls)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		testimonial.Name,
		testimonial.AvatarImageURL,
		testimonial.Rating,
		testimonial.TestimonialText,
		tripImages(testimonial.TripImageURLs),
	).Scan(&testimonial.ID, &testimonial.CreatedAt, &testimonial.UpdatedAt)
	if err != nil {
		err = wrapPgError("insert testimonial", err)
		r.log.Error("Failed to create testimonial", zap.Error(err), zap.String("name", testimonial.Name))
		return fmt.Errorf("create testimonial: %w", err)
	}

	r.log.Info("Testimonial created", zap.Int64("testimonial_id", testimonial.ID))
	return nil
}

func (r *testimonialRepository) FindByID(ctx context.Context, id int64) (*entity.Testimonial, error) {
	testimonial, err := scanTestimonial(r.db.QueryRow(ctx, `SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find testimonial", zap.Error(err), zap.Int64("testimonial_id", id))
		return nil, fmt.Errorf("find testimonial %d: %w", id, err)
	}
	return testimonial, nil
}

func (r *testimonialRepository) FindAll(ctx context.Context, page, limit int, sortBy, sortOrder string) (*Page[*entity.Testimonial], error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM testimonials`).Scan(&total); err != nil {
		r.log.Error("Failed to count testimonials", zap.Error(err))
		return nil, wrapPgError("count testimonials", err)
	}

	column, ok := testimonialSortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	order := "DESC"
	if sortOrder == "ASC" || sortOrder == "asc" {
		order = "ASC"
	}

	var testimonials []*entity.Testimonial
	offset := (page - 1) * limit
	if int64(offset) < total {
		// column and order come from the whitelist above
		query := fmt.Sprintf(`SELECT %s FROM testimonials ORDER BY %s %s, id %s LIMIT $1 OFFSET $2`,
			testimonialColumns, column, order, order)
		var err error
		testimonials, err = r.list(ctx, query, limit, offset)
		if err != nil {
			return nil, err
		}
	}

	return newPage(testimonials, total, page, limit), nil
}

func (r *testimonialRepository) FindLatest(ctx context.Context, limit int) ([]*entity.Testimonial, error) {
	return r.list(ctx, `SELECT `+testimonialColumns+` FROM testimonials ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
}

func (r *testimonialRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Testimonial, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list testimonials", zap.Error(err))
		return nil, wrapPgError("list testimonials", err)
	}
	testimonials, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Testimonial, error) {
		return scanTestimonial(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan testimonials: %w", err)
	}
	if testimonials == nil {
		testimonials = []*entity.Testimonial{}
	}
	return testimonials, nil
}

func (r *testimonialRepository) Update(ctx context.Context, testimonial *entity.Testimonial) error {
	query := `
		UPDATE testimonials
		SET name = $2, avatar_image_url = $3, rating = $4, testimonial_text = $5,
		    trip_image_urls = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		testimonial.ID,
		testimonial.Name,
		testimonial.AvatarImageURL,
		testimonial.Rating,
		testimonial.TestimonialText,
		tripImages(testimonial.TripImageURLs),
	).Scan(&testimonial.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: testimonial %d", apperror.ErrNotFound, testimonial.ID)
	}
	if err != nil {
		err = wrapPgError("update testimonial", err)
		r.log.Error("Failed to update testimonial", zap.Error(err), zap.Int64("testimonial_id", testimonial.ID))
		return fmt.Errorf("update testimonial %d: %w", testimonial.ID, err)
	}
	return nil
}

func (r *testimonialRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		err = wrapPgError("delete testimonial", err)
		r.log.Error("Failed to delete testimonial", zap.Error(err), zap.Int64("testimonial_id", id))
		return fmt.Errorf("delete testimonial %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: testimonial %d", apperror.ErrNotFound, id)
	}
	r.log.Info("Testimonial deleted", zap.Int64("testimonial_id", id))
	return nil
}
