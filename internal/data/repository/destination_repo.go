package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travel-agency/internal/data/entity"
	"travel-agency/pkg/apperror"
	"travel-agency/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type DestinationFilter struct {
	Type          *entity.DestinationType
	IsRecommended *bool
	IsSpecial     *bool
}

type DestinationRepository interface {
	Create(ctx context.Context, destination *entity.Destination) (*entity.Destination, error)
	FindByID(ctx context.Context, id int64) (*entity.Destination, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Destination, error)
	// Update also returns the asset URLs the destination held before the
	// write, read under the same row lock.
	Update(ctx context.Context, id int64, patch *entity.DestinationPatch) (*entity.Destination, []string, error)
	// Delete returns the asset URLs of the removed aggregate
	Delete(ctx context.Context, id int64) ([]string, error)

	FindLatest(ctx context.Context, limit int) ([]*entity.Destination, error)
	FindLatestSpecial(ctx context.Context) (*entity.Destination, error)
	FindRecommendedByType(ctx context.Context, destType entity.DestinationType, limit int) ([]*entity.Destination, error)
	FindPaginatedByType(ctx context.Context, destType entity.DestinationType, page, limit int) (*Page[*entity.Destination], error)
	FindAllPaginated(ctx context.Context, page, limit int) (*Page[*entity.Destination], error)
}

type destinationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDestinationRepository(db database.PgxIface, log *zap.Logger) DestinationRepository {
	return &destinationRepository{
		db:  db,
		log: log.With(zap.String("repository", "destination")),
	}
}

const destinationColumns = `
	id, title, slug, image_src, duration, activity_level, activity_type, group_size,
	description, price, location, is_recommended, is_special, type::text, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDestination(row rowScanner) (*entity.Destination, error) {
	var d entity.Destination
	err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Slug,
		&d.ImageSrc,
		&d.Duration,
		&d.ActivityLevel,
		&d.ActivityType,
		&d.GroupSize,
		&d.Description,
		&d.Price,
		&d.Location,
		&d.IsRecommended,
		&d.IsSpecial,
		&d.Type,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if d.ActivityType == nil {
		d.ActivityType = []string{}
	}
	return &d, nil
}

func (r *destinationRepository) Create(ctx context.Context, destination *entity.Destination) (*entity.Destination, error) {
	var created *entity.Destination

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO destinations (title, slug, image_src, duration, activity_level, activity_type,
			                          group_size, description, price, location, is_recommended,
			                          is_special, type)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13::destination_type)
			RETURNING id`

		activityType := destination.ActivityType
		if activityType == nil {
			activityType = []string{}
		}

		var id int64
		err := tx.QueryRow(ctx, query,
			destination.Title,
			destination.Slug,
			destination.ImageSrc,
			destination.Duration,
			destination.ActivityLevel,
			activityType,
			destination.GroupSize,
			destination.Description,
			destination.Price,
			destination.Location,
			destination.IsRecommended,
			destination.IsSpecial,
			string(destination.Type),
		).Scan(&id)
		if err != nil {
			return wrapPgError("insert destination", err)
		}

		if err := insertItinerary(ctx, tx, id, destination.Itinerary); err != nil {
			return err
		}
		if err := insertIncludes(ctx, tx, id, destination.Includes); err != nil {
			return err
		}
		if err := insertExcludes(ctx, tx, id, destination.Excludes); err != nil {
			return err
		}
		if err := insertTips(ctx, tx, id, destination.Tips); err != nil {
			return err
		}
		if err := insertFaqs(ctx, tx, id, destination.Faqs); err != nil {
			return err
		}
		if err := insertGallery(ctx, tx, id, destination.GalleryImages); err != nil {
			return err
		}

		created, err = loadDestination(ctx, tx, "id = $1", id)
		return err
	})
	if err != nil {
		if isConstraintViolation(err) {
			r.log.Warn("Destination violates a constraint",
				zap.Error(err),
				zap.String("slug", destination.Slug),
			)
		} else {
			r.log.Error("Failed to create destination",
				zap.Error(err),
				zap.String("slug", destination.Slug),
			)
		}
		return nil, fmt.Errorf("create destination: %w", err)
	}

	r.log.Info("Destination created",
		zap.Int64("destination_id", created.ID),
		zap.String("slug", created.Slug),
	)
	return created, nil
}

func (r *destinationRepository) FindByID(ctx context.Context, id int64) (*entity.Destination, error) {
	destination, err := loadDestination(ctx, r.db, "id = $1", id)
	if err != nil {
		r.log.Error("Failed to find destination by ID",
			zap.Error(err),
			zap.Int64("destination_id", id),
		)
		return nil, fmt.Errorf("find destination %d: %w", id, err)
	}
	return destination, nil
}

func (r *destinationRepository) FindBySlug(ctx context.Context, slug string) (*entity.Destination, error) {
	destination, err := loadDestination(ctx, r.db, "slug = $1", slug)
	if err != nil {
		r.log.Error("Failed to find destination by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find destination %q: %w", slug, err)
	}
	return destination, nil
}

// Update applies the scalar fields present in patch and, collection by
// collection, replaces the child rows of every collection present. The root
// row is locked for the duration of the transaction so concurrent updates of
// one destination run one after another.
func (r *destinationRepository) Update(ctx context.Context, id int64, patch *entity.DestinationPatch) (*entity.Destination, []string, error) {
	var (
		updated  *entity.Destination
		previous []string
	)

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var imageSrc string
		err := tx.QueryRow(ctx, `SELECT image_src FROM destinations WHERE id = $1 FOR UPDATE`, id).Scan(&imageSrc)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: destination %d", apperror.ErrNotFound, id)
		}
		if err != nil {
			return wrapPgError("lock destination", err)
		}
		gallery, err := loadGallery(ctx, tx, id)
		if err != nil {
			return err
		}
		previous = (&entity.Destination{ImageSrc: imageSrc, GalleryImages: gallery}).AssetURLs()

		setClause, args := destinationSetClause(patch)
		args = append(args, id)
		query := fmt.Sprintf(`UPDATE destinations SET %s WHERE id = $%d`, setClause, len(args))
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return wrapPgError("update destination", err)
		}

		if patch.Itinerary != nil {
			if err := replaceChildren(ctx, tx, "itinerary_items", id); err != nil {
				return err
			}
			if err := insertItinerary(ctx, tx, id, *patch.Itinerary); err != nil {
				return err
			}
		}
		if patch.Includes != nil {
			if err := replaceChildren(ctx, tx, "includes", id); err != nil {
				return err
			}
			if err := insertIncludes(ctx, tx, id, *patch.Includes); err != nil {
				return err
			}
		}
		if patch.Excludes != nil {
			if err := replaceChildren(ctx, tx, "excludes", id); err != nil {
				return err
			}
			if err := insertExcludes(ctx, tx, id, *patch.Excludes); err != nil {
				return err
			}
		}
		if patch.Tips != nil {
			if err := replaceChildren(ctx, tx, "tips", id); err != nil {
				return err
			}
			if err := insertTips(ctx, tx, id, *patch.Tips); err != nil {
				return err
			}
		}
		if patch.Faqs != nil {
			if err := replaceChildren(ctx, tx, "faqs", id); err != nil {
				return err
			}
			if err := insertFaqs(ctx, tx, id, *patch.Faqs); err != nil {
				return err
			}
		}
		if patch.GalleryImages != nil {
			if err := replaceChildren(ctx, tx, "gallery_images", id); err != nil {
				return err
			}
			if err := insertGallery(ctx, tx, id, *patch.GalleryImages); err != nil {
				return err
			}
		}

		updated, err = loadDestination(ctx, tx, "id = $1", id)
		return err
	})
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) || isConstraintViolation(err) {
			r.log.Warn("Destination update rejected", zap.Error(err), zap.Int64("destination_id", id))
		} else {
			r.log.Error("Failed to update destination", zap.Error(err), zap.Int64("destination_id", id))
		}
		return nil, nil, fmt.Errorf("update destination %d: %w", id, err)
	}

	r.log.Info("Destination updated", zap.Int64("destination_id", id))
	return updated, previous, nil
}

// destinationSetClause always bumps updated_at so a collection-only patch
// still marks the aggregate as modified.
func destinationSetClause(patch *entity.DestinationPatch) (string, []any) {
	sets := []string{}
	args := []any{}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Slug != nil {
		add("slug", *patch.Slug)
	}
	if patch.ImageSrc != nil {
		add("image_src", *patch.ImageSrc)
	}
	if patch.Duration != nil {
		add("duration", *patch.Duration)
	}
	if patch.ActivityLevel != nil {
		add("activity_level", *patch.ActivityLevel)
	}
	if patch.ActivityType != nil {
		activityType := *patch.ActivityType
		if activityType == nil {
			activityType = []string{}
		}
		add("activity_type", activityType)
	}
	if patch.GroupSize != nil {
		add("group_size", *patch.GroupSize)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.IsRecommended != nil {
		add("is_recommended", *patch.IsRecommended)
	}
	if patch.IsSpecial != nil {
		add("is_special", *patch.IsSpecial)
	}
	if patch.Type != nil {
		args = append(args, string(*patch.Type))
		sets = append(sets, fmt.Sprintf("type = $%d::destination_type", len(args)))
	}

	sets = append(sets, "updated_at = NOW()")
	return strings.Join(sets, ", "), args
}

func (r *destinationRepository) Delete(ctx context.Context, id int64) ([]string, error) {
	var assets []string

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var imageSrc string
		err := tx.QueryRow(ctx, `SELECT image_src FROM destinations WHERE id = $1 FOR UPDATE`, id).Scan(&imageSrc)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: destination %d", apperror.ErrNotFound, id)
		}
		if err != nil {
			return wrapPgError("lock destination", err)
		}
		if imageSrc != "" {
			assets = append(assets, imageSrc)
		}

		gallery, err := loadGallery(ctx, tx, id)
		if err != nil {
			return err
		}
		for _, img := range gallery {
			assets = append(assets, img.ImageURL)
		}

		// children go with the root via ON DELETE CASCADE
		if _, err := tx.Exec(ctx, `DELETE FROM destinations WHERE id = $1`, id); err != nil {
			return wrapPgError("delete destination", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			r.log.Warn("Destination to delete not found", zap.Int64("destination_id", id))
		} else {
			r.log.Error("Failed to delete destination", zap.Error(err), zap.Int64("destination_id", id))
		}
		return nil, fmt.Errorf("delete destination %d: %w", id, err)
	}

	r.log.Info("Destination deleted",
		zap.Int64("destination_id", id),
		zap.Int("asset_count", len(assets)),
	)
	return assets, nil
}

func (r *destinationRepository) FindLatest(ctx context.Context, limit int) ([]*entity.Destination, error) {
	destinations, err := r.findMany(ctx, DestinationFilter{}, 0, limit)
	if err != nil {
		return nil, fmt.Errorf("find latest destinations: %w", err)
	}
	return destinations, nil
}

// FindLatestSpecial returns the newest special destination with every child
// collection loaded, or nil when none is marked special.
func (r *destinationRepository) FindLatestSpecial(ctx context.Context) (*entity.Destination, error) {
	destination, err := loadDestination(ctx, r.db,
		"id = (SELECT id FROM destinations WHERE is_special ORDER BY created_at DESC, id DESC LIMIT 1)")
	if err != nil {
		r.log.Error("Failed to find latest special destination", zap.Error(err))
		return nil, fmt.Errorf("find latest special destination: %w", err)
	}
	return destination, nil
}

func (r *destinationRepository) FindRecommendedByType(ctx context.Context, destType entity.DestinationType, limit int) ([]*entity.Destination, error) {
	recommended := true
	destinations, err := r.findMany(ctx, DestinationFilter{Type: &destType, IsRecommended: &recommended}, 0, limit)
	if err != nil {
		return nil, fmt.Errorf("find recommended %s destinations: %w", destType, err)
	}
	return destinations, nil
}

func (r *destinationRepository) FindPaginatedByType(ctx context.Context, destType entity.DestinationType, page, limit int) (*Page[*entity.Destination], error) {
	return r.paginate(ctx, DestinationFilter{Type: &destType}, page, limit)
}

func (r *destinationRepository) FindAllPaginated(ctx context.Context, page, limit int) (*Page[*entity.Destination], error) {
	return r.paginate(ctx, DestinationFilter{}, page, limit)
}

func (r *destinationRepository) paginate(ctx context.Context, filter DestinationFilter, page, limit int) (*Page[*entity.Destination], error) {
	total, err := r.count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count destinations: %w", err)
	}

	// a page past the end is just empty
	var destinations []*entity.Destination
	offset := (page - 1) * limit
	if int64(offset) < total {
		destinations, err = r.findMany(ctx, filter, offset, limit)
		if err != nil {
			return nil, fmt.Errorf("find destinations: %w", err)
		}
	}

	return newPage(destinations, total, page, limit), nil
}

func destinationWhere(filter DestinationFilter) (string, []any) {
	conds := []string{}
	args := []any{}

	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		conds = append(conds, fmt.Sprintf("type = $%d::destination_type", len(args)))
	}
	if filter.IsRecommended != nil {
		args = append(args, *filter.IsRecommended)
		conds = append(conds, fmt.Sprintf("is_recommended = $%d", len(args)))
	}
	if filter.IsSpecial != nil {
		args = append(args, *filter.IsSpecial)
		conds = append(conds, fmt.Sprintf("is_special = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// findMany lists roots newest first with their gallery images (cards show them)
func (r *destinationRepository) findMany(ctx context.Context, filter DestinationFilter, offset, limit int) ([]*entity.Destination, error) {
	where, args := destinationWhere(filter)

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + destinationColumns + " FROM destinations")
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to list destinations",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, wrapPgError("list destinations", err)
	}

	destinations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Destination, error) {
		return scanDestination(row)
	})
	if err != nil {
		r.log.Error("Failed to scan destination rows", zap.Error(err))
		return nil, fmt.Errorf("scan destinations: %w", err)
	}

	if err := attachGalleries(ctx, r.db, destinations); err != nil {
		r.log.Error("Failed to load gallery images", zap.Error(err))
		return nil, err
	}

	r.log.Debug("Destinations found",
		zap.Int("count", len(destinations)),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
	)
	return destinations, nil
}

func (r *destinationRepository) count(ctx context.Context, filter DestinationFilter) (int64, error) {
	where, args := destinationWhere(filter)

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM destinations"+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count destinations", zap.Error(err))
		return 0, wrapPgError("count destinations", err)
	}
	return total, nil
}

// ---------- aggregate loading ----------

// loadDestination fetches one root matching where plus all six collections.
// Returns nil, nil when no row matches.
func loadDestination(ctx context.Context, q database.Querier, where string, args ...any) (*entity.Destination, error) {
	row := q.QueryRow(ctx, "SELECT "+destinationColumns+" FROM destinations WHERE "+where, args...)
	destination, err := scanDestination(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapPgError("select destination", err)
	}

	id := destination.ID
	if destination.Itinerary, err = loadItinerary(ctx, q, id); err != nil {
		return nil, err
	}
	if destination.Includes, err = loadIncludes(ctx, q, id); err != nil {
		return nil, err
	}
	if destination.Excludes, err = loadExcludes(ctx, q, id); err != nil {
		return nil, err
	}
	if destination.Tips, err = loadTips(ctx, q, id); err != nil {
		return nil, err
	}
	if destination.Faqs, err = loadFaqs(ctx, q, id); err != nil {
		return nil, err
	}
	if destination.GalleryImages, err = loadGallery(ctx, q, id); err != nil {
		return nil, err
	}

	return destination, nil
}

func collect[T any](ctx context.Context, q database.Querier, op, query string, args []any, scan func(pgx.CollectableRow) (T, error)) ([]T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapPgError(op, err)
	}
	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func loadItinerary(ctx context.Context, q database.Querier, destinationID int64) ([]entity.ItineraryItem, error) {
	items, err := collect(ctx, q, "load itinerary items",
		`SELECT id, destination_id, day, title FROM itinerary_items
		 WHERE destination_id = $1 ORDER BY position, id`,
		[]any{destinationID},
		func(row pgx.CollectableRow) (entity.ItineraryItem, error) {
			var it entity.ItineraryItem
			err := row.Scan(&it.ID, &it.DestinationID, &it.Day, &it.Title)
			it.Details = []entity.ItineraryDetail{}
			return it, err
		})
	if err != nil || len(items) == 0 {
		return items, err
	}

	details, err := collect(ctx, q, "load itinerary details",
		`SELECT d.id, d.itinerary_item_id, d.detail
		 FROM itinerary_details d
		 JOIN itinerary_items i ON i.id = d.itinerary_item_id
		 WHERE i.destination_id = $1
		 ORDER BY d.position, d.id`,
		[]any{destinationID},
		func(row pgx.CollectableRow) (entity.ItineraryDetail, error) {
			var d entity.ItineraryDetail
			err := row.Scan(&d.ID, &d.ItineraryItemID, &d.Detail)
			return d, err
		})
	if err != nil {
		return nil, err
	}

	index := make(map[int64]int, len(items))
	for i := range items {
		index[items[i].ID] = i
	}
	for _, d := range details {
		if i, ok := index[d.ItineraryItemID]; ok {
			items[i].Details = append(items[i].Details, d)
		}
	}
	return items, nil
}

func loadIncludes(ctx context.Context, q database.Querier, destinationID int64) ([]entity.Include, error) {
	return collect(ctx, q, "load includes",
		`SELECT id, destination_id, item FROM includes WHERE destination_id = $1 ORDER BY position, id`,
		[]any{destinationID},
		func(row pgx.CollectableRow) (entity.Include, error) {
			var v entity.Include
			err := row.Scan(&v.ID, &v.DestinationID, &v.Item)
			return v, err
		})
}

func loadExcludes(ctx context.Context, q database.Querier, destinationID int64) ([]entity.Exclude, error) {
	return collect(ctx, q, "load excludes",
		`SELECT id, destination_id, item FROM excludes WHERE destination_id = $1 ORDER BY position, id`,
		[]any{destinationID},
		func(row pgx.CollectableRow) (entity.Exclude, error) {
			var v entity.Exclude
			err := row.Scan(&v.ID, &v.DestinationID, &v.Item)
			return v, err
		})
}

func loadTips(ctx context.Context, q database.Querier, destinationID int64) ([]entity.Tip, error) {
	return collect(ctx, q, "load tips",
		`SELECT id, destination_id, tip FROM tips WHERE destination_id = $1 ORDER BY position, id`,
		[]any{destinationID},
		func(row pgx.CollectableRow) (entity.Tip, error) {
			var v entity.Tip
			err := row.Scan(&v.ID, &v.DestinationID, &v.Tip)
			return v, err
		})
}

func loadFaqs(ctx context.Context, q database.Querier, destinationID int64) ([]entity.Faq, error) {
	return collect(ctx, q, "load faqs",
		`SELECT id, destination_id, question, answer FROM faqs WHERE destination_id = $1 ORDER BY position, id`,
		[]any{destinationID},
		func(row pgx.CollectableRow) (entity.Faq, error) {
			var v entity.Faq
			err := row.Scan(&v.ID, &v.DestinationID, &v.Question, &v.Answer)
			return v, err
		})
}

func loadGallery(ctx context.Context, q database.Querier, destinationID int64) ([]entity.GalleryImage, error) {
	return collect(ctx, q, "load gallery images",
		`SELECT id, destination_id, image_url FROM gallery_images WHERE destination_id = $1 ORDER BY position, id`,
		[]any{destinationID},
		scanGalleryImage)
}

func scanGalleryImage(row pgx.CollectableRow) (entity.GalleryImage, error) {
	var v entity.GalleryImage
	err := row.Scan(&v.ID, &v.DestinationID, &v.ImageURL)
	return v, err
}

// attachGalleries loads gallery images for a page of roots in one query
func attachGalleries(ctx context.Context, q database.Querier, destinations []*entity.Destination) error {
	if len(destinations) == 0 {
		return nil
	}

	ids := make([]int64, len(destinations))
	byID := make(map[int64]*entity.Destination, len(destinations))
	for i, d := range destinations {
		ids[i] = d.ID
		d.GalleryImages = []entity.GalleryImage{}
		byID[d.ID] = d
	}

	images, err := collect(ctx, q, "load gallery images",
		`SELECT id, destination_id, image_url FROM gallery_images
		 WHERE destination_id = ANY($1) ORDER BY destination_id, position, id`,
		[]any{ids},
		scanGalleryImage)
	if err != nil {
		return err
	}

	for _, img := range images {
		if d, ok := byID[img.DestinationID]; ok {
			d.GalleryImages = append(d.GalleryImages, img)
		}
	}
	return nil
}

// ---------- child writes ----------

var destinationChildTables = map[string]bool{
	"itinerary_items": true,
	"includes":        true,
	"excludes":        true,
	"tips":            true,
	"faqs":            true,
	"gallery_images":  true,
}

// replaceChildren deletes every row of one owned collection
func replaceChildren(ctx context.Context, q database.Querier, table string, destinationID int64) error {
	if !destinationChildTables[table] {
		return fmt.Errorf("unknown child table %q", table)
	}
	if _, err := q.Exec(ctx, "DELETE FROM "+table+" WHERE destination_id = $1", destinationID); err != nil {
		return wrapPgError("clear "+table, err)
	}
	return nil
}

func insertItinerary(ctx context.Context, q database.Querier, destinationID int64, items []entity.ItineraryItem) error {
	for pos, item := range items {
		var itemID int64
		err := q.QueryRow(ctx,
			`INSERT INTO itinerary_items (destination_id, position, day, title) VALUES ($1, $2, $3, $4) RETURNING id`,
			destinationID, pos, item.Day, item.Title,
		).Scan(&itemID)
		if err != nil {
			return wrapPgError("insert itinerary item", err)
		}

		for dpos, detail := range item.Details {
			_, err := q.Exec(ctx,
				`INSERT INTO itinerary_details (itinerary_item_id, position, detail) VALUES ($1, $2, $3)`,
				itemID, dpos, detail.Detail,
			)
			if err != nil {
				return wrapPgError("insert itinerary detail", err)
			}
		}
	}
	return nil
}

func insertIncludes(ctx context.Context, q database.Querier, destinationID int64, items []entity.Include) error {
	for pos, v := range items {
		if _, err := q.Exec(ctx,
			`INSERT INTO includes (destination_id, position, item) VALUES ($1, $2, $3)`,
			destinationID, pos, v.Item); err != nil {
			return wrapPgError("insert include", err)
		}
	}
	return nil
}

func insertExcludes(ctx context.Context, q database.Querier, destinationID int64, items []entity.Exclude) error {
	for pos, v := range items {
		if _, err := q.Exec(ctx,
			`INSERT INTO excludes (destination_id, position, item) VALUES ($1, $2, $3)`,
			destinationID, pos, v.Item); err != nil {
			return wrapPgError("insert exclude", err)
		}
	}
	return nil
}

func insertTips(ctx context.Context, q database.Querier, destinationID int64, items []entity.Tip) error {
	for pos, v := range items {
		if _, err := q.Exec(ctx,
			`INSERT INTO tips (destination_id, position, tip) VALUES ($1, $2, $3)`,
			destinationID, pos, v.Tip); err != nil {
			return wrapPgError("insert tip", err)
		}
	}
	return nil
}

func insertFaqs(ctx context.Context, q database.Querier, destinationID int64, items []entity.Faq) error {
	for pos, v := range items {
		if _, err := q.Exec(ctx,
			`INSERT INTO faqs (destination_id, position, question, answer) VALUES ($1, $2, $3, $4)`,
			destinationID, pos, v.Question, v.Answer); err != nil {
			return wrapPgError("insert faq", err)
		}
	}
	return nil
}

func insertGallery(ctx context.Context, q database.Querier, destinationID int64, items []entity.GalleryImage) error {
	for pos, v := range items {
		if _, err := q.Exec(ctx,
			`INSERT INTO gallery_images (destination_id, position, image_url) VALUES ($1, $2, $3)`,
			destinationID, pos, v.ImageURL); err != nil {
			return wrapPgError("insert gallery image", err)
		}
	}
	return nil
}
