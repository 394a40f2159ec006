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

type BookingRepository interface {
	// Create inserts the booking row only and returns its id
	Create(ctx context.Context, booking *entity.Booking) (int64, error)
	CreateParticipant(ctx context.Context, participant *entity.BookingParticipant) (*entity.BookingParticipant, error)
	FindByID(ctx context.Context, id int64) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entity.Booking, error)
	GetPaginated(ctx context.Context, page, limit int, filter entity.BookingFilter) (*Page[*entity.Booking], error)
	// Update returns ErrInvalidTransition when patch.FromStatus no longer
	// matches the stored status
	Update(ctx context.Context, id int64, patch *entity.BookingPatch) error
	UpdateStatus(ctx context.Context, id int64, from, to entity.BookingStatus, bookingType *entity.BookingType) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

// display fields come from the joins and are never stored
const bookingSelect = `
	SELECT b.id, b.user_id, b.destination_id, b.status, b.booking_type, b.start_date, b.end_date,
	       b.num_people, b.total_price, b.special_requests, b.needs_flight, b.created_at, b.updated_at,
	       COALESCE(d.title, ''),
	       COALESCE(TRIM(u.first_name || ' ' || u.last_name), ''),
	       u.phone,
	       COALESCE(u.email, '')
	FROM bookings b
	LEFT JOIN destinations d ON d.id = b.destination_id
	LEFT JOIN users u ON u.id = b.user_id`

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.DestinationID,
		&b.Status,
		&b.BookingType,
		&b.StartDate,
		&b.EndDate,
		&b.NumPeople,
		&b.TotalPrice,
		&b.SpecialRequests,
		&b.NeedsFlight,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.DestinationName,
		&b.ContactName,
		&b.ContactPhone,
		&b.ContactEmail,
	)
	if err != nil {
		return nil, err
	}
	b.Participants = []entity.BookingParticipant{}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) (int64, error) {
	query := `
		INSERT INTO bookings (user_id, destination_id, status, booking_type, start_date, end_date,
		                      num_people, total_price, special_requests, needs_flight)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		booking.UserID,
		booking.DestinationID,
		string(booking.Status),
		string(booking.BookingType),
		booking.StartDate,
		booking.EndDate,
		booking.NumPeople,
		booking.TotalPrice,
		booking.SpecialRequests,
		booking.NeedsFlight,
	).Scan(&id)
	if err != nil {
		err = wrapPgError("insert booking", err)
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.Int64("user_id", booking.UserID),
			zap.Int64("destination_id", booking.DestinationID),
		)
		return 0, fmt.Errorf("create booking: %w", err)
	}

	r.log.Info("Booking created",
		zap.Int64("booking_id", id),
		zap.String("booking_type", string(booking.BookingType)),
	)
	return id, nil
}

func (r *bookingRepository) CreateParticipant(ctx context.Context, participant *entity.BookingParticipant) (*entity.BookingParticipant, error) {
	query := `
		INSERT INTO booking_participants (booking_id, full_name, age, document_type, document_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	created := *participant
	err := r.db.QueryRow(ctx, query,
		participant.BookingID,
		participant.FullName,
		participant.Age,
		participant.DocumentType,
		participant.DocumentNumber,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		err = wrapPgError("insert participant", err)
		if isConstraintViolation(err) {
			r.log.Warn("Duplicate participant document",
				zap.Int64("booking_id", participant.BookingID),
				zap.String("document_number", participant.DocumentNumber),
			)
		} else {
			r.log.Error("Failed to create participant", zap.Error(err), zap.Int64("booking_id", participant.BookingID))
		}
		return nil, fmt.Errorf("create participant: %w", err)
	}

	return &created, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx, bookingSelect+" WHERE b.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.Int64("booking_id", id))
		return nil, fmt.Errorf("find booking %d: %w", id, err)
	}

	participants, err := collect(ctx, r.db, "load participants",
		`SELECT id, booking_id, full_name, age, document_type, document_number, created_at
		 FROM booking_participants WHERE booking_id = $1 ORDER BY id`,
		[]any{id},
		func(row pgx.CollectableRow) (entity.BookingParticipant, error) {
			var p entity.BookingParticipant
			err := row.Scan(&p.ID, &p.BookingID, &p.FullName, &p.Age, &p.DocumentType, &p.DocumentNumber, &p.CreatedAt)
			return p, err
		})
	if err != nil {
		r.log.Error("Failed to load participants", zap.Error(err), zap.Int64("booking_id", id))
		return nil, fmt.Errorf("find booking %d: %w", id, err)
	}
	booking.Participants = participants

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.Booking, error) {
	bookings, err := r.list(ctx, bookingSelect+" WHERE b.user_id = $1 ORDER BY b.created_at DESC, b.id DESC", userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("find bookings of user %d: %w", userID, err)
	}
	return bookings, nil
}

func bookingWhere(filter entity.BookingFilter) (string, []any) {
	conds := []string{}
	args := []any{}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conds = append(conds, fmt.Sprintf("b.status = $%d", len(args)))
	}
	if filter.BookingType != nil {
		args = append(args, string(*filter.BookingType))
		conds = append(conds, fmt.Sprintf("b.booking_type = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *bookingRepository) GetPaginated(ctx context.Context, page, limit int, filter entity.BookingFilter) (*Page[*entity.Booking], error) {
	where, args := bookingWhere(filter)

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM bookings b"+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", wrapPgError("count bookings", err))
	}

	var bookings []*entity.Booking
	offset := (page - 1) * limit
	if int64(offset) < total {
		query := fmt.Sprintf("%s%s ORDER BY b.created_at DESC, b.id DESC LIMIT $%d OFFSET $%d",
			bookingSelect, where, len(args)+1, len(args)+2)
		var err error
		bookings, err = r.list(ctx, query, append(args, limit, offset)...)
		if err != nil {
			r.log.Error("Failed to list bookings",
				zap.Error(err),
				zap.Int("page", page),
				zap.Int("limit", limit),
			)
			return nil, fmt.Errorf("list bookings: %w", err)
		}
	}

	r.log.Debug("Bookings found",
		zap.Int("count", len(bookings)),
		zap.Int64("total", total),
	)
	return newPage(bookings, total, page, limit), nil
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapPgError("query bookings", err)
	}
	bookings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Booking, error) {
		return scanBooking(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*entity.Booking{}
	}
	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, id int64, patch *entity.BookingPatch) error {
	sets := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Status != nil {
		add("status", string(*patch.Status))
	}
	if patch.BookingType != nil {
		add("booking_type", string(*patch.BookingType))
	}
	if patch.StartDate != nil {
		add("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		add("end_date", *patch.EndDate)
	}
	if patch.NumPeople != nil {
		add("num_people", *patch.NumPeople)
	}
	if patch.TotalPrice != nil {
		add("total_price", *patch.TotalPrice)
	}
	if patch.SpecialRequests != nil {
		add("special_requests", *patch.SpecialRequests)
	}
	if patch.NeedsFlight != nil {
		add("needs_flight", *patch.NeedsFlight)
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	where := fmt.Sprintf("id = $%d", len(args))
	if patch.FromStatus != nil {
		args = append(args, string(*patch.FromStatus))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query := fmt.Sprintf("UPDATE bookings SET %s WHERE %s", strings.Join(sets, ", "), where)

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		err = wrapPgError("update booking", err)
		r.log.Error("Failed to update booking", zap.Error(err), zap.Int64("booking_id", id))
		return fmt.Errorf("update booking %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return r.missedUpdate(ctx, id, patch.FromStatus)
	}

	r.log.Info("Booking updated", zap.Int64("booking_id", id))
	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, from, to entity.BookingStatus, bookingType *entity.BookingType) error {
	return r.Update(ctx, id, &entity.BookingPatch{FromStatus: &from, Status: &to, BookingType: bookingType})
}

// missedUpdate tells a missing row apart from one whose status moved on
// between the caller's read and the conditional write.
func (r *bookingRepository) missedUpdate(ctx context.Context, id int64, from *entity.BookingStatus) error {
	if from == nil {
		return fmt.Errorf("%w: booking %d", apperror.ErrNotFound, id)
	}

	var current entity.BookingStatus
	err := r.db.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: booking %d", apperror.ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("read booking %d status: %w", id, err)
	}

	r.log.Warn("Booking status changed concurrently",
		zap.Int64("booking_id", id),
		zap.String("expected", string(*from)),
		zap.String("current", string(current)),
	)
	return fmt.Errorf("%w: booking %d is %s, expected %s", apperror.ErrInvalidTransition, id, current, *from)
}
