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

type SubscriptionRepository interface {
	Create(ctx context.Context, email string) (*entity.Subscription, error)
	FindByID(ctx context.Context, id int64) (*entity.Subscription, error)
	FindByEmail(ctx context.Context, email string) (*entity.Subscription, error)
	FindAll(ctx context.Context, page, limit int, isActive *bool) (*Page[*entity.Subscription], error)
	SetActive(ctx context.Context, id int64, active bool) (*entity.Subscription, error)
	Toggle(ctx context.Context, id int64) (*entity.Subscription, error)
}

type subscriptionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSubscriptionRepository(db database.PgxIface, log *zap.Logger) SubscriptionRepository {
	return &subscriptionRepository{
		db:  db,
		log: log.With(zap.String("repository", "subscription")),
	}
}

const subscriptionColumns = `id, email, is_active, created_at, updated_at`

func scanSubscription(row rowScanner) (*entity.Subscription, error) {
	var s entity.Subscription
	if err := row.Scan(&s.ID, &s.Email, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, email string) (*entity.Subscription, error) {
	subscription, err := scanSubscription(r.db.QueryRow(ctx,
		`INSERT INTO subscriptions (email) VALUES ($1) RETURNING `+subscriptionColumns, email))
	if err != nil {
		err = wrapPgError("insert subscription", err)
		if isConstraintViolation(err) {
			r.log.Warn("Email already subscribed", zap.String("email", email))
		} else {
			r.log.Error("Failed to create subscription", zap.Error(err), zap.String("email", email))
		}
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	r.log.Info("Subscription created", zap.Int64("subscription_id", subscription.ID))
	return subscription, nil
}

func (r *subscriptionRepository) FindByID(ctx context.Context, id int64) (*entity.Subscription, error) {
	return r.findOne(ctx, `id = $1`, id)
}

func (r *subscriptionRepository) FindByEmail(ctx context.Context, email string) (*entity.Subscription, error) {
	return r.findOne(ctx, `LOWER(email) = LOWER($1)`, email)
}

func (r *subscriptionRepository) findOne(ctx context.Context, where string, arg any) (*entity.Subscription, error) {
	subscription, err := scanSubscription(r.db.QueryRow(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE `+where, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find subscription", zap.Error(err), zap.Any("key", arg))
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return subscription, nil
}

func (r *subscriptionRepository) FindAll(ctx context.Context, page, limit int, isActive *bool) (*Page[*entity.Subscription], error) {
	where := ""
	args := []any{}
	if isActive != nil {
		where = ` WHERE is_active = $1`
		args = append(args, *isActive)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subscriptions`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count subscriptions", zap.Error(err))
		return nil, wrapPgError("count subscriptions", err)
	}

	var subscriptions []*entity.Subscription
	offset := (page - 1) * limit
	if int64(offset) < total {
		query := fmt.Sprintf(`SELECT %s FROM subscriptions%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
			subscriptionColumns, where, len(args)+1, len(args)+2)
		rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
		if err != nil {
			r.log.Error("Failed to list subscriptions", zap.Error(err))
			return nil, wrapPgError("list subscriptions", err)
		}
		subscriptions, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Subscription, error) {
			return scanSubscription(row)
		})
		if err != nil {
			return nil, fmt.Errorf("scan subscriptions: %w", err)
		}
	}

	return newPage(subscriptions, total, page, limit), nil
}

func (r *subscriptionRepository) SetActive(ctx context.Context, id int64, active bool) (*entity.Subscription, error) {
	return r.mutate(ctx, id, `is_active = $2`, active)
}

func (r *subscriptionRepository) Toggle(ctx context.Context, id int64) (*entity.Subscription, error) {
	return r.mutate(ctx, id, `is_active = NOT is_active`)
}

func (r *subscriptionRepository) mutate(ctx context.Context, id int64, set string, args ...any) (*entity.Subscription, error) {
	query := `UPDATE subscriptions SET ` + set + `, updated_at = NOW() WHERE id = $1 RETURNING ` + subscriptionColumns
	subscription, err := scanSubscription(r.db.QueryRow(ctx, query, append([]any{id}, args...)...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: subscription %d", apperror.ErrNotFound, id)
	}
	if err != nil {
		err = wrapPgError("update subscription", err)
		r.log.Error("Failed to update subscription", zap.Error(err), zap.Int64("subscription_id", id))
		return nil, fmt.Errorf("update subscription %d: %w", id, err)
	}

	r.log.Info("Subscription updated",
		zap.Int64("subscription_id", id),
		zap.Bool("is_active", subscription.IsActive),
	)
	return subscription, nil
}
