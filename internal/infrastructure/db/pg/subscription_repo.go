package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"opsbus/internal/domain"
	"opsbus/internal/domain/subscription"
)

const subscriptionColumns = `subscription_id, handler_type, event_types, is_active,
	target_url, config, created_at, updated_at`

type SubscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, s subscription.Subscription) (subscription.Subscription, error) {
	types, err := json.Marshal(s.EventTypes)
	if err != nil {
		return subscription.Subscription{}, fmt.Errorf("marshal event_types: %w", err)
	}
	config, err := marshalNullableJSONMap(s.Config)
	if err != nil {
		return subscription.Subscription{}, fmt.Errorf("marshal config: %w", err)
	}

	row := queryRow(ctx, r.db,
		`INSERT INTO event_subscriptions (subscription_id, handler_type, event_types, is_active, target_url, config)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+subscriptionColumns,
		s.ID, s.HandlerType, types, s.IsActive, nullStr(s.TargetURL), config,
	)

	return scanSubscription(row)
}

func (r *SubscriptionRepository) Update(ctx context.Context, s subscription.Subscription) (subscription.Subscription, error) {
	types, err := json.Marshal(s.EventTypes)
	if err != nil {
		return subscription.Subscription{}, fmt.Errorf("marshal event_types: %w", err)
	}
	config, err := marshalNullableJSONMap(s.Config)
	if err != nil {
		return subscription.Subscription{}, fmt.Errorf("marshal config: %w", err)
	}

	row := queryRow(ctx, r.db,
		`UPDATE event_subscriptions
		    SET handler_type = $2,
		        event_types = $3,
		        is_active = $4,
		        target_url = $5,
		        config = $6,
		        updated_at = NOW()
		  WHERE subscription_id = $1
		 RETURNING `+subscriptionColumns,
		s.ID, s.HandlerType, types, s.IsActive, nullStr(s.TargetURL), config,
	)

	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return subscription.Subscription{}, subscriptionNotFound()
	}
	return sub, err
}

func (r *SubscriptionRepository) SetActive(ctx context.Context, id string, isActive bool) (subscription.Subscription, error) {
	row := queryRow(ctx, r.db,
		`UPDATE event_subscriptions
		    SET is_active = $2,
		        updated_at = NOW()
		  WHERE subscription_id = $1
		 RETURNING `+subscriptionColumns,
		id, isActive,
	)

	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return subscription.Subscription{}, subscriptionNotFound()
	}
	return sub, err
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id string) (subscription.Subscription, error) {
	row := queryRow(ctx, r.db,
		`SELECT `+subscriptionColumns+` FROM event_subscriptions WHERE subscription_id = $1`,
		id,
	)

	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return subscription.Subscription{}, subscriptionNotFound()
	}
	return sub, err
}

func (r *SubscriptionRepository) List(ctx context.Context) ([]subscription.Subscription, error) {
	rows, err := query(ctx, r.db,
		`SELECT `+subscriptionColumns+`
		   FROM event_subscriptions
		  ORDER BY subscription_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSubscriptions(rows)
}

func (r *SubscriptionRepository) ListActiveByEventType(ctx context.Context, eventType string) ([]subscription.Subscription, error) {
	rows, err := query(ctx, r.db,
		`SELECT `+subscriptionColumns+`
		   FROM event_subscriptions
		  WHERE is_active
		    AND event_types @> jsonb_build_array($1::text)
		  ORDER BY subscription_id`,
		eventType,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSubscriptions(rows)
}

func collectSubscriptions(rows *sql.Rows) ([]subscription.Subscription, error) {
	var res []subscription.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, sub)
	}
	return res, rows.Err()
}

func scanSubscription(row rowScanner) (subscription.Subscription, error) {
	var (
		s         subscription.Subscription
		typesRaw  []byte
		targetURL sql.NullString
		configRaw []byte
	)

	if err := row.Scan(
		&s.ID, &s.HandlerType, &typesRaw, &s.IsActive,
		&targetURL, &configRaw, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return subscription.Subscription{}, err
	}

	s.TargetURL = targetURL.String

	if len(typesRaw) > 0 {
		if err := json.Unmarshal(typesRaw, &s.EventTypes); err != nil {
			return subscription.Subscription{}, fmt.Errorf("unmarshal event_types: %w", err)
		}
	}
	if len(configRaw) > 0 {
		if err := json.Unmarshal(configRaw, &s.Config); err != nil {
			return subscription.Subscription{}, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	return s, nil
}

func subscriptionNotFound() error {
	return &domain.DomainError{
		Code:       domain.ErrorCodeNotFound,
		Message:    "subscription not found",
		HTTPStatus: http.StatusNotFound,
	}
}
