package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"opsbus/internal/domain"
	"opsbus/internal/domain/event"
)

const eventColumns = `event_id, event_type, source_subgraph, entity_type, entity_id,
	org_id, actor_user_id, target_user_ids, payload, metadata,
	status, created_at, processed_at`

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e event.Event) (event.Event, error) {
	targets, err := json.Marshal(e.TargetUserIDs)
	if err != nil {
		return event.Event{}, fmt.Errorf("marshal target_user_ids: %w", err)
	}
	payload, err := marshalJSONMap(e.Payload)
	if err != nil {
		return event.Event{}, fmt.Errorf("marshal payload: %w", err)
	}
	metadata, err := marshalNullableJSONMap(e.Metadata)
	if err != nil {
		return event.Event{}, fmt.Errorf("marshal metadata: %w", err)
	}

	if _, err := exec(ctx, r.db,
		`INSERT INTO events (event_id, event_type, source_subgraph, entity_type, entity_id,
		                     org_id, actor_user_id, target_user_ids, payload, metadata,
		                     status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.Type, e.SourceSubgraph, e.EntityType, e.EntityID,
		nullStr(e.OrgID), nullStr(e.ActorUserID), targets, payload, metadata,
		string(e.Status), e.CreatedAt,
	); err != nil {
		return event.Event{}, err
	}

	return e, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (event.Event, error) {
	row := queryRow(ctx, r.db,
		`SELECT `+eventColumns+` FROM events WHERE event_id = $1`,
		id,
	)

	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return event.Event{}, eventNotFound()
	}
	return e, err
}

func (r *EventRepository) MarkProcessing(ctx context.Context, id string) error {
	res, err := exec(ctx, r.db,
		`UPDATE events SET status = $2 WHERE event_id = $1`,
		id, string(event.StatusProcessing),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return eventNotFound()
	}
	return nil
}

func (r *EventRepository) MarkProcessed(ctx context.Context, id string) (event.Event, error) {
	row := queryRow(ctx, r.db,
		`UPDATE events
		    SET status = $2,
		        processed_at = NOW()
		  WHERE event_id = $1
		 RETURNING `+eventColumns,
		id, string(event.StatusProcessed),
	)

	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return event.Event{}, eventNotFound()
	}
	return e, err
}

// MarkFailed merges errs into the metadata "errors" list under a row lock,
// so concurrent processing attempts never overwrite each other's entries.
// Callers run it inside a transaction.
func (r *EventRepository) MarkFailed(ctx context.Context, id string, errs []string) (event.Event, error) {
	var raw []byte
	err := queryRow(ctx, r.db,
		`SELECT metadata FROM events WHERE event_id = $1 FOR UPDATE`,
		id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return event.Event{}, eventNotFound()
	}
	if err != nil {
		return event.Event{}, err
	}

	metadata := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &metadata); err != nil {
			return event.Event{}, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}

	merged := appendErrors(metadata, errs)
	out, err := json.Marshal(merged)
	if err != nil {
		return event.Event{}, fmt.Errorf("marshal metadata: %w", err)
	}

	row := queryRow(ctx, r.db,
		`UPDATE events
		    SET status = $2,
		        metadata = $3,
		        processed_at = NOW()
		  WHERE event_id = $1
		 RETURNING `+eventColumns,
		id, string(event.StatusFailed), out,
	)

	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return event.Event{}, eventNotFound()
	}
	return e, err
}

func (r *EventRepository) ResetForReplay(ctx context.Context, id string) (event.Event, error) {
	row := queryRow(ctx, r.db,
		`UPDATE events
		    SET status = $2,
		        processed_at = NULL
		  WHERE event_id = $1
		 RETURNING `+eventColumns,
		id, string(event.StatusPending),
	)

	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return event.Event{}, eventNotFound()
	}
	return e, err
}

func appendErrors(metadata map[string]any, errs []string) map[string]any {
	existing := make([]any, 0, len(errs))
	if prev, ok := metadata["errors"].([]any); ok {
		existing = append(existing, prev...)
	}
	for _, e := range errs {
		existing = append(existing, e)
	}
	metadata["errors"] = existing
	return metadata
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (event.Event, error) {
	var (
		e           event.Event
		status      string
		orgID       sql.NullString
		actorUserID sql.NullString
		targetsRaw  []byte
		payloadRaw  []byte
		metadataRaw []byte
		processedAt sql.NullTime
	)

	if err := row.Scan(
		&e.ID, &e.Type, &e.SourceSubgraph, &e.EntityType, &e.EntityID,
		&orgID, &actorUserID, &targetsRaw, &payloadRaw, &metadataRaw,
		&status, &e.CreatedAt, &processedAt,
	); err != nil {
		return event.Event{}, err
	}

	e.Status = event.Status(status)
	e.OrgID = orgID.String
	e.ActorUserID = actorUserID.String
	if processedAt.Valid {
		t := processedAt.Time
		e.ProcessedAt = &t
	}

	if len(targetsRaw) > 0 {
		if err := json.Unmarshal(targetsRaw, &e.TargetUserIDs); err != nil {
			return event.Event{}, fmt.Errorf("unmarshal target_user_ids: %w", err)
		}
	}
	if len(payloadRaw) > 0 {
		if err := json.Unmarshal(payloadRaw, &e.Payload); err != nil {
			return event.Event{}, fmt.Errorf("unmarshal payload: %w", err)
		}
	}
	if len(metadataRaw) > 0 {
		if err := json.Unmarshal(metadataRaw, &e.Metadata); err != nil {
			return event.Event{}, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}

	return e, nil
}

func marshalJSONMap(m map[string]any) ([]byte, error) {
	if m == nil {
		return []byte(`{}`), nil
	}
	return json.Marshal(m)
}

func marshalNullableJSONMap(m map[string]any) (any, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func eventNotFound() error {
	return &domain.DomainError{
		Code:       domain.ErrorCodeNotFound,
		Message:    "event not found",
		HTTPStatus: http.StatusNotFound,
	}
}
