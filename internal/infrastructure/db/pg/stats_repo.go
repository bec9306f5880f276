package pg

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"opsbus/internal/domain/event"
	"opsbus/internal/domain/stats"
)

type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) ListEvents(ctx context.Context, f stats.EventFilter, after string, limit int) ([]event.Event, error) {
	conds := []string{"event_id > $1"}
	args := []any{after}

	addCond := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Type != "" {
		addCond("event_type = $%d", f.Type)
	}
	if f.EntityType != "" {
		addCond("entity_type = $%d", f.EntityType)
	}
	if f.EntityID != "" {
		addCond("entity_id = $%d", f.EntityID)
	}
	if f.OrgID != "" {
		addCond("org_id = $%d", f.OrgID)
	}
	if f.Status != "" {
		addCond("status = $%d", string(f.Status))
	}
	if f.UserID != "" {
		args = append(args, f.UserID)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(actor_user_id = $%d OR target_user_ids @> jsonb_build_array($%d::text))", n, n,
		))
	}

	args = append(args, limit)
	q := fmt.Sprintf(
		`SELECT `+eventColumns+`
		   FROM events
		  WHERE %s
		  ORDER BY event_id
		  LIMIT $%d`,
		strings.Join(conds, " AND "), len(args),
	)

	rows, err := query(ctx, r.db, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func (r *StatsRepository) GetEventStats(ctx context.Context, w stats.Window) (stats.EventStats, error) {
	var from, to any
	if w.From != nil {
		from = *w.From
	}
	if w.To != nil {
		to = *w.To
	}

	var res stats.EventStats
	if err := queryRow(ctx, r.db,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'PROCESSED'),
		        COUNT(*) FILTER (WHERE status = 'FAILED')
		   FROM events
		  WHERE ($1::timestamptz IS NULL OR created_at >= $1::timestamptz)
		    AND ($2::timestamptz IS NULL OR created_at <= $2::timestamptz)`,
		from, to,
	).Scan(&res.Total, &res.Processed, &res.Failed); err != nil {
		return stats.EventStats{}, err
	}

	rows, err := query(ctx, r.db,
		`SELECT event_type, COUNT(*)
		   FROM events
		  WHERE ($1::timestamptz IS NULL OR created_at >= $1::timestamptz)
		    AND ($2::timestamptz IS NULL OR created_at <= $2::timestamptz)
		  GROUP BY event_type
		  ORDER BY event_type`,
		from, to,
	)
	if err != nil {
		return stats.EventStats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var tc stats.TypeCount
		if err := rows.Scan(&tc.EventType, &tc.Count); err != nil {
			return stats.EventStats{}, err
		}
		res.ByType = append(res.ByType, tc)
	}
	return res, rows.Err()
}
