package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"eventboard/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = "id, title, description, event_date, location, category, organizer, image_url, created_at"

// buildWhere folds the supplied filter predicates into a WHERE clause and a
// matching positional-args slice. Every bound value is a parameter; filter
// content never appears in the SQL text. The returned clause is empty when
// no predicate is set.
func buildWhere(f domain.EventFilter) (string, []any) {
	conds := []string{}
	args := []any{}
	n := 0
	if len(f.IDs) > 0 {
		args = append(args, pq.Array(f.IDs))
		n++
		conds = append(conds, fmt.Sprintf("id = ANY($%d)", n))
	}
	if f.Query != "" {
		args = append(args, "%"+strings.ToLower(f.Query)+"%")
		n++
		conds = append(conds, fmt.Sprintf(
			"(LOWER(title) LIKE $%d OR LOWER(COALESCE(category, '')) LIKE $%d OR LOWER(COALESCE(organizer, '')) LIKE $%d OR LOWER(COALESCE(location, '')) LIKE $%d)",
			n, n, n, n))
	}
	if f.Location != "" {
		args = append(args, "%"+strings.ToLower(f.Location)+"%")
		n++
		conds = append(conds, fmt.Sprintf("LOWER(COALESCE(location, '')) LIKE $%d", n))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		n++
		conds = append(conds, fmt.Sprintf("category = $%d", n))
	}
	if f.Start != nil {
		args = append(args, *f.Start)
		n++
		conds = append(conds, fmt.Sprintf("event_date >= $%d", n))
	}
	if f.End != nil {
		args = append(args, *f.End)
		n++
		conds = append(conds, fmt.Sprintf("event_date <= $%d", n))
	}
	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// List returns all events matching the filter, ordered by event_date with id
// as the tie-break (insertion order for identical timestamps).
func (r *eventRepository) List(ctx context.Context, f domain.EventFilter) ([]*domain.Event, error) {
	where, args := buildWhere(f)
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		%s
		ORDER BY event_date, id
	`, eventColumns, where)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Create inserts the event inside its own transaction; id and created_at come
// back from storage defaults. The commit completes before Create returns, so
// a success is durable and a failure leaves no partial row.
func (r *eventRepository) Create(ctx context.Context, e *domain.Event) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	query := `
		INSERT INTO events (title, description, event_date, location, category, organizer, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, query,
		e.Title, e.Description, e.EventDate, e.Location, e.Category, e.Organizer, e.ImageURL,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return e.ID, nil
}

// Ping verifies storage connectivity for the health probe.
func (r *eventRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEvent normalizes one storage-native row into the canonical Event shape:
// nullable columns become pointers and timestamps are converted to UTC. All
// read paths go through here so the wire shape never depends on driver quirks.
func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var desc, loc, cat, org, img sql.NullString
	err := row.Scan(
		&e.ID, &e.Title, &desc, &e.EventDate,
		&loc, &cat, &org, &img, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.EventDate = e.EventDate.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	if desc.Valid {
		e.Description = &desc.String
	}
	if loc.Valid {
		e.Location = &loc.String
	}
	if cat.Valid {
		e.Category = &cat.String
	}
	if org.Valid {
		e.Organizer = &org.String
	}
	if img.Valid {
		e.ImageURL = &img.String
	}
	return e, nil
}
