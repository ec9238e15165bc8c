package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventboard/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestBuildWhere(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		filter     domain.EventFilter
		wantClause string
		wantArgs   []any
	}{
		{
			name:       "no filters",
			filter:     domain.EventFilter{},
			wantClause: "",
			wantArgs:   []any{},
		},
		{
			name:       "ids only",
			filter:     domain.EventFilter{IDs: []int64{3, 7}},
			wantClause: "WHERE id = ANY($1)",
			wantArgs:   []any{pq.Array([]int64{3, 7})},
		},
		{
			name:       "keyword lowercased and wrapped",
			filter:     domain.EventFilter{Query: "Sommer"},
			wantClause: "WHERE (LOWER(title) LIKE $1 OR LOWER(COALESCE(category, '')) LIKE $1 OR LOWER(COALESCE(organizer, '')) LIKE $1 OR LOWER(COALESCE(location, '')) LIKE $1)",
			wantArgs:   []any{"%sommer%"},
		},
		{
			name:       "location substring",
			filter:     domain.EventFilter{Location: "Berlin"},
			wantClause: "WHERE LOWER(COALESCE(location, '')) LIKE $1",
			wantArgs:   []any{"%berlin%"},
		},
		{
			name:       "category exact keeps case",
			filter:     domain.EventFilter{Category: "Musik"},
			wantClause: "WHERE category = $1",
			wantArgs:   []any{"Musik"},
		},
		{
			name:       "open-ended start",
			filter:     domain.EventFilter{Start: timePtr(start)},
			wantClause: "WHERE event_date >= $1",
			wantArgs:   []any{start},
		},
		{
			name:       "open-ended end",
			filter:     domain.EventFilter{End: timePtr(end)},
			wantClause: "WHERE event_date <= $1",
			wantArgs:   []any{end},
		},
		{
			name: "all filters combine with AND in order",
			filter: domain.EventFilter{
				IDs:      []int64{1, 2},
				Query:    "Fest",
				Location: "Park",
				Category: "Kultur",
				Start:    timePtr(start),
				End:      timePtr(end),
			},
			wantClause: "WHERE id = ANY($1) AND " +
				"(LOWER(title) LIKE $2 OR LOWER(COALESCE(category, '')) LIKE $2 OR LOWER(COALESCE(organizer, '')) LIKE $2 OR LOWER(COALESCE(location, '')) LIKE $2) AND " +
				"LOWER(COALESCE(location, '')) LIKE $3 AND " +
				"category = $4 AND " +
				"event_date >= $5 AND " +
				"event_date <= $6",
			wantArgs: []any{pq.Array([]int64{1, 2}), "%fest%", "%park%", "Kultur", start, end},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := buildWhere(tt.filter)
			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "event_date",
		"location", "category", "organizer", "image_url", "created_at",
	})
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	date1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date2 := time.Date(2025, 7, 15, 18, 30, 0, 0, time.UTC)
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		filter  domain.EventFilter
		mock    func(mock sqlmock.Sqlmock)
		want    []*domain.Event
		wantErr bool
	}{
		{
			name:   "no filters returns all ordered by date",
			filter: domain.EventFilter{},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, description, event_date, location, category, organizer, image_url, created_at\s+FROM events\s+ORDER BY event_date, id`).
					WillReturnRows(eventRows().
						AddRow(int64(1), "Sommerfest", "Open air", date1, "Stadtpark", "Kultur", "Verein", "/img/1.jpg", created).
						AddRow(int64(2), "Lesung", nil, date2, nil, nil, nil, nil, created))
			},
			want: []*domain.Event{
				{
					ID: 1, Title: "Sommerfest", Description: strPtr("Open air"),
					EventDate: date1, Location: strPtr("Stadtpark"), Category: strPtr("Kultur"),
					Organizer: strPtr("Verein"), ImageURL: strPtr("/img/1.jpg"), CreatedAt: created,
				},
				{ID: 2, Title: "Lesung", EventDate: date2, CreatedAt: created},
			},
		},
		{
			name:   "id allow-list binds as array",
			filter: domain.EventFilter{IDs: []int64{3, 7}},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE id = ANY\(\$1\)\s+ORDER BY event_date, id`).
					WithArgs(pq.Array([]int64{3, 7})).
					WillReturnRows(eventRows().
						AddRow(int64(3), "Flohmarkt", nil, date1, nil, nil, nil, nil, created))
			},
			want: []*domain.Event{
				{ID: 3, Title: "Flohmarkt", EventDate: date1, CreatedAt: created},
			},
		},
		{
			name: "combined keyword and range binds every value",
			filter: domain.EventFilter{
				Query: "markt",
				Start: timePtr(date1),
				End:   timePtr(date2),
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE \(LOWER\(title\) LIKE \$1 OR .+\) AND event_date >= \$2 AND event_date <= \$3`).
					WithArgs("%markt%", date1, date2).
					WillReturnRows(eventRows())
			},
			want: []*domain.Event{},
		},
		{
			name:   "empty result is success",
			filter: domain.EventFilter{Category: "Sport"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE category = \$1`).
					WithArgs("Sport").
					WillReturnRows(eventRows())
			},
			want: []*domain.Event{},
		},
		{
			name:   "db error",
			filter: domain.EventFilter{},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.List(ctx, tt.filter)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	created := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr bool
	}{
		{
			name: "success commits and returns assigned id",
			event: &domain.Event{
				Title:     "Sommerfest",
				EventDate: date,
				Location:  strPtr("Stadtpark"),
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO events \(title, description, event_date, location, category, organizer, image_url\)`).
					WithArgs("Sommerfest", nil, date, strPtr("Stadtpark"), nil, nil, nil).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), created))
				mock.ExpectCommit()
			},
			wantID: 42,
		},
		{
			name: "insert failure rolls back, no partial row",
			event: &domain.Event{
				Title:     "Lesung",
				EventDate: date,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: true,
		},
		{
			name: "begin failure",
			event: &domain.Event{
				Title:     "Lesung",
				EventDate: date,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			id, err := repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, id)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.Equal(t, created, tt.event.CreatedAt)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestScanEvent_NormalizesRows(t *testing.T) {
	// A driver configured for a non-UTC session zone must not leak into the
	// wire shape.
	berlin := time.FixedZone("CEST", 2*60*60)
	date := time.Date(2025, 6, 1, 12, 0, 0, 0, berlin)
	created := time.Date(2025, 5, 1, 8, 0, 0, 0, berlin)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WillReturnRows(eventRows().
		AddRow(int64(5), "Stadtlauf", nil, date, nil, "Sport", nil, nil, created))

	repo := NewEventRepository(db)
	events, err := repo.List(context.Background(), domain.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, int64(5), e.ID)
	assert.Equal(t, "Stadtlauf", e.Title)
	assert.Nil(t, e.Description)
	assert.Nil(t, e.Location)
	assert.Nil(t, e.Organizer)
	assert.Nil(t, e.ImageURL)
	require.NotNil(t, e.Category)
	assert.Equal(t, "Sport", *e.Category)
	assert.Equal(t, time.UTC, e.EventDate.Location())
	assert.True(t, e.EventDate.Equal(date))
	assert.Equal(t, time.UTC, e.CreatedAt.Location())
	assert.True(t, e.CreatedAt.Equal(created))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	repo := NewEventRepository(db)
	require.NoError(t, repo.Ping(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
