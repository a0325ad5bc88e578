package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsdesk/pkg/domain"
)

// FeedStatusRepository records fetch outcomes per feed url
type FeedStatusRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type feedStatusRow struct {
	Section     string       `db:"section"`
	URL         string       `db:"url"`
	Endpoint    string       `db:"endpoint"`
	ItemCount   int          `db:"item_count"`
	LastFetched sql.NullTime `db:"last_fetched"`
	ErrorCount  int          `db:"error_count"`
	LastError   string       `db:"last_error"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

// NewFeedStatusRepository creates a new feed status repository
func NewFeedStatusRepository(db *sqlx.DB) *FeedStatusRepository {
	return &FeedStatusRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// RecordSuccess stores a successful fetch, resetting the error counter
func (r *FeedStatusRepository) RecordSuccess(ctx context.Context, section, url, endpoint string, items int) error {
	now := r.now()
	query := `
		INSERT INTO feed_status (section, url, endpoint, item_count, last_fetched, error_count, last_error, updated_at)
		VALUES (?, ?, ?, ?, ?, 0, '', ?)
		ON CONFLICT(section, url) DO UPDATE SET
			endpoint = excluded.endpoint,
			item_count = excluded.item_count,
			last_fetched = excluded.last_fetched,
			error_count = 0,
			last_error = '',
			updated_at = excluded.updated_at
	`
	return r.exec(ctx, "record success", query, section, url, endpoint, items, now, now)
}

// RecordFailure increments the error counter and keeps the last error message
func (r *FeedStatusRepository) RecordFailure(ctx context.Context, section, url, errMsg string) error {
	query := `
		INSERT INTO feed_status (section, url, error_count, last_error, updated_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT(section, url) DO UPDATE SET
			error_count = feed_status.error_count + 1,
			last_error = excluded.last_error,
			updated_at = excluded.updated_at
	`
	return r.exec(ctx, "record failure", query, section, url, errMsg, r.now())
}

// List returns statuses ordered by section and url, empty section lists all
func (r *FeedStatusRepository) List(ctx context.Context, section string) ([]domain.FeedStatus, error) {
	qb := sq.Select("section", "url", "endpoint", "item_count", "last_fetched", "error_count", "last_error", "updated_at").
		From("feed_status").
		OrderBy("section", "url")
	if section != "" {
		qb = qb.Where(sq.Eq{"section": section})
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []feedStatusRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list feed status: %w", err)
	}

	res := make([]domain.FeedStatus, len(rows))
	for i, row := range rows {
		res[i] = row.toDomain()
	}
	return res, nil
}

// Failing returns statuses with at least minErrors consecutive failures, worst first
func (r *FeedStatusRepository) Failing(ctx context.Context, minErrors int) ([]domain.FeedStatus, error) {
	query, args, err := sq.Select("*").
		From("feed_status").
		Where(sq.GtOrEq{"error_count": minErrors}).
		OrderBy("error_count DESC", "section", "url").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build failing query: %w", err)
	}

	var rows []feedStatusRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list failing feeds: %w", err)
	}
	res := make([]domain.FeedStatus, len(rows))
	for i, row := range rows {
		res[i] = row.toDomain()
	}
	return res, nil
}

// Forget removes rows of feeds no longer present in the sections config and returns the number removed
func (r *FeedStatusRepository) Forget(ctx context.Context, sections map[string][]string) (int, error) {
	current, err := r.List(ctx, "")
	if err != nil {
		return 0, err
	}

	configured := make(map[[2]string]struct{})
	for section, urls := range sections {
		for _, u := range urls {
			configured[[2]string{section, u}] = struct{}{}
		}
	}

	removed := 0
	for _, st := range current {
		if _, ok := configured[[2]string{st.Section, st.URL}]; ok {
			continue
		}
		query, args, err := sq.Delete("feed_status").Where(sq.Eq{"section": st.Section, "url": st.URL}).ToSql()
		if err != nil {
			return removed, fmt.Errorf("build delete query: %w", err)
		}
		if err := r.exec(ctx, "forget feed", query, args...); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// exec runs a write, retrying on SQLite lock errors only
func (r *FeedStatusRepository) exec(ctx context.Context, op, query string, args ...any) error {
	return withRetry(ctx, op, func() error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	})
}

func (row feedStatusRow) toDomain() domain.FeedStatus {
	res := domain.FeedStatus{
		Section:    row.Section,
		URL:        row.URL,
		Endpoint:   row.Endpoint,
		ItemCount:  row.ItemCount,
		ErrorCount: row.ErrorCount,
		LastError:  row.LastError,
		UpdatedAt:  row.UpdatedAt,
	}
	if row.LastFetched.Valid {
		ts := row.LastFetched.Time
		res.LastFetched = &ts
	}
	return res
}
