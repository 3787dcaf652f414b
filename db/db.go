package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rqlite/gorqlite"
)

func New(conn *gorqlite.Connection) *Queries {
	return &Queries{
		conn: conn,
	}
}

type Queries struct {
	conn *gorqlite.Connection
}

// SearchLogEntry records a single search request.
type SearchLogEntry struct {
	ID          string
	User        string
	Query       string
	ResultCount int64
	DurationMs  int64
	CreatedAt   time.Time
}

// SearchLogPut stores the entry. If the entry has no ID, one is created.
func (q *Queries) SearchLogPut(ctx context.Context, entry SearchLogEntry) (id string, err error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	stmt := gorqlite.ParameterizedStatement{
		Query:     `insert into search_log (id, username, query, result_count, duration_ms, created_at) values (?, ?, ?, ?, ?, ?)`,
		Arguments: []any{entry.ID, entry.User, entry.Query, entry.ResultCount, entry.DurationMs, entry.CreatedAt.UnixMilli()},
	}
	if _, err = q.conn.WriteOneParameterizedContext(ctx, stmt); err != nil {
		return entry.ID, fmt.Errorf("failed to insert search log entry: %w", err)
	}
	return entry.ID, nil
}

// SearchLogList returns the most recent searches made by the user, newest first.
func (q *Queries) SearchLogList(ctx context.Context, user string, limit int) (entries []SearchLogEntry, err error) {
	stmt := gorqlite.ParameterizedStatement{
		Query: `select id, username, query, result_count, duration_ms, created_at
from search_log
where username = ?
order by created_at desc
limit ?`,
		Arguments: []any{user, limit},
	}
	result, err := q.conn.QueryOneParameterizedContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	for result.Next() {
		var e SearchLogEntry
		var createdAt int64
		if err = result.Scan(&e.ID, &e.User, &e.Query, &e.ResultCount, &e.DurationMs, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		entries = append(entries, e)
	}
	return entries, nil
}

// SearchLogDelete removes all entries for the user.
func (q *Queries) SearchLogDelete(ctx context.Context, user string) (err error) {
	stmt := gorqlite.ParameterizedStatement{
		Query:     `delete from search_log where username = ?`,
		Arguments: []any{user},
	}
	_, err = q.conn.WriteOneParameterizedContext(ctx, stmt)
	return err
}
