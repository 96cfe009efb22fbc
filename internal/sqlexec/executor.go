// Package sqlexec runs games queries against PostgreSQL and returns the
// projected result set as JSON text.
//
// Key features include:
//   - One session per execution, released on every exit path
//   - Positional bound parameters, never interpolated into the query text
//   - All-or-nothing projection: a bad row discards the whole result
//   - Pluggable connectors (fresh pgx connection or pgxpool)
package sqlexec

import (
	"bytes"
	"context"
	"encoding/json"

	apperrors "nhdbstats/server/internal/errors"
	"nhdbstats/server/internal/games"
)

// Rows iterates over query results. Row is valid until the next call to Next.
type Rows interface {
	Next() bool
	Row() games.Row
	Err() error
	Close()
}

// Session is one database connection scoped to a single execution.
type Session interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close(ctx context.Context) error
}

// Connector opens sessions.
type Connector interface {
	Connect(ctx context.Context) (Session, error)
}

// Executor executes games queries through a Connector.
type Executor struct {
	connector Connector
}

// New creates an Executor that acquires one session per call from c.
func New(c Connector) *Executor {
	return &Executor{connector: c}
}

// Execute runs query with args bound positionally and returns a JSON array
// with one object per row. Zero rows yield "[]".
func (e *Executor) Execute(ctx context.Context, query string, args ...any) (string, error) {
	sess, err := e.connector.Connect(ctx)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ConnectFailed, "open database session", err)
	}
	defer sess.Close(context.WithoutCancel(ctx))

	rows, err := sess.Query(ctx, query, args...)
	if err != nil {
		return "", apperrors.Wrap(apperrors.QueryFailed, "run query", err)
	}
	defer rows.Close()

	docs := make([]games.Document, 0)
	for rows.Next() {
		doc, err := games.Project(rows.Row())
		if err != nil {
			return "", err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return "", apperrors.Wrap(apperrors.QueryFailed, "read rows", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(docs); err != nil {
		return "", apperrors.Wrap(apperrors.SerializationFailed, "encode result set", err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
