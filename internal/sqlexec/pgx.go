// Copyright (c) 2025 nhdbstats
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import (
	"context"
	"fmt"
	"time"

	"nhdbstats/server/internal/games"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of *pgx.Conn and *pgxpool.Conn used by sessions.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ConnConnector opens a fresh pgx connection for every session.
type ConnConnector struct {
	config *pgx.ConnConfig
}

// NewConnConnector parses dsn once; connections are opened lazily by Connect.
func NewConnConnector(dsn string) (*ConnConnector, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	return &ConnConnector{config: cfg}, nil
}

// Connect dials a new connection. Closing the session closes the connection.
func (c *ConnConnector) Connect(ctx context.Context) (Session, error) {
	conn, err := pgx.ConnectConfig(ctx, c.config.Copy())
	if err != nil {
		return nil, err
	}
	return &pgSession{q: conn, close: conn.Close}, nil
}

// Ping opens a connection, pings the server and closes it again.
func (c *ConnConnector) Ping(ctx context.Context) error {
	conn, err := pgx.ConnectConfig(ctx, c.config.Copy())
	if err != nil {
		return err
	}
	defer conn.Close(context.WithoutCancel(ctx))
	return conn.Ping(ctx)
}

// Close is a no-op; ConnConnector holds no connections between sessions.
func (c *ConnConnector) Close() {}

// PoolConnector hands out connections from a pgxpool.Pool.
type PoolConnector struct {
	Pool *pgxpool.Pool
}

// NewPoolConnector creates the pool. Connections are established on demand.
func NewPoolConnector(ctx context.Context, dsn string) (*PoolConnector, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	return &PoolConnector{Pool: pool}, nil
}

// Connect acquires a pooled connection. Closing the session releases it.
func (p *PoolConnector) Connect(ctx context.Context) (Session, error) {
	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &pgSession{q: conn, close: func(context.Context) error {
		conn.Release()
		return nil
	}}, nil
}

func (p *PoolConnector) Ping(ctx context.Context) error { return p.Pool.Ping(ctx) }

func (p *PoolConnector) Close() { p.Pool.Close() }

type pgSession struct {
	q     querier
	close func(context.Context) error
}

func (s *pgSession) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &pgRows{rows: rows, typeMap: rows.Conn().TypeMap()}, nil
}

func (s *pgSession) Close(ctx context.Context) error { return s.close(ctx) }

type pgRows struct {
	rows    pgx.Rows
	typeMap *pgtype.Map
	index   map[string]int
	cur     pgRow
}

func (r *pgRows) Next() bool {
	if !r.rows.Next() {
		return false
	}
	fields := r.rows.FieldDescriptions()
	if r.index == nil {
		r.index = fieldIndex(fields)
	}
	r.cur = pgRow{fields: fields, index: r.index, values: r.rows.RawValues(), typeMap: r.typeMap}
	return true
}

func (r *pgRows) Row() games.Row { return &r.cur }
func (r *pgRows) Err() error     { return r.rows.Err() }
func (r *pgRows) Close()         { r.rows.Close() }

func fieldIndex(fields []pgconn.FieldDescription) map[string]int {
	index := make(map[string]int, len(fields))
	for i, fd := range fields {
		index[fd.Name] = i
	}
	return index
}

// pgRow decodes raw wire values of one row on demand using the connection's
// type map, so each column is scanned into exactly the Go type asked for.
type pgRow struct {
	fields  []pgconn.FieldDescription
	index   map[string]int
	values  [][]byte
	typeMap *pgtype.Map
}

func (r *pgRow) scan(column string, dst any) error {
	i, ok := r.index[column]
	if !ok {
		return fmt.Errorf("column %q not in result", column)
	}
	fd := r.fields[i]
	if err := r.typeMap.Scan(fd.DataTypeOID, fd.Format, r.values[i], dst); err != nil {
		return fmt.Errorf("scan column %q: %w", column, err)
	}
	return nil
}

func (r *pgRow) Text(column string) (*string, error) {
	var s *string
	err := r.scan(column, &s)
	return s, err
}

func (r *pgRow) TextArray(column string) (*[]string, error) {
	var a *[]string
	err := r.scan(column, &a)
	return a, err
}

func (r *pgRow) Int64(column string) (*int64, error) {
	var n *int64
	err := r.scan(column, &n)
	return n, err
}

func (r *pgRow) Int32(column string) (*int64, error) {
	var n *int64
	err := r.scan(column, &n)
	return n, err
}

func (r *pgRow) Timestamptz(column string) (*time.Time, error) {
	var ts *time.Time
	err := r.scan(column, &ts)
	return ts, err
}
