// Copyright (c) 2025 nhdbstats
// Licensed under the MIT License. See LICENSE file in the project root for details.

package games

import (
	"fmt"
	"time"

	apperrors "nhdbstats/server/internal/errors"
)

// TimestampLayout renders timestamptz values. Instants are converted to UTC
// first so identical instants always produce identical text.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Row gives typed, by-name access to the current database row.
// A nil pointer result means the column is SQL NULL.
type Row interface {
	Text(column string) (*string, error)
	TextArray(column string) (*[]string, error)
	Int64(column string) (*int64, error)
	// Int32 reads a 32-bit integer column through a 64-bit target.
	Int32(column string) (*int64, error)
	Timestamptz(column string) (*time.Time, error)
}

// Decode extracts col from row. It fails with a DataIntegrity fault when the
// row cannot supply the column, when the type has no strategy, or when a
// non-nullable column is NULL.
func Decode(row Row, col Column) (Value, error) {
	v, err := decodeByType(row, col)
	if err != nil {
		return Value{}, err
	}
	if v.IsNull() && !col.Nullable {
		return Value{}, apperrors.Integrity(col.Name, fmt.Sprintf("got null on non-nullable %s column", col.Type), nil)
	}
	return v, nil
}

func decodeByType(row Row, col Column) (Value, error) {
	switch col.Type {
	case Text:
		s, err := row.Text(col.Name)
		if err != nil {
			return Value{}, readFault(col, err)
		}
		if s == nil {
			return Null(), nil
		}
		return TextValue(*s), nil

	case TextArray:
		arr, err := row.TextArray(col.Name)
		if err != nil {
			return Value{}, readFault(col, err)
		}
		if arr == nil {
			return Null(), nil
		}
		items := make([]Value, len(*arr))
		for i, s := range *arr {
			items[i] = TextValue(s)
		}
		return Value{kind: KindArray, items: items}, nil

	case Int64:
		n, err := row.Int64(col.Name)
		if err != nil {
			return Value{}, readFault(col, err)
		}
		if n == nil {
			return Null(), nil
		}
		return NumberValue(*n), nil

	case Int32:
		n, err := row.Int32(col.Name)
		if err != nil {
			return Value{}, readFault(col, err)
		}
		if n == nil {
			return Null(), nil
		}
		return NumberValue(*n), nil

	case TimestampTZ:
		ts, err := row.Timestamptz(col.Name)
		if err != nil {
			return Value{}, readFault(col, err)
		}
		if ts == nil {
			return Null(), nil
		}
		return TextValue(ts.UTC().Format(TimestampLayout)), nil
	}
	return Value{}, apperrors.Integrity(col.Name, fmt.Sprintf("no decode strategy for column type %d", int(col.Type)), nil)
}

func readFault(col Column, err error) error {
	return apperrors.Integrity(col.Name, fmt.Sprintf("read %s column", col.Type), err)
}
