// Package gamestest provides in-memory rows for exercising the games projector
// without a database.
package gamestest

import (
	"fmt"
	"time"
)

// MapRow is a games.Row backed by a map. A nil entry is SQL NULL; a missing
// key behaves like a column absent from the result.
type MapRow map[string]any

func (r MapRow) lookup(column string) (any, error) {
	v, ok := r[column]
	if !ok {
		return nil, fmt.Errorf("column %q not in result", column)
	}
	return v, nil
}

func (r MapRow) Text(column string) (*string, error) {
	v, err := r.lookup(column)
	if err != nil || v == nil {
		return nil, err
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("column %q: cannot scan %T into string", column, v)
	}
	return &s, nil
}

func (r MapRow) TextArray(column string) (*[]string, error) {
	v, err := r.lookup(column)
	if err != nil || v == nil {
		return nil, err
	}
	arr, ok := v.([]string)
	if !ok {
		return nil, fmt.Errorf("column %q: cannot scan %T into []string", column, v)
	}
	out := append([]string{}, arr...)
	return &out, nil
}

func (r MapRow) Int64(column string) (*int64, error) {
	return r.integer(column)
}

func (r MapRow) Int32(column string) (*int64, error) {
	return r.integer(column)
}

func (r MapRow) integer(column string) (*int64, error) {
	v, err := r.lookup(column)
	if err != nil || v == nil {
		return nil, err
	}
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	default:
		return nil, fmt.Errorf("column %q: cannot scan %T into int64", column, v)
	}
	return &n, nil
}

func (r MapRow) Timestamptz(column string) (*time.Time, error) {
	v, err := r.lookup(column)
	if err != nil || v == nil {
		return nil, err
	}
	ts, ok := v.(time.Time)
	if !ok {
		return nil, fmt.Errorf("column %q: cannot scan %T into time.Time", column, v)
	}
	return &ts, nil
}

// AscendedRow returns a complete, valid row for a sample ascension.
func AscendedRow() MapRow {
	return MapRow{
		"server":        "nh",
		"variant":       "nh",
		"version":       "3.6.6",
		"name":          "Alice",
		"role":          "Val",
		"race":          "Hum",
		"gender":        "Fem",
		"align":         "Law",
		"points":        int64(1000000),
		"dumplog":       nil,
		"turns":         int64(5000),
		"realtime":      int64(3600),
		"starttime_raw": int64(0),
		"endtime_raw":   int64(3600),
		"endtime":       time.Date(2021, time.March, 14, 15, 9, 26, 535000000, time.UTC),
		"deathlev":      int32(1),
		"maxlvl":        int32(30),
		"hp":            int32(10),
		"maxhp":         int32(10),
		"conducts":      []string{"foodless", "illiterate"},
		"death":         "ascended",
	}
}
