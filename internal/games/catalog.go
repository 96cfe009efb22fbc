// Copyright (c) 2025 nhdbstats
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package games projects rows of the v_ascended view into JSON documents.
// A fixed column catalog describes one ascended game; Decode converts a single
// column of a row into a Value and Project assembles a whole Document. The
// catalog is the only process-wide state and is never mutated.
package games

// ColumnType is the declared database type of a catalog column.
type ColumnType int

const (
	Text ColumnType = iota
	TextArray
	Int64
	Int32
	TimestampTZ

	// columnTypeCount must stay last.
	columnTypeCount
)

func (t ColumnType) String() string {
	switch t {
	case Text:
		return "varchar"
	case TextArray:
		return "varchar[]"
	case Int64:
		return "int8"
	case Int32:
		return "int4"
	case TimestampTZ:
		return "timestamptz"
	}
	return "unknown"
}

// Column describes one field of an ascended game record.
type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
}

var columns = [...]Column{
	{Name: "server", Type: Text},
	{Name: "variant", Type: Text},
	{Name: "version", Type: Text},
	{Name: "name", Type: Text},
	{Name: "role", Type: Text},
	{Name: "race", Type: Text},
	{Name: "gender", Type: Text},
	{Name: "align", Type: Text},
	{Name: "points", Type: Int64},
	{Name: "dumplog", Type: Text, Nullable: true},
	{Name: "turns", Type: Int64},
	{Name: "realtime", Type: Int64, Nullable: true},
	{Name: "starttime_raw", Type: Int64, Nullable: true},
	{Name: "endtime_raw", Type: Int64, Nullable: true},
	{Name: "endtime", Type: TimestampTZ},
	{Name: "deathlev", Type: Int32},
	{Name: "maxlvl", Type: Int32},
	{Name: "hp", Type: Int32},
	{Name: "maxhp", Type: Int32},
	{Name: "conducts", Type: TextArray, Nullable: true},
	{Name: "death", Type: Text},
}

// Columns returns the catalog in declaration order. The slice is a copy.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns[:])
	return out
}
