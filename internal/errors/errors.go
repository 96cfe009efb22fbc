// Package errors defines typed faults with categories for request-level reporting.
// Every failure produced while running a games query carries a machine-readable
// Kind so the HTTP layer can pick a status code and a log line without parsing
// messages. Data-integrity faults additionally name the offending column.
//
// The package supports wrapping underlying errors while keeping the kind
// reachable through errors.As from any wrapping depth.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// ConnectFailed indicates the database could not be reached or refused the session.
	ConnectFailed Kind = "connect_failed"
	// QueryFailed indicates the database rejected the query or failed while streaming rows.
	QueryFailed Kind = "query_failed"
	// DataIntegrity indicates a row violated the declared column catalog.
	DataIntegrity Kind = "data_integrity"
	// SerializationFailed indicates the result set could not be encoded to JSON.
	SerializationFailed Kind = "serialization_failed"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	// Column is set for DataIntegrity faults.
	Column  string
	Err     error
}

func (e *E) Error() string {
	prefix := string(e.Kind)
	if e.Column != "" {
		prefix = fmt.Sprintf("%s: column %q", e.Kind, e.Column)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Integrity reports a broken data contract on column.
func Integrity(column, msg string, err error) *E {
	return &E{Kind: DataIntegrity, Message: msg, Column: column, Err: err}
}

// KindOf returns the kind of the first *E in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// ColumnOf returns the column attached to a fault in err's chain.
func ColumnOf(err error) string {
	var e *E
	if stderrors.As(err, &e) {
		return e.Column
	}
	return ""
}
