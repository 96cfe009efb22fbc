package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *E
		want string
	}{
		{
			name: "kind and message",
			err:  New(QueryFailed, "query rejected"),
			want: "query_failed: query rejected",
		},
		{
			name: "wrapped cause",
			err:  Wrap(ConnectFailed, "open connection", stderrors.New("dial tcp: refused")),
			want: "connect_failed: open connection: dial tcp: refused",
		},
		{
			name: "integrity names the column",
			err:  Integrity("points", "null on non-nullable column", nil),
			want: `data_integrity: column "points": null on non-nullable column`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	cause := stderrors.New("boom")
	err := fmt.Errorf("handler: %w", Integrity("hp", "scan failed", cause))

	if got := KindOf(err); got != DataIntegrity {
		t.Errorf("KindOf() = %q, want %q", got, DataIntegrity)
	}
	if got := ColumnOf(err); got != "hp" {
		t.Errorf("ColumnOf() = %q, want %q", got, "hp")
	}
	if !stderrors.Is(err, cause) {
		t.Errorf("errors.Is did not reach the wrapped cause")
	}
	if got := KindOf(stderrors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
}
