package server

// Query is a fixed games query. Its SQL takes the variant as $1 and the row
// cap as $2.
type Query struct {
	Name string
	SQL  string
}

var (
	// AscendedQuery lists ascensions of the configured variant.
	AscendedQuery = Query{
		Name: "ascended",
		SQL: `
		SELECT *
		FROM v_ascended
		WHERE variant = $1
		LIMIT $2`,
	}

	// RealtimeQuery lists each player's fastest ascension by wall-clock
	// duration, fastest first.
	RealtimeQuery = Query{
		Name: "realtime",
		SQL: `
		SELECT *
		FROM (
			SELECT DISTINCT ON (name) *
			FROM v_ascended
			WHERE variant = $1 AND realtime > 0
			ORDER BY name, realtime ASC
		) t
		ORDER BY realtime ASC
		LIMIT $2`,
	}
)

// QueryByName returns the fixed query with the given name.
func QueryByName(name string) (Query, bool) {
	for _, q := range []Query{AscendedQuery, RealtimeQuery} {
		if q.Name == name {
			return q, true
		}
	}
	return Query{}, false
}
