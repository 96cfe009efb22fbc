package games

// Project decodes every catalog column of row. The first fault is returned
// as-is and no partial document is produced.
func Project(row Row) (Document, error) {
	doc := make(Document, len(columns))
	for _, col := range columns {
		v, err := Decode(row, col)
		if err != nil {
			return nil, err
		}
		doc[col.Name] = v
	}
	return doc, nil
}
