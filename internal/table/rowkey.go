package table

import "fmt"

// RowKey derives the stable identity of a row. Keys must be unique within the
// current data source; duplicates are tolerated but confuse selection.
type RowKey[T any] func(row T) string

// FieldKey derives keys from a field path, resolved like Column.DataIndex.
func FieldKey[T any](field string) RowKey[T] {
	return func(row T) string {
		v, ok := lookupPath(row, field)
		if !ok {
			return ""
		}
		switch key := v.(type) {
		case string:
			return key
		case fmt.Stringer:
			return key.String()
		default:
			return fmt.Sprint(v)
		}
	}
}

func (k RowKey[T]) keys(rows []T) []string {
	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = k(row)
	}
	return keys
}
