//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package retail

// TopPerGroup returns the best row of each group, with groups in the order
// they first appear. better reports whether a outranks b.
func TopPerGroup[T any](rows []T, group func(T) string, better func(a, b T) bool) []T {
	index := make(map[string]int)
	var top []T

	for _, row := range rows {
		key := group(row)
		i, ok := index[key]
		if !ok {
			index[key] = len(top)
			top = append(top, row)
			continue
		}
		if better(row, top[i]) {
			top[i] = row
		}
	}
	return top
}
