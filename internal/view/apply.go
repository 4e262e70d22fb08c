package view

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tablerail/tablerail/internal/store"
)

// rangePattern recognizes filter values like "18-25" (inclusive bounds) and
// "36+" (open upper bound)
var rangePattern = regexp.MustCompile(`^(\d+)(?:-(\d+)|\+)$`)

var collator = collate.New(language.Und, collate.Loose)

// Apply evaluates the criteria over the rows and returns a new, ordered
// slice. The input is never mutated; calling Apply twice with the same
// arguments returns the same result.
func Apply(rows []store.Row, crit Criteria, searchFields []string) []store.Row {
	out := make([]store.Row, 0, len(rows))

	term := strings.ToLower(strings.TrimSpace(crit.Search))

	for _, row := range rows {
		if !matchesSearch(row, term, searchFields) {
			continue
		}

		if !matchesFilters(row, crit.Filters) {
			continue
		}

		out = append(out, row)
	}

	if crit.Sort != nil && crit.Sort.Field != "" {
		sortRows(out, *crit.Sort)
	}

	return out
}

// matchesSearch does a case-insensitive substring match over the search
// fields. An empty term matches everything.
func matchesSearch(row store.Row, term string, fields []string) bool {
	if term == "" {
		return true
	}

	for _, field := range fields {
		value, ok := row[field]
		if !ok || value == nil {
			continue
		}

		if strings.Contains(strings.ToLower(stringify(value)), term) {
			return true
		}
	}

	return false
}

// matchesFilters requires every filter to match; within one filter any value
// suffices
func matchesFilters(row store.Row, filters []Filter) bool {
	for _, f := range filters {
		if len(f.Values) == 0 {
			continue
		}

		matched := false

		for _, value := range f.Values {
			if matchesValue(row[f.Field], value) {
				matched = true

				break
			}
		}

		if !matched {
			return false
		}
	}

	return true
}

// matchesValue checks one row value against one filter value. Range patterns
// apply to numeric fields, array fields match by membership, and everything
// else compares stringified so 18 matches "18".
func matchesValue(rowValue any, filterValue string) bool {
	if rowValue == nil {
		return false
	}

	if m := rangePattern.FindStringSubmatch(filterValue); m != nil {
		n, ok := toFloat(rowValue)
		if !ok {
			return false
		}

		min, _ := strconv.ParseFloat(m[1], 64)
		if n < min {
			return false
		}

		if m[2] == "" {
			return true
		}

		max, _ := strconv.ParseFloat(m[2], 64)

		return n <= max
	}

	switch arr := rowValue.(type) {
	case []any:
		for _, item := range arr {
			if fmt.Sprint(item) == filterValue {
				return true
			}
		}

		return false
	case []string:
		for _, item := range arr {
			if item == filterValue {
				return true
			}
		}

		return false
	}

	return fmt.Sprint(rowValue) == filterValue
}

// sortRows orders in place by one field. Missing and nil values go last
// regardless of direction; ties keep their incoming order.
func sortRows(rows []store.Row, key Sort) {
	desc := key.Direction == "desc"

	sort.SliceStable(rows, func(i, j int) bool {
		a, aok := rows[i][key.Field]
		b, bok := rows[j][key.Field]

		aok = aok && a != nil
		bok = bok && b != nil

		if !aok {
			return false
		}

		if !bok {
			return true
		}

		cmp := compareValues(a, b)
		if desc {
			return cmp > 0
		}

		return cmp < 0
	})
}

func compareValues(a, b any) int {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}

	return collator.CompareString(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}

	return 0, false
}

// stringify renders a value for searching, flattening arrays
func stringify(value any) string {
	switch v := value.(type) {
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}

		return strings.Join(parts, " ")
	case []string:
		return strings.Join(v, " ")
	default:
		return fmt.Sprint(v)
	}
}
