package view

// Filter selects rows whose field matches any of its values. Multiple
// filters on different fields are conjunctive; values within one filter are
// alternatives.
type Filter struct {
	Field  string
	Values []string
}

// Sort orders rows by a single field. Rows with no value for the field sort
// last in either direction.
type Sort struct {
	Field     string
	Direction string // "asc" or "desc"
}

// Criteria is the full view state over a table: a search term, the active
// filters, and the sort key
type Criteria struct {
	Search  string
	Filters []Filter
	Sort    *Sort
}

// SetFilter replaces the filter on a field with a single value
func (c *Criteria) SetFilter(field, value string) {
	c.RemoveFilter(field)
	c.Filters = append(c.Filters, Filter{Field: field, Values: []string{value}})
}

// ToggleFilter adds a value to the field's filter, or removes it if already
// present. A filter left with no values is dropped.
func (c *Criteria) ToggleFilter(field, value string) {
	for i, f := range c.Filters {
		if f.Field != field {
			continue
		}

		for j, v := range f.Values {
			if v == value {
				c.Filters[i].Values = append(f.Values[:j:j], f.Values[j+1:]...)

				if len(c.Filters[i].Values) == 0 {
					c.RemoveFilter(field)
				}

				return
			}
		}

		c.Filters[i].Values = append(f.Values, value)

		return
	}

	c.Filters = append(c.Filters, Filter{Field: field, Values: []string{value}})
}

// RemoveFilter drops the filter on a field
func (c *Criteria) RemoveFilter(field string) {
	for i, f := range c.Filters {
		if f.Field == field {
			c.Filters = append(c.Filters[:i:i], c.Filters[i+1:]...)

			return
		}
	}
}

// SetSort replaces the sort key
func (c *Criteria) SetSort(field, direction string) {
	if direction != "desc" {
		direction = "asc"
	}

	c.Sort = &Sort{Field: field, Direction: direction}
}

// Reset clears search, filters, and sort
func (c *Criteria) Reset() {
	c.Search = ""
	c.Filters = nil
	c.Sort = nil
}
