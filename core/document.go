package core

// Filter is a set of exact-match constraints applied to a document query.
// Values may be scalars or slices (a slice matches any of its members).
type Filter map[string]interface{}

// Clean drops keys whose value is empty: nil, "", or an empty slice.
// Empty values must never reach the backend as false constraints.
func (f Filter) Clean() Filter {
	cleaned := make(Filter, len(f))
	for key, val := range f {
		switch v := val.(type) {
		case nil:
			continue
		case string:
			if v == "" {
				continue
			}
		case []string:
			if len(v) == 0 {
				continue
			}
		case []interface{}:
			if len(v) == 0 {
				continue
			}
		}
		cleaned[key] = val
	}
	return cleaned
}

// Ordering is a single-field sort hint. Backends that cannot sort on the
// requested field skip it silently; a sort hint never fails a read.
type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	direction := "desc"
	if ord.Ascending {
		direction = "asc"
	}
	return ord.Field + " " + direction
}
