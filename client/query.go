package client

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

// rangeBound holds the two independently clearable sides of a range filter.
// An empty string means that side is absent.
type rangeBound struct {
	min string
	max string
}

// QueryState owns the canonical description of which subset of a resource is
// currently requested: page, page size, free-text search, and structured
// filters (scalar exact-match or numeric range).
//
// QueryState is not safe for concurrent use; ListController guards it with
// its own mutex.
type QueryState struct {
	page      int
	pageSize  int
	search    string
	scalars   map[string]string
	ranges    map[string]rangeBound
	pageCount int // last known page count, for SetPage bounds checking
}

// NewQueryState creates a QueryState with default page and page size.
func NewQueryState() *QueryState {
	return &QueryState{
		page:      defaultPage,
		pageSize:  defaultPageSize,
		scalars:   make(map[string]string),
		ranges:    make(map[string]rangeBound),
		pageCount: 1,
	}
}

// Page returns the current 1-based page.
func (q *QueryState) Page() int { return q.page }

// PageSize returns the current page size.
func (q *QueryState) PageSize() int { return q.pageSize }

// Search returns the current free-text search term.
func (q *QueryState) Search() string { return q.search }

// PageCount returns the last known page count.
func (q *QueryState) PageCount() int { return q.pageCount }

// SetSearch updates the search term and resets to page 1.
func (q *QueryState) SetSearch(term string) {
	term = strings.TrimSpace(term)
	if term == q.search {
		return
	}
	q.search = term
	q.page = 1
}

// SetFilter sets a scalar (exact-match) filter. An empty value deletes the
// key entirely; it is never serialized as an empty string. Any change resets
// to page 1.
func (q *QueryState) SetFilter(key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		if _, ok := q.scalars[key]; !ok {
			return
		}
		delete(q.scalars, key)
		q.page = 1
		return
	}
	if q.scalars[key] == value {
		return
	}
	q.scalars[key] = value
	q.page = 1
}

// SetRangeMin sets the lower bound of a range filter. An empty value clears
// the bound; the key disappears entirely once both bounds are absent.
func (q *QueryState) SetRangeMin(key, value string) {
	q.setRangeSide(key, strings.TrimSpace(value), true)
}

// SetRangeMax sets the upper bound of a range filter. An empty value clears
// the bound; the key disappears entirely once both bounds are absent.
func (q *QueryState) SetRangeMax(key, value string) {
	q.setRangeSide(key, strings.TrimSpace(value), false)
}

func (q *QueryState) setRangeSide(key, value string, isMin bool) {
	bound := q.ranges[key]
	if isMin {
		if bound.min == value {
			return
		}
		bound.min = value
	} else {
		if bound.max == value {
			return
		}
		bound.max = value
	}

	if bound.min == "" && bound.max == "" {
		delete(q.ranges, key)
	} else {
		q.ranges[key] = bound
	}
	q.page = 1
}

// SetPage moves to page n. Out-of-range requests against the last known page
// count are ignored rather than clamped, to avoid surprising page jumps.
func (q *QueryState) SetPage(n int) {
	if n < 1 || n > q.pageCount {
		return
	}
	q.page = n
}

// SetPageSize changes the page size and resets to page 1; the old page index
// is meaningless under a new page size.
func (q *QueryState) SetPageSize(n int) {
	if n < 1 || n == q.pageSize {
		return
	}
	q.pageSize = n
	q.page = 1
}

// UpdatePageCount records the page count reported by the last list response.
// Used for SetPage bounds checking.
func (q *QueryState) UpdatePageCount(n int) {
	if n < 1 {
		n = 1
	}
	q.pageCount = n
	if q.page > n {
		q.page = n
	}
}

// Params serializes the current state to a flat query-parameter mapping:
// page, page_size, search, key for scalars, key_min/key_max for ranges.
// Absent values produce no parameter at all.
func (q *QueryState) Params() url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.page))
	params.Set("page_size", strconv.Itoa(q.pageSize))
	if q.search != "" {
		params.Set("search", q.search)
	}
	for key, value := range q.scalars {
		params.Set(key, value)
	}
	for key, bound := range q.ranges {
		if bound.min != "" {
			params.Set(key+"_min", bound.min)
		}
		if bound.max != "" {
			params.Set(key+"_max", bound.max)
		}
	}
	return params
}
