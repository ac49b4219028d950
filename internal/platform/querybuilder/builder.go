package querybuilder

import (
	"net/url"
	"strconv"
	"strings"
)

// Builder assembles the canonical parameter encoding for the listing
// endpoint. Pure: no side effects, deterministic output for equal input.
type Builder struct {
	search   string
	filters  []filterEntry
	sortKey  string
	sortDir  SortDirection
	page     int
	pageSize int
}

type filterEntry struct {
	field string
	value string
}

func Listing() *Builder {
	return &Builder{page: 1, pageSize: 20}
}

func (b *Builder) Search(text string) *Builder {
	b.search = strings.TrimSpace(text)
	return b
}

func (b *Builder) Filter(field, value string) *Builder {
	b.filters = append(b.filters, filterEntry{field: strings.TrimSpace(field), value: value})
	return b
}

func (b *Builder) Filters(filters Filters) *Builder {
	for field, value := range filters {
		b.Filter(field, value)
	}
	return b
}

// Sort sets the sort key. An empty direction falls back to the naming
// convention (ascending for name, descending otherwise).
func (b *Builder) Sort(key string, direction SortDirection) *Builder {
	b.sortKey = strings.TrimSpace(key)
	b.sortDir = direction
	return b
}

func (b *Builder) Page(page, size int) *Builder {
	b.page = page
	b.pageSize = size
	return b
}

// Values produces the query parameters. Filters with empty values are
// omitted; page and page_size are always present; sort parameters appear only
// when a sort key is selected.
func (b *Builder) Values() url.Values {
	values := url.Values{}

	if b.search != "" {
		values.Set("search", b.search)
	}

	for _, entry := range b.filters {
		if entry.field == "" || strings.TrimSpace(entry.value) == "" {
			continue
		}
		values.Set(entry.field, entry.value)
	}

	if b.sortKey != "" {
		direction := b.sortDir
		if direction == "" {
			direction = DirectionFor(b.sortKey)
		}
		values.Set("sort_by", b.sortKey)
		values.Set("sort_order", string(direction))
	}

	values.Set("page", strconv.Itoa(b.page))
	values.Set("page_size", strconv.Itoa(b.pageSize))

	return values
}

func (b *Builder) Encode() string {
	return b.Values().Encode()
}

// FromQuery encodes a full Query in one call.
func FromQuery(q Query) *Builder {
	b := Listing().
		Search(q.Text).
		Filters(q.Filters).
		Sort(q.SortKey, q.SortDirection)
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = 20
	}
	return b.Page(page, size)
}
