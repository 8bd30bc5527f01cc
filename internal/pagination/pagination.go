package pagination

const (
	// DefaultPageSize matches the client default page window
	DefaultPageSize = 3
	// MaxPageSize is the server-enforced ceiling; larger requests are clamped
	MaxPageSize = 50
)

// PageRequest carries the caller's cursor/page-size pair. An empty cursor
// means "start from the beginning".
type PageRequest struct {
	Cursor   string `json:"cursor,omitempty" query:"cursor"`
	PageSize int    `json:"page_size,omitempty" query:"pageSize"`
}

// Normalize clamps PageSize into [1, MaxPageSize]. Out-of-range values are
// adjusted, never rejected.
func (r PageRequest) Normalize() PageRequest {
	if r.PageSize <= 0 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	return r
}

// Page is one bounded window of a larger ordered collection. An empty
// NextCursor signals there are no further pages.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// Slice trims an over-fetched window down to one page. Repositories fetch
// pageSize+1 rows; the extra row only proves another page exists, and the
// next cursor is derived from the last item actually returned.
func Slice[T any](items []T, pageSize int, cursorOf func(T) string) Page[T] {
	page := Page[T]{Items: items}
	if len(items) > pageSize {
		page.Items = items[:pageSize]
		page.NextCursor = cursorOf(page.Items[pageSize-1])
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page
}
