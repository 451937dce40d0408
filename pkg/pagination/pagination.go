// Package pagination carries page/per_page through the order listing.
package pagination

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params is a normalized page request.
type Params struct {
	Page    int
	PerPage int
}

// New clamps page and perPage into range. Zero values select the defaults.
func New(page, perPage int) *Params {
	p := &Params{Page: page, PerPage: perPage}
	p.Normalize()
	return p
}

// Normalize clamps the params in place.
func (p *Params) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PerPage < 1:
		p.PerPage = DefaultPerPage
	case p.PerPage > MaxPerPage:
		p.PerPage = MaxPerPage
	}
}

func (p *Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func (p *Params) Limit() int {
	return p.PerPage
}

// Info describes where a page sits in the full result set.
type Info struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// NewInfo computes page info for total rows.
func NewInfo(page, perPage int, total int64) *Info {
	totalPages := 0
	if perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return &Info{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// Page is one page of items.
type Page[T any] struct {
	Items []T `json:"items"`
	Info  *Info `json:"pagination"`
}

// NewPage never returns a nil Items slice so it encodes as [].
func NewPage[T any](items []T, info *Info) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Info: info}
}
