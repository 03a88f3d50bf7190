package pagination

// DefaultLimit is the storefront page size when a limit is not provided.
const DefaultLimit = 12

// MaxLimit caps how many rows any listing can request.
const MaxLimit = 100

// Params holds page/limit pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Meta is the pagination block returned alongside listings.
type Meta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

// Normalize enforces positive page numbers and the default/maximum limits.
func Normalize(p Params) Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the number of rows to skip. Never negative.
func (p Params) Offset() int {
	page := p.Page
	if page <= 0 {
		page = 1
	}
	return (page - 1) * p.Limit
}

// MetaFor computes the pagination metadata for a total row count, with
// pages = ceil(total/limit).
func MetaFor(p Params, total int64) Meta {
	p = Normalize(p)
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{
		Total: total,
		Page:  p.Page,
		Pages: pages,
	}
}
