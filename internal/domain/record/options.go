package record

// SortOrder orders listed cases by date.
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// Defaults applied to ListOptions.
const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// ListOptions provides filtering, ordering and paging for listing cases.
type ListOptions struct {
	Query string
	Sort  SortOrder
	Page  int
	Limit int
}

// Normalized returns a copy with defaults applied.
func (o ListOptions) Normalized() ListOptions {
	if o.Sort != SortAsc {
		o.Sort = SortDesc
	}
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	return o
}

// CasePage is one page of listed cases.
type CasePage struct {
	Items      []Case `json:"items"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}
