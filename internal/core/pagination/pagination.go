package pagination

const defaultMaxResults = 50

// Filter is a struct that contains the pagination filter
type Filter struct {
	MaxResults uint  // Max number of results to return on each call.
	Page       *uint // Page number to return. First is 1. Nil or 0 means the first page.
}

// NewFilter creates a new filter
func NewFilter(maxResults *uint, page *uint) *Filter {
	f := &Filter{
		MaxResults: defaultMaxResults,
		Page:       page,
	}
	if maxResults != nil && *maxResults > 0 {
		f.MaxResults = *maxResults
	}
	return f
}

// GetLimit returns the limit for the query
func (f *Filter) GetLimit() uint {
	if f == nil || f.MaxResults == 0 {
		return defaultMaxResults
	}
	return f.MaxResults
}

// GetOffset returns the offset for the query
func (f *Filter) GetOffset() uint {
	if f == nil || f.Page == nil || *f.Page == 0 {
		return 0
	}
	return (*f.Page - 1) * f.GetLimit()
}
