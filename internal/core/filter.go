// Package core holds the domain rules of the receipt dashboard: the
// receipt document, the list filter contract, and the edit-form
// derived-field computation. It is free of I/O on purpose.
package core

import (
	"net/url"
	"strconv"
)

// Filter field names as used in query parameters and Set.
const (
	FieldStartDate = "startDate"
	FieldEndDate   = "endDate"
	FieldUser      = "user"
	FieldPage      = "page"
	FieldLimit     = "limit"
)

// PageSizes are the only accepted values for Filter.Limit.
var PageSizes = []int{25, 50, 100}

// Filter is the full state the receipt list is keyed on. Page is 1-based.
type Filter struct {
	StartDate string
	EndDate   string
	User      string
	Page      int
	Limit     int
}

// DefaultFilter returns the initial list state: first page, smallest page
// size, no filters.
func DefaultFilter() Filter {
	return Filter{Page: 1, Limit: PageSizes[0]}
}

// Set updates a single field by name. Changing any field other than the
// page resets the page to 1; that reset is the invariant every fetch
// cycle depends on. Unknown fields are ignored.
func (f *Filter) Set(field, value string) {
	switch field {
	case FieldStartDate:
		f.StartDate = value
	case FieldEndDate:
		f.EndDate = value
	case FieldUser:
		f.User = value
	case FieldLimit:
		if n, err := strconv.Atoi(value); err == nil {
			f.Limit = ClampLimit(n)
		}
	case FieldPage:
		if n, err := strconv.Atoi(value); err == nil && n >= 1 {
			f.Page = n
		}
		return
	default:
		return
	}
	f.Page = 1
}

// ClampLimit maps any requested page size onto the whitelist, falling
// back to the default size.
func ClampLimit(n int) int {
	for _, s := range PageSizes {
		if n == s {
			return n
		}
	}
	return PageSizes[0]
}

// Normalize repairs out-of-range pagination values in place.
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	f.Limit = ClampLimit(f.Limit)
}

// Values serializes the filter into query parameters for the listing
// endpoint. Empty text filters are omitted entirely: the backend must
// never see startDate="" as a real filter.
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.StartDate != "" {
		v.Set(FieldStartDate, f.StartDate)
	}
	if f.EndDate != "" {
		v.Set(FieldEndDate, f.EndDate)
	}
	if f.User != "" {
		v.Set(FieldUser, f.User)
	}
	v.Set(FieldPage, strconv.Itoa(f.Page))
	v.Set(FieldLimit, strconv.Itoa(f.Limit))
	return v
}

// ExportValues serializes only the three textual filters for the Excel
// export endpoint. Pagination is never forwarded to an export.
func (f Filter) ExportValues() url.Values {
	v := url.Values{}
	if f.StartDate != "" {
		v.Set(FieldStartDate, f.StartDate)
	}
	if f.EndDate != "" {
		v.Set(FieldEndDate, f.EndDate)
	}
	if f.User != "" {
		v.Set(FieldUser, f.User)
	}
	return v
}

// TotalPages computes ceil(total/limit) for a non-negative total.
func (f Filter) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + f.Limit - 1) / f.Limit
}

// PrevPage returns the previous page number, clamped at 1.
func (f Filter) PrevPage() int {
	if f.Page <= 1 {
		return 1
	}
	return f.Page - 1
}

// NextPage returns the next page number, clamped at the last page for the
// given total so the UI never issues an out-of-range request.
func (f Filter) NextPage(total int) int {
	last := f.TotalPages(total)
	if last < 1 {
		last = 1
	}
	if f.Page >= last {
		return last
	}
	return f.Page + 1
}
