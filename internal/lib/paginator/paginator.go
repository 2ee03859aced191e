// Package paginator splits a counted result set into fixed-size pages and
// resolves user supplied page numbers leniently.
package paginator

import "strconv"

type Page struct {
	Number      int  `json:"number"`
	NumPages    int  `json:"num_pages"`
	PerPage     int  `json:"per_page"`
	Count       int  `json:"count"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NumPages never returns less than 1, so an empty result still has one page.
func NumPages(count, perPage int) int {
	if perPage <= 0 || count <= 0 {
		return 1
	}
	return (count + perPage - 1) / perPage
}

// Resolve maps a raw page parameter onto an existing page. A missing or
// non-numeric value selects the first page and anything out of range selects
// the last one.
func Resolve(raw string, count, perPage int) Page {
	numPages := NumPages(count, perPage)

	number, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		number = 1
	case number < 1 || number > numPages:
		number = numPages
	}

	return Page{
		Number:      number,
		NumPages:    numPages,
		PerPage:     perPage,
		Count:       count,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}
