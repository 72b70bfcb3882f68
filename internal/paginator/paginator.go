// Package paginator splits an ordered collection into fixed-size pages.
//
// Requested page numbers come straight from the query string: anything that is not a
// positive integer means the first page, and numbers past the end clamp to the last page.
package paginator

import "strconv"

const DefaultPerPage = 10

type Paginator struct {
	count   int
	perPage int
}

// New describes a collection of count items shown perPage at a time.
// A non-positive perPage falls back to DefaultPerPage.
func New(count, perPage int) Paginator {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if count < 0 {
		count = 0
	}
	return Paginator{count: count, perPage: perPage}
}

func (p Paginator) Count() int {
	return p.count
}

// NumPages is at least 1: an empty collection has one empty page.
func (p Paginator) NumPages() int {
	if p.count == 0 {
		return 1
	}
	return (p.count + p.perPage - 1) / p.perPage
}

// Page resolves a raw page number.
func (p Paginator) Page(raw string) Page {
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		number = 1
	}
	if last := p.NumPages(); number > last {
		number = last
	}
	return p.page(number)
}

func (p Paginator) page(number int) Page {
	offset := (number - 1) * p.perPage
	limit := p.perPage
	if rest := p.count - offset; rest < limit {
		limit = rest
	}
	return Page{
		Number:   number,
		NumPages: p.NumPages(),
		Count:    p.count,
		Offset:   offset,
		Limit:    limit,
	}
}

// Page is the metadata of one resolved page. Limit is the number of items on it.
type Page struct {
	Number   int
	NumPages int
	Count    int
	Offset   int
	Limit    int
}

func (pg Page) HasNext() bool {
	return pg.Number < pg.NumPages
}

func (pg Page) HasPrevious() bool {
	return pg.Number > 1
}

func (pg Page) HasOtherPages() bool {
	return pg.HasNext() || pg.HasPrevious()
}

func (pg Page) NextPageNumber() int {
	if !pg.HasNext() {
		return pg.Number
	}
	return pg.Number + 1
}

func (pg Page) PreviousPageNumber() int {
	if !pg.HasPrevious() {
		return pg.Number
	}
	return pg.Number - 1
}

// PageRange lists every page number, for rendering page links.
func (pg Page) PageRange() []int {
	pages := make([]int, pg.NumPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Slice paginates an in-memory slice.
func Slice[T any](items []T, raw string, perPage int) (Page, []T) {
	pg := New(len(items), perPage).Page(raw)
	return pg, items[pg.Offset : pg.Offset+pg.Limit]
}
