package feed

import (
	"strconv"
	"strings"

	"blogicum/internal/models"
)

// Page is one window of an ordered post listing.
type Page struct {
	Posts       []*models.Post `json:"posts"`
	Number      int            `json:"number"`
	NumPages    int            `json:"num_pages"`
	Count       int64          `json:"count"`
	PageSize    int            `json:"page_size"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

// ParsePageNumber reads a 1-indexed page number; anything unusable means page 1.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// paginator resolves a requested page once the total is known.
type paginator struct {
	size      int
	requested int

	number   int
	numPages int
	count    int64
}

func newPaginator(size, requested int) *paginator {
	if size < 1 {
		size = 1
	}
	return &paginator{size: size, requested: requested, number: 1, numPages: 1}
}

// window clamps the requested page to [1, num_pages] and returns limit/offset.
// Zero results still yield one empty page.
func (p *paginator) window(total int64) (limit, offset int) {
	p.count = total
	p.numPages = 1
	if total > 0 {
		p.numPages = int((total + int64(p.size) - 1) / int64(p.size))
	}

	p.number = p.requested
	if p.number < 1 {
		p.number = 1
	}
	if p.number > p.numPages {
		p.number = p.numPages
	}
	return p.size, (p.number - 1) * p.size
}

func (p *paginator) page(posts []*models.Post) *Page {
	if posts == nil {
		posts = []*models.Post{}
	}
	return &Page{
		Posts:       posts,
		Number:      p.number,
		NumPages:    p.numPages,
		Count:       p.count,
		PageSize:    p.size,
		HasNext:     p.number < p.numPages,
		HasPrevious: p.number > 1,
	}
}
