// Package pagination implements the shared page math for all feeds:
// pages are 1-indexed, a missing or non-numeric page defaults to 1, and
// an out-of-range page clamps to the last non-empty page.
package pagination

import "strconv"

// Page describes one window over an ordered sequence.
type Page struct {
	Number     int
	Size       int
	TotalItems int64
	TotalPages int
}

// ParseNumber turns a raw query value into a page number. Anything that
// is not a positive integer becomes page 1.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Resolve clamps the requested page against the total item count and
// returns the page descriptor plus the offset of its first item.
func Resolve(requested, size int, total int64) (Page, int) {
	if size < 1 {
		size = 1
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}
	n := requested
	if n < 1 {
		n = 1
	}
	if n > totalPages {
		n = totalPages
	}
	return Page{
		Number:     n,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}, (n - 1) * size
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Prev and Next give the adjacent page numbers for template links.
func (p Page) Prev() int { return p.Number - 1 }
func (p Page) Next() int { return p.Number + 1 }
