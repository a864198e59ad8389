package pagination

import (
	"errors"
	"net/url"
	"strconv"
)

// DefaultLimit applies to most list endpoints; likes use DefaultLikesLimit.
const (
	DefaultLimit      = 10
	DefaultLikesLimit = 20
)

var (
	// ErrInvalidPage is returned when the page parameter is not a positive integer.
	ErrInvalidPage = errors.New("invalid page parameter")

	// ErrInvalidLimit is returned when the limit parameter is not a positive integer.
	ErrInvalidLimit = errors.New("invalid limit parameter")
)

// Params holds validated pagination input. Page and Limit are always >= 1.
type Params struct {
	Page  int
	Limit int
}

// ParseParams reads page/limit from query parameters. Absent values fall
// back to page=1 and the given default limit; present values must parse as
// positive integers. Non-numeric or non-positive input is rejected rather
// than silently coerced.
func ParseParams(q url.Values, defaultLimit int) (Params, error) {
	p := Params{Page: 1, Limit: defaultLimit}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Params{}, ErrInvalidPage
		}
		p.Page = page
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return Params{}, ErrInvalidLimit
		}
		p.Limit = limit
	}

	return p, nil
}

// Offset returns the number of rows to skip for this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is the counted page envelope returned by list endpoints that report
// totals. Docs is never nil so it serializes as [] rather than null.
type Page[T any] struct {
	Docs        []T   `json:"docs"`
	TotalDocs   int64 `json:"totalDocs"`
	TotalPages  int   `json:"totalPages"`
	Page        int   `json:"page"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPage assembles the envelope from one page of docs and the total count.
func NewPage[T any](docs []T, totalDocs int64, p Params) Page[T] {
	if docs == nil {
		docs = []T{}
	}

	totalPages := int((totalDocs + int64(p.Limit) - 1) / int64(p.Limit))
	if totalPages < 1 {
		totalPages = 1
	}

	return Page[T]{
		Docs:        docs,
		TotalDocs:   totalDocs,
		TotalPages:  totalPages,
		Page:        p.Page,
		HasNextPage: p.Page < totalPages,
		HasPrevPage: p.Page > 1,
	}
}
