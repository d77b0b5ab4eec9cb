package dto

import "strconv"

// ErrorResponse is the envelope for every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Default page window when the client sends nothing usable.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// ParsePage returns the page number, falling back to 1 for absent,
// non-numeric or non-positive values.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return DefaultPage
	}
	return n
}

// ParsePageSize returns the page size, falling back to 10 for absent,
// non-numeric or non-positive values.
func ParsePageSize(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return DefaultPageSize
	}
	return n
}

// PageMeta describes one page of a listing.
type PageMeta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}
