package dto

import "time"

// APIResponse is the standard envelope for error payloads and simple
// status responses. Domain endpoints return their documented payloads
// directly.
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp,omitempty"`
}

// PaginatedResponse is a page-numbered listing with sibling page links
type PaginatedResponse struct {
	Count    int64       `json:"count"`
	NumPages int         `json:"num_pages"`
	Previous *string     `json:"previous"`
	Next     *string     `json:"next"`
	Results  interface{} `json:"results"`
}
