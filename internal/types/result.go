package types

// Result is either Ok(value) or Err(message)
type Result[T any] struct {
	value    T
	err      string
	ok       bool
	notFound bool
}

// Ok wraps a successful value
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Err wraps a failure message
func Err[T any](message string) Result[T] {
	if message == "" {
		message = "request failed"
	}
	return Result[T]{err: message}
}

// NotFound is an Err for a resource the remote API does not know
func NotFound[T any](message string) Result[T] {
	r := Err[T](message)
	r.notFound = true
	return r
}

// IsNotFound reports whether the failure means the resource does not exist
func (r Result[T]) IsNotFound() bool { return r.notFound }

// IsOk reports whether the result holds a value
func (r Result[T]) IsOk() bool { return r.ok }

// Value returns the value and whether the result is Ok
func (r Result[T]) Value() (T, bool) { return r.value, r.ok }

// Message returns the failure message, empty for Ok
func (r Result[T]) Message() string { return r.err }

// Envelope is the wire format of every remote API response
type Envelope[T any] struct {
	Success    bool        `json:"success"`
	Data       T           `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// Pagination describes a page of a list response
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// HasNext reports whether another page follows
func (p *Pagination) HasNext() bool {
	return p != nil && p.Page < p.TotalPages
}

// HasPrev reports whether a previous page exists
func (p *Pagination) HasPrev() bool {
	return p != nil && p.Page > 1
}
