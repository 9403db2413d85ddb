package types

import (
	"net/url"
	"strconv"
	"strings"
)

// RecipeQuery holds the filter, sort and pagination parameters of a list request
type RecipeQuery struct {
	Category string `form:"category" json:"category,omitempty"`
	Search   string `form:"search" json:"search,omitempty"`
	Sort     string `form:"sort" json:"sort,omitempty"`
	Page     int    `form:"page" json:"page,omitempty"`
	Limit    int    `form:"limit" json:"limit,omitempty"`
}

// Normalize trims the parameters and drops values that do not change the request
func (q RecipeQuery) Normalize() RecipeQuery {
	q.Category = strings.ToLower(strings.TrimSpace(q.Category))
	q.Search = strings.TrimSpace(q.Search)
	q.Sort = strings.TrimSpace(q.Sort)
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Limit < 0 {
		q.Limit = 0
	}
	return q
}

// Values encodes the query for the remote API
func (q RecipeQuery) Values() url.Values {
	q = q.Normalize()
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// Key returns the canonical cache key of the full parameter set
func (q RecipeQuery) Key() string {
	// url.Values.Encode sorts by key
	return "recipes?" + q.Values().Encode()
}
