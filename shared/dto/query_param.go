package dto

import (
	"net/http"
	"rkhub/shared/constant"
	"strconv"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// NewestFirst is the only ordering the public and admin lists support:
// created_at descending, capped at limit rows when limit > 0.
func NewestFirst(limit int) QueryParams {
	return QueryParams{
		Limit:   max(limit, 0),
		SortBy:  constant.DefaultValueSortBy,
		SortDir: SortDirDesc,
	}
}

// FromRequest populates QueryParams from the HTTP request.
// Only page and limit are read from the query string; ordering is always
// newest first, so sort_by and sort_dir are ignored.
//
// With `defaultRequest` set to true, Page and Limit fall back to their
// defaults when absent. Otherwise a missing limit means "no limit".
// Limits above constant.MaxValueLimit are clamped.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = min(limitInt, constant.MaxValueLimit)
		}
	}

	q.SortBy = constant.DefaultValueSortBy
	q.SortDir = SortDirDesc

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}
