package dto

import (
	"hotel/shared/constant"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir"`
}

// FromRequest populates QueryParams from the HTTP request. Invalid page and
// limit values are ignored; a missing limit leaves the listing unpaginated.
func (q *QueryParams) FromRequest(r *http.Request) {
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

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}
}

// Sanitize drops a sort column outside allowed and fills the default order.
// Column names are interpolated into SQL, so only allow-listed names pass.
func (q *QueryParams) Sanitize(allowed []string) {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = constant.DefaultValueSortBy
	}

	if q.SortDir == "" {
		q.SortDir = constant.DefaultValueSortDir
	}
}
