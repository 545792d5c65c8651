package dto

import (
	"fmt"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type Sort struct {
	Column string `json:"column" validate:"required"`
	Dir    string `json:"dir"    validate:"omitempty,oneof=ASC DESC"`
}

type QueryParams struct {
	Page  int    `json:"page"  validate:"omitempty,gte=1"`
	Limit int    `json:"limit" validate:"omitempty,gte=1"`
	Sort  []Sort `json:"sort"  validate:"omitempty,dive"`
}

// OrderClause renders the sort keys in order. Unknown directions fall back to ASC.
func (q *QueryParams) OrderClause() string {
	if len(q.Sort) == 0 {
		return ""
	}

	keys := make([]string, 0, len(q.Sort))

	for _, sort := range q.Sort {
		if sort.Column == "" {
			continue
		}

		dir := strings.ToUpper(sort.Dir)
		if dir != SortDirDesc {
			dir = SortDirAsc
		}

		keys = append(keys, fmt.Sprintf("%s %s", sort.Column, dir))
	}

	if len(keys) == 0 {
		return ""
	}

	return "ORDER BY " + strings.Join(keys, ", ")
}

// Pagination renders LIMIT/OFFSET and the named args it needs.
func (q *QueryParams) Pagination() (string, map[string]any) {
	args := map[string]any{}

	switch {
	case q.Page > 0 && q.Limit > 0:
		args["limit"] = q.Limit
		args["offset"] = (q.Page - 1) * q.Limit

		return "LIMIT :limit OFFSET :offset", args
	case q.Limit > 0:
		args["limit"] = q.Limit

		return "LIMIT :limit", args
	default:
		return "", args
	}
}
