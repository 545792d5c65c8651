package dto_test

import (
	"bilateral/shared/dto"
	"reflect"
	"testing"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name         string
		filter       dto.Filter
		expectedSQL  string
		expectedArgs map[string]any
	}{
		{
			name:         "eq with table",
			filter:       dto.Filter{Field: "id", Value: "s1", Operator: dto.FilterOperatorEq, Table: "slots"},
			expectedSQL:  "slots.id = :id",
			expectedArgs: map[string]any{"id": "s1"},
		},
		{
			name:         "eq with explicit arg name",
			filter:       dto.Filter{ArgName: "slot_id", Field: "id", Value: "s1", Operator: dto.FilterOperatorEq},
			expectedSQL:  "id = :slot_id",
			expectedArgs: map[string]any{"slot_id": "s1"},
		},
		{
			name:         "not eq",
			filter:       dto.Filter{Field: "name", Value: "Reserved", Operator: dto.FilterOperatorNotEq},
			expectedSQL:  "name != :name",
			expectedArgs: map[string]any{"name": "Reserved"},
		},
		{
			name:         "in with slice",
			filter:       dto.Filter{Field: "id", Value: []string{"a", "b"}, Operator: dto.FilterOperatorIn},
			expectedSQL:  "id IN (:id_0, :id_1)",
			expectedArgs: map[string]any{"id_0": "a", "id_1": "b"},
		},
		{
			name:         "in with empty slice matches nothing",
			filter:       dto.Filter{Field: "id", Value: []string{}, Operator: dto.FilterOperatorIn},
			expectedSQL:  "FALSE",
			expectedArgs: map[string]any{},
		},
		{
			name:         "in with scalar is ignored",
			filter:       dto.Filter{Field: "id", Value: "a", Operator: dto.FilterOperatorIn},
			expectedSQL:  "",
			expectedArgs: map[string]any{},
		},
		{
			name:         "is not null",
			filter:       dto.Filter{Field: "id", Operator: dto.FilterIsNotNull, Table: "bookings"},
			expectedSQL:  "bookings.id IS NOT NULL",
			expectedArgs: map[string]any{},
		},
		{
			name:         "is null",
			filter:       dto.Filter{Field: "id", Operator: dto.FilterIsNull, Table: "bookings"},
			expectedSQL:  "bookings.id IS NULL",
			expectedArgs: map[string]any{},
		},
		{
			name:         "unknown operator",
			filter:       dto.Filter{Field: "id", Value: 1, Operator: "like"},
			expectedSQL:  "",
			expectedArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.filter.GetWhereClause()

			if sql != tt.expectedSQL {
				t.Errorf("expected SQL %q, got %q", tt.expectedSQL, sql)
			}

			if !reflect.DeepEqual(args, tt.expectedArgs) {
				t.Errorf("expected args %v, got %v", tt.expectedArgs, args)
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "slot_id", Value: "s1", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "name", Value: "Ana", Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "email", Operator: dto.FilterIsNull},
				},
			},
			"ignored",
		},
	}

	sql, args := group.GetWhereClause()

	expected := "(slot_id = :slot_id AND (name = :name OR email IS NULL))"
	if sql != expected {
		t.Errorf("expected %q, got %q", expected, sql)
	}

	if len(args) != 2 || args["slot_id"] != "s1" || args["name"] != "Ana" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{}

	sql, args := group.GetWhereClause()
	if sql != "" {
		t.Errorf("expected empty clause, got %q", sql)
	}

	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestQueryParams_OrderClause(t *testing.T) {
	tests := []struct {
		name     string
		params   dto.QueryParams
		expected string
	}{
		{
			name:     "no sort",
			params:   dto.QueryParams{},
			expected: "",
		},
		{
			name: "multiple keys keep order",
			params: dto.QueryParams{Sort: []dto.Sort{
				{Column: "slots.date", Dir: dto.SortDirAsc},
				{Column: "slots.start_time", Dir: "desc"},
			}},
			expected: "ORDER BY slots.date ASC, slots.start_time DESC",
		},
		{
			name:     "unknown direction falls back to ASC",
			params:   dto.QueryParams{Sort: []dto.Sort{{Column: "date", Dir: "sideways"}}},
			expected: "ORDER BY date ASC",
		},
		{
			name:     "blank column skipped",
			params:   dto.QueryParams{Sort: []dto.Sort{{Column: ""}}},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.OrderClause(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestQueryParams_Pagination(t *testing.T) {
	tests := []struct {
		name         string
		params       dto.QueryParams
		expectedSQL  string
		expectedArgs map[string]any
	}{
		{
			name:         "page and limit",
			params:       dto.QueryParams{Page: 3, Limit: 10},
			expectedSQL:  "LIMIT :limit OFFSET :offset",
			expectedArgs: map[string]any{"limit": 10, "offset": 20},
		},
		{
			name:         "limit only",
			params:       dto.QueryParams{Limit: 5},
			expectedSQL:  "LIMIT :limit",
			expectedArgs: map[string]any{"limit": 5},
		},
		{
			name:         "nothing",
			params:       dto.QueryParams{Page: 2},
			expectedSQL:  "",
			expectedArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.params.Pagination()

			if sql != tt.expectedSQL {
				t.Errorf("expected %q, got %q", tt.expectedSQL, sql)
			}

			if !reflect.DeepEqual(args, tt.expectedArgs) {
				t.Errorf("expected args %v, got %v", tt.expectedArgs, args)
			}
		})
	}
}

func TestSortDirectionConstants(t *testing.T) {
	if dto.SortDirAsc != "ASC" {
		t.Errorf("expected SortDirAsc to be 'ASC', got %s", dto.SortDirAsc)
	}

	if dto.SortDirDesc != "DESC" {
		t.Errorf("expected SortDirDesc to be 'DESC', got %s", dto.SortDirDesc)
	}
}
