package shared

import (
	"bilateral/shared/dto"
	"database/sql"
	"strings"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins non-empty parts into a colon separated key.
func BuildCacheKey(parts ...string) string {
	keys := make([]string, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			continue
		}

		keys = append(keys, part)
	}

	return strings.Join(keys, cacheKeySeparator)
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// NullStringPtr maps a nullable column to a JSON nullable value.
func NullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}

	return &value.String
}

// StringToNull stores blank strings as NULL.
func StringToNull(value string) sql.NullString {
	value = strings.TrimSpace(value)

	return sql.NullString{String: value, Valid: value != ""}
}
