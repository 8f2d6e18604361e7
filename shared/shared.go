package shared

import (
	"strconv"
	"strings"
	"svim/shared/constant"
	"svim/shared/dto"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

// ParseID parses a positive integer identifier. Surrounding whitespace is ignored.
func ParseID(value string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// BuildCacheKey joins the non-empty parts with the cache key separator.
func BuildCacheKey(parts ...string) string {
	kept := make([]string, 0, len(parts))

	for _, part := range parts {
		if part == constant.Empty {
			continue
		}

		kept = append(kept, part)
	}

	return strings.Join(kept, constant.CacheKeySeparator)
}

func FilterByID(id any, fieldID, table string) dto.FilterGroup {
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
