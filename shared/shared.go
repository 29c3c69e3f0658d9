package shared

import (
	"context"
	"fmt"
	"reflect"
	"rkhub/shared/cache"
	"rkhub/shared/constant"
	"rkhub/shared/dto"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeySeparator = ":"
	cacheVersionKey   = "version"
)

// TransformFields converts the non-zero db-tagged fields of a struct into a
// column map suitable for Repository.Update.
func TransformFields(data any) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	return updatedFields
}

// FilterByField matches rows of table whose field equals value.
func FilterByField(table, field string, value any) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    field,
				Value:    value,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return FilterByField(table, fieldID, id)
}

// BuildCacheKey joins prefix and parts with ":". Empty parts are skipped.
func BuildCacheKey(prefix string, parts ...string) string {
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, prefix)

	for _, part := range parts {
		if part == constant.Empty {
			continue
		}

		segments = append(segments, part)
	}

	return strings.Join(segments, cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a deterministic key from list parameters and
// filter, so every distinct query gets its own entry under prefix.
func BuildCacheKeyWithQuery(prefix string, query dto.QueryParams, filter dto.FilterGroup) string {
	parts := []string{
		fmt.Sprintf("page=%d", query.Page),
		fmt.Sprintf("limit=%d", query.Limit),
		fmt.Sprintf("sort=%s.%s", query.SortBy, query.SortDir),
	}

	if where, args := filter.GetWhereClause(); where != constant.Empty {
		parts = append(parts, fmt.Sprintf("where=%s", where))

		keys := make([]string, 0, len(args))
		for key := range args {
			keys = append(keys, key)
		}

		slices.Sort(keys)

		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", key, args[key]))
		}
	}

	return BuildCacheKey(prefix, parts...)
}

// versionKey lives outside the prefix:* namespace so clearing a prefix
// never resets its version.
func versionKey(prefix string) string {
	return BuildCacheKey(cacheVersionKey, prefix)
}

// ListCacheKey is BuildCacheKeyWithQuery scoped to the current version of
// prefix. Rows read before a mutation can only be saved under a version that
// InvalidateCaches has already retired.
func ListCacheKey(ctx context.Context, redisCache cache.RedisCache, prefix string, query dto.QueryParams, filter dto.FilterGroup) (string, error) {
	version, err := redisCache.Version(ctx, versionKey(prefix))
	if err != nil {
		return constant.Empty, err
	}

	return BuildCacheKey(BuildCacheKeyWithQuery(prefix, query, filter), fmt.Sprintf("v=%d", version)), nil
}

// InvalidateCaches retires the current version of prefix, then removes the
// prefix entry and every key derived from it. Call it after the mutation is
// committed.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if _, err := redisCache.Bump(ctx, versionKey(prefix)); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to bump cache version")
	}

	if err := redisCache.Delete(ctx, prefix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to delete cache")
	}

	if err := redisCache.Clear(ctx, prefix+cacheKeySeparator+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to clear caches")
	}
}
