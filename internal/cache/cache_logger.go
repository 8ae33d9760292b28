package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates a cache pattern with logging.
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateClassCache drops the cached class record plus every list and
// stats projection it can appear in.
func InvalidateClassCache(ctx context.Context, cm *CacheManager, classID uint) {
	SafeDelete(ctx, cm.Class, fmt.Sprintf("id:%d", classID))
	SafeInvalidatePattern(ctx, cm.Class, "list:*")
	SafeInvalidatePattern(ctx, cm.Stats, "*")
}

// InvalidateSubjectCache drops the cached subject record and list projections.
func InvalidateSubjectCache(ctx context.Context, cm *CacheManager, subjectID uint) {
	SafeDelete(ctx, cm.Subject, fmt.Sprintf("id:%d", subjectID))
	SafeInvalidatePattern(ctx, cm.Subject, "list:*")
	SafeInvalidatePattern(ctx, cm.Stats, "*")
}
