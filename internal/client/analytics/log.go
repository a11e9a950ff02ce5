package analytics

import (
	"context"
	"sort"

	"github.com/firflight/firflight/internal/logging"
)

type LogTracker struct {
	logger logging.Logger
}

func NewLogTracker(logger logging.Logger) *LogTracker {
	return &LogTracker{logger: logger.With("module", "analytics")}
}

func (t *LogTracker) Track(ctx context.Context, e Event) {
	keys := make([]string, 0, len(e.Attributes))
	for k := range e.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, 2+2*len(keys))
	args = append(args, "event", e.Name)
	for _, k := range keys {
		args = append(args, k, e.Attributes[k])
	}
	t.logger.Info(ctx, "event", args...)
}
