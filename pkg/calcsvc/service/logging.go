package service

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

type loggingMiddleware struct {
	logger log.Logger
	next   CalcService
}

// LoggingMiddleware takes a logger as a dependency
// and returns a ServiceMiddleware.
func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next CalcService) CalcService {
		return loggingMiddleware{level.Info(logger), next}
	}
}

func (lm loggingMiddleware) Add(ctx context.Context, x int64, y int64) (rs int64, err error) {
	defer func(begin time.Time) {
		lm.logger.Log("method", "Add", "x", x, "y", y, "rs", rs, "err", err, "took", time.Since(begin))
	}(time.Now())

	return lm.next.Add(ctx, x, y)
}
