package service

import (
	"context"
	"fmt"

	"github.com/go-kit/kit/metrics"
)

type instrumentingMiddleware struct {
	additions metrics.Counter
	next      CalcService
}

// InstrumentingMiddleware counts every Add call, labelled by method and by
// whether the call failed.
func InstrumentingMiddleware(additions metrics.Counter) Middleware {
	return func(next CalcService) CalcService {
		return instrumentingMiddleware{additions: additions, next: next}
	}
}

func (im instrumentingMiddleware) Add(ctx context.Context, x int64, y int64) (rs int64, err error) {
	defer func() {
		im.additions.With("method", "Add", "error", fmt.Sprint(err != nil)).Add(1)
	}()

	return im.next.Add(ctx, x, y)
}
