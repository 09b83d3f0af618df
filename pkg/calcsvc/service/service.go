package service

import (
	"context"
	"errors"
	"math"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
)

// ErrOverflow is returned when the sum does not fit in an int64.
var ErrOverflow = errors.New("integer overflow")

// Middleware describes a service (as opposed to endpoint) middleware.
type Middleware func(CalcService) CalcService

// CalcService describes a service that adds two integers together.
type CalcService interface {
	Add(ctx context.Context, x int64, y int64) (rs int64, err error)
}

// the concrete implementation of service interface
type stubCalcService struct {
	logger log.Logger
}

// New return a new instance of the service.
// If you want to add service middleware this is the place to put them.
func New(logger log.Logger, additions metrics.Counter) (s CalcService) {
	var svc CalcService
	{
		svc = &stubCalcService{logger: logger}
		svc = LoggingMiddleware(logger)(svc)
		svc = InstrumentingMiddleware(additions)(svc)
	}
	return svc
}

// Add returns x + y, or ErrOverflow when the sum leaves the int64 range.
func (ca *stubCalcService) Add(_ context.Context, x int64, y int64) (rs int64, err error) {
	if (y > 0 && x > math.MaxInt64-y) || (y < 0 && x < math.MinInt64-y) {
		return 0, ErrOverflow
	}
	return x + y, nil
}
