package endpoints

import (
	"context"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/cage1016/gokitcalc/pkg/calcsvc/service"
)

const rateLimitBurst = 100

// Endpoints collects all of the endpoints that compose the calcsvc service. It's
// meant to be used as a helper struct, to collect all of the endpoints into a
// single parameter.
type Endpoints struct {
	AddEndpoint endpoint.Endpoint
}

// New return a new instance of the endpoint that wraps the provided service.
// limit caps accepted requests per second; rate.Inf disables limiting.
func New(svc service.CalcService, logger log.Logger, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, duration metrics.Histogram, limit rate.Limit) (ep Endpoints) {
	var addEndpoint endpoint.Endpoint
	{
		method := "add"
		addEndpoint = MakeAddEndpoint(svc)
		addEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: method}))(addEndpoint)
		// outside the breaker, so rejected requests never count as breaker failures
		addEndpoint = ratelimit.NewErroringLimiter(rate.NewLimiter(limit, rateLimitBurst))(addEndpoint)
		addEndpoint = opentracing.TraceServer(otTracer, method)(addEndpoint)
		addEndpoint = zipkin.TraceEndpoint(zipkinTracer, method)(addEndpoint)
		addEndpoint = LoggingMiddleware(log.With(logger, "method", method))(addEndpoint)
		addEndpoint = InstrumentingMiddleware(duration.With("method", method))(addEndpoint)
		ep.AddEndpoint = addEndpoint
	}

	return ep
}

// MakeAddEndpoint returns an endpoint that invokes Add on the service.
// Primarily useful in a server.
func MakeAddEndpoint(svc service.CalcService) (ep endpoint.Endpoint) {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(AddRequest)
		if err := req.validate(); err != nil {
			return AddResponse{}, err
		}
		rs, err := svc.Add(ctx, req.X, req.Y)
		return AddResponse{Rs: rs, Err: err}, nil
	}
}

// Add implements the service interface, so Endpoints may be used as a service.
// This is primarily useful in the context of a client library.
func (e Endpoints) Add(ctx context.Context, x int64, y int64) (rs int64, err error) {
	resp, err := e.AddEndpoint(ctx, AddRequest{X: x, Y: y})
	if err != nil {
		return
	}
	response := resp.(AddResponse)
	return response.Rs, response.Err
}
