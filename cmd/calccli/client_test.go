package main

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/sd"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/openzipkin/zipkin-go/reporter"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/cage1016/gokitcalc/pkg/calcsvc/endpoints"
	"github.com/cage1016/gokitcalc/pkg/calcsvc/service"
	"github.com/cage1016/gokitcalc/pkg/calcsvc/transports"
)

func newTestServer(t *testing.T) (*httptest.Server, stdopentracing.Tracer, *stdzipkin.Tracer) {
	zipkinTracer, err := stdzipkin.NewTracer(reporter.NewNoopReporter(), stdzipkin.WithNoopTracer(true))
	require.NoError(t, err)
	otTracer := stdopentracing.NoopTracer{}

	logger := log.NewNopLogger()
	svc := service.New(logger, discard.NewCounter())
	eps := endpoints.New(svc, logger, otTracer, zipkinTracer, discard.NewHistogram(), rate.Inf)
	server := httptest.NewServer(transports.NewHTTPHandler(eps, otTracer, zipkinTracer, logger))
	t.Cleanup(server.Close)
	return server, otTracer, zipkinTracer
}

func TestNewClientHTTP(t *testing.T) {
	server, otTracer, zipkinTracer := newTestServer(t)

	svc, closer, err := newClient(clientConfig{httpAddr: server.URL}, otTracer, zipkinTracer, log.NewNopLogger())
	require.NoError(t, err)
	defer closer()

	rs, err := svc.Add(context.Background(), 3, 4)
	require.NoError(t, err)
	require.Equal(t, int64(7), rs)
}

func TestNewClientNoTarget(t *testing.T) {
	_, _, err := newClient(clientConfig{}, stdopentracing.NoopTracer{}, nil, log.NewNopLogger())
	require.Equal(t, errNoTarget, err)
}

func TestAddFactory(t *testing.T) {
	server, otTracer, zipkinTracer := newTestServer(t)

	ep, closer, err := addFactory(otTracer, zipkinTracer, log.NewNopLogger())(strings.TrimPrefix(server.URL, "http://"))
	require.NoError(t, err)
	require.Nil(t, closer)

	resp, err := ep(context.Background(), endpoints.AddRequest{X: 2, Y: 5})
	require.NoError(t, err)
	require.Equal(t, int64(7), resp.(endpoints.AddResponse).Rs)
}

func TestBalancedEndpointRetries(t *testing.T) {
	server, otTracer, zipkinTracer := newTestServer(t)
	good, _, err := addFactory(otTracer, zipkinTracer, log.NewNopLogger())(server.URL)
	require.NoError(t, err)

	var bad endpoint.Endpoint = func(context.Context, interface{}) (interface{}, error) {
		return nil, errors.New("instance down")
	}

	svc := endpoints.Endpoints{
		AddEndpoint: balancedEndpoint(sd.FixedEndpointer{bad, good}, 3, time.Second),
	}
	for i := 0; i < 4; i++ {
		rs, err := svc.Add(context.Background(), 20, 22)
		require.NoError(t, err)
		require.Equal(t, int64(42), rs)
	}
}
