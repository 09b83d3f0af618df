package main

import (
	"errors"
	"io"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/sd"
	consulsd "github.com/go-kit/kit/sd/consul"
	"github.com/go-kit/kit/sd/lb"
	consulapi "github.com/hashicorp/consul/api"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"google.golang.org/grpc"

	"github.com/cage1016/gokitcalc/pkg/calcsvc/endpoints"
	"github.com/cage1016/gokitcalc/pkg/calcsvc/service"
	"github.com/cage1016/gokitcalc/pkg/calcsvc/transports"
)

type clientConfig struct {
	httpAddr     string
	grpcAddr     string
	consulAddr   string
	serviceName  string
	retryMax     int
	retryTimeout time.Duration
}

var errNoTarget = errors.New("one of -http-addr, -grpc-addr or -consul-addr is required")

// newClient builds a CalcService for the first configured target. The
// returned func releases whatever the client holds.
func newClient(cfg clientConfig, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) (service.CalcService, func(), error) {
	switch {
	case cfg.httpAddr != "":
		svc, err := transports.NewHTTPClient(cfg.httpAddr, otTracer, zipkinTracer, logger)
		return svc, func() {}, err

	case cfg.grpcAddr != "":
		conn, err := grpc.Dial(cfg.grpcAddr, grpc.WithInsecure())
		if err != nil {
			return nil, nil, err
		}
		return transports.NewGRPCClient(conn, otTracer, zipkinTracer, logger), func() { conn.Close() }, nil

	case cfg.consulAddr != "":
		consulCfg := consulapi.DefaultConfig()
		consulCfg.Address = cfg.consulAddr
		consulClient, err := consulapi.NewClient(consulCfg)
		if err != nil {
			return nil, nil, err
		}
		instancer := consulsd.NewInstancer(consulsd.NewClient(consulClient), logger, cfg.serviceName, nil, true)
		endpointer := sd.NewEndpointer(instancer, addFactory(otTracer, zipkinTracer, logger), logger)
		svc := endpoints.Endpoints{
			AddEndpoint: balancedEndpoint(endpointer, cfg.retryMax, cfg.retryTimeout),
		}
		return svc, instancer.Stop, nil
	}
	return nil, nil, errNoTarget
}

// addFactory turns a discovered "host:port" instance into an Add endpoint
// backed by the HTTP client.
func addFactory(otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) sd.Factory {
	return func(instance string) (endpoint.Endpoint, io.Closer, error) {
		svc, err := transports.NewHTTPClient(instance, otTracer, zipkinTracer, logger)
		if err != nil {
			return nil, nil, err
		}
		return endpoints.MakeAddEndpoint(svc), nil, nil
	}
}

func balancedEndpoint(endpointer sd.Endpointer, retryMax int, retryTimeout time.Duration) endpoint.Endpoint {
	balancer := lb.NewRoundRobin(endpointer)
	return lb.Retry(retryMax, retryTimeout, balancer)
}
