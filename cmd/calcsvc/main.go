package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	consulsd "github.com/go-kit/kit/sd/consul"
	kitgrpc "github.com/go-kit/kit/transport/grpc"
	consulapi "github.com/hashicorp/consul/api"
	stdopentracing "github.com/opentracing/opentracing-go"
	"github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	pb "github.com/cage1016/gokitcalc/pb/calcsvc"
	"github.com/cage1016/gokitcalc/pkg/calcsvc/endpoints"
	"github.com/cage1016/gokitcalc/pkg/calcsvc/service"
	"github.com/cage1016/gokitcalc/pkg/calcsvc/transports"
)

const (
	defZipkinV2URL string = ""
	defNameSpace   string = "gokitcalc"
	defServiceName string = "calcsvc"
	defLogLevel    string = "info"
	defServiceHost string = "localhost"
	defHTTPPort    string = "5000"
	defGRPCPort    string = "5001"
	defConsulHost  string = ""
	defConsulPort  string = "8500"
	defRateLimit   string = ""
	envZipkinV2URL string = "QS_ZIPKIN_V2_URL"
	envNameSpace   string = "QS_CALCSVC_NAMESPACE"
	envServiceName string = "QS_CALCSVC_SERVICE_NAME"
	envLogLevel    string = "QS_CALCSVC_LOG_LEVEL"
	envServiceHost string = "QS_CALCSVC_SERVICE_HOST"
	envHTTPPort    string = "QS_CALCSVC_HTTP_PORT"
	envGRPCPort    string = "QS_CALCSVC_GRPC_PORT"
	envConsulHost  string = "QS_CONSUL_HOST"
	envConsulPort  string = "QS_CONSUL_PORT"
	envRateLimit   string = "QS_CALCSVC_RATE_LIMIT"
)

type config struct {
	nameSpace   string
	serviceName string
	logLevel    string
	serviceHost string
	httpPort    string
	grpcPort    string
	zipkinV2URL string
	consulHost  string
	consulPort  string
	rateLimit   rate.Limit
}

// Env reads specified environment variable. If no value has been found,
// fallback is returned.
func env(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrEmpty is like env, but an explicitly empty variable is kept.
func envOrEmpty(key string, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func main() {
	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(os.Stderr)
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
		logger = log.With(logger, "caller", log.DefaultCaller)
	}
	cfg := loadConfig(logger)
	logger = level.NewFilter(logger, allowLevel(cfg.logLevel))
	logger = log.With(logger, "service", cfg.serviceName)

	errs := make(chan error, 2)
	grpcServer, httpHandler := NewServer(cfg, logger)
	hs := health.NewServer()
	hs.SetServingStatus(cfg.serviceName, healthgrpc.HealthCheckResponse_SERVING)

	if cfg.consulHost != "" {
		registrar, err := newRegistrar(cfg, logger)
		if err != nil {
			level.Error(logger).Log("consul", cfg.consulHost, "err", err)
			os.Exit(1)
		}
		registrar.Register()
		defer registrar.Deregister()
	}

	go startHTTPServer(cfg, httpHandler, logger, errs)
	go startGRPCServer(cfg, hs, grpcServer, logger, errs)

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	err := <-errs
	level.Info(logger).Log("serviceName", cfg.serviceName, "terminated", err)
}

func loadConfig(logger log.Logger) (cfg config) {
	cfg.nameSpace = env(envNameSpace, defNameSpace)
	cfg.serviceName = env(envServiceName, defServiceName)
	cfg.logLevel = env(envLogLevel, defLogLevel)
	cfg.serviceHost = env(envServiceHost, defServiceHost)
	cfg.httpPort = env(envHTTPPort, defHTTPPort)
	cfg.grpcPort = envOrEmpty(envGRPCPort, defGRPCPort)
	cfg.zipkinV2URL = env(envZipkinV2URL, defZipkinV2URL)
	cfg.consulHost = env(envConsulHost, defConsulHost)
	cfg.consulPort = env(envConsulPort, defConsulPort)

	if _, err := strconv.Atoi(cfg.httpPort); err != nil {
		level.Error(logger).Log(envHTTPPort, cfg.httpPort, "err", err, "fallback", defHTTPPort)
		cfg.httpPort = defHTTPPort
	}

	cfg.rateLimit = rate.Inf
	if v := env(envRateLimit, defRateLimit); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		switch {
		case err != nil:
			level.Error(logger).Log(envRateLimit, v, "err", err, "fallback", "unlimited")
		case limit > 0:
			cfg.rateLimit = rate.Limit(limit)
		}
	}
	return cfg
}

func allowLevel(s string) level.Option {
	switch strings.ToLower(s) {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

func NewServer(cfg config, logger log.Logger) (pb.CalcsvcServer, http.Handler) {
	var tracer stdopentracing.Tracer
	{
		tracer = stdopentracing.GlobalTracer()
	}

	var zipkinTracer *zipkin.Tracer
	{
		var (
			err           error
			hostPort      = fmt.Sprintf("%s:%s", cfg.serviceHost, cfg.httpPort)
			serviceName   = cfg.serviceName
			useNoopTracer = (cfg.zipkinV2URL == "")
			reporter      = zipkinhttp.NewReporter(cfg.zipkinV2URL)
		)
		zEP, _ := zipkin.NewEndpoint(serviceName, hostPort)
		zipkinTracer, err = zipkin.NewTracer(reporter, zipkin.WithLocalEndpoint(zEP), zipkin.WithNoopTracer(useNoopTracer))
		if err != nil {
			level.Error(logger).Log("err", err)
			os.Exit(1)
		}
		if !useNoopTracer {
			level.Info(logger).Log("tracer", "Zipkin", "type", "Native", "URL", cfg.zipkinV2URL)
		}
	}

	additions := kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: cfg.nameSpace,
		Subsystem: cfg.serviceName,
		Name:      "additions_total",
		Help:      "Total number of additions performed.",
	}, []string{"method", "error"})

	duration := kitprometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Namespace: cfg.nameSpace,
		Subsystem: cfg.serviceName,
		Name:      "request_duration_seconds",
		Help:      "Request duration in seconds.",
		Buckets:   stdprometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"method", "success"})

	service := service.New(logger, additions)
	endpoints := endpoints.New(service, logger, tracer, zipkinTracer, duration, cfg.rateLimit)
	grpcServer := transports.MakeGRPCServer(endpoints, tracer, zipkinTracer, logger)

	m := http.NewServeMux()
	m.Handle("/metrics", promhttp.Handler())
	m.Handle("/", transports.NewHTTPHandler(endpoints, tracer, zipkinTracer, logger))

	return grpcServer, m
}

func newRegistrar(cfg config, logger log.Logger) (*consulsd.Registrar, error) {
	port, err := strconv.Atoi(cfg.httpPort)
	if err != nil {
		return nil, err
	}

	consulCfg := consulapi.DefaultConfig()
	consulCfg.Address = fmt.Sprintf("%s:%s", cfg.consulHost, cfg.consulPort)
	consulClient, err := consulapi.NewClient(consulCfg)
	if err != nil {
		return nil, err
	}

	check := consulapi.AgentServiceCheck{
		HTTP:     fmt.Sprintf("http://%s:%d/health", cfg.serviceHost, port),
		Interval: "10s",
		Timeout:  "1s",
		Notes:    "Basic health checks",
	}
	asr := consulapi.AgentServiceRegistration{
		ID:      fmt.Sprintf("%s-%s-%d", cfg.serviceName, cfg.serviceHost, port),
		Name:    cfg.serviceName,
		Address: cfg.serviceHost,
		Port:    port,
		Tags:    []string{cfg.nameSpace, cfg.serviceName},
		Check:   &check,
	}
	return consulsd.NewRegistrar(consulsd.NewClient(consulClient), &asr, logger), nil
}

func startHTTPServer(cfg config, httpHandler http.Handler, logger log.Logger, errs chan error) {
	p := fmt.Sprintf(":%s", cfg.httpPort)
	level.Info(logger).Log("serviceName", cfg.serviceName, "protocol", "HTTP", "exposed", cfg.httpPort)
	errs <- http.ListenAndServe(p, httpHandler)
}

func startGRPCServer(cfg config, hs *health.Server, grpcServer pb.CalcsvcServer, logger log.Logger, errs chan error) {
	if cfg.grpcPort == "" {
		level.Info(logger).Log("serviceName", cfg.serviceName, "protocol", "GRPC", "exposed", "disabled")
		return
	}
	p := fmt.Sprintf(":%s", cfg.grpcPort)
	listener, err := net.Listen("tcp", p)
	if err != nil {
		level.Error(logger).Log("serviceName", cfg.serviceName, "protocol", "GRPC", "listen", cfg.grpcPort, "err", err)
		os.Exit(1)
	}

	var server *grpc.Server
	level.Info(logger).Log("serviceName", cfg.serviceName, "protocol", "GRPC", "exposed", cfg.grpcPort)
	server = grpc.NewServer(grpc.UnaryInterceptor(kitgrpc.Interceptor))
	pb.RegisterCalcsvcServer(server, grpcServer)
	healthgrpc.RegisterHealthServer(server, hs)
	reflection.Register(server)
	errs <- server.Serve(listener)
}
