package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	stdopentracing "github.com/opentracing/opentracing-go"
	"github.com/openzipkin/zipkin-go"
	"github.com/openzipkin/zipkin-go/reporter"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"

	"github.com/cage1016/gokitcalc/pkg/calcsvc/operands"
)

const (
	defRetryMax     = 3
	defRetryTimeout = 500 * time.Millisecond
	defServiceName  = "calcsvc"
)

func main() {
	fs := flag.NewFlagSet("calccli", flag.ExitOnError)
	var (
		httpAddr     = fs.String("http-addr", "", "HTTP address of calcsvc")
		grpcAddr     = fs.String("grpc-addr", "", "gRPC address of calcsvc")
		consulAddr   = fs.String("consul-addr", "", "Consul agent address; calcsvc instances are discovered over HTTP")
		serviceName  = fs.String("service", defServiceName, "service name to discover in Consul")
		retryMax     = fs.Int("retry-max", defRetryMax, "per-request retries over discovered instances")
		retryTimeout = fs.Duration("retry-timeout", defRetryTimeout, "per-request time budget over discovered instances")
		zipkinURL    = fs.String("zipkin-url", "", "Zipkin V2 collector URL, empty disables tracing")
	)
	fs.Usage = usageFor(fs, os.Args[0]+" [flags] <x> <y>")
	fs.Parse(os.Args[1:])
	if len(fs.Args()) != 2 {
		fs.Usage()
		os.Exit(1)
	}

	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(os.Stderr)
		logger = level.NewFilter(logger, level.AllowWarn())
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	}

	x, err := operands.ParseInteger(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: x: %v\n", err)
		os.Exit(1)
	}
	y, err := operands.ParseInteger(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: y: %v\n", err)
		os.Exit(1)
	}

	otTracer := stdopentracing.GlobalTracer()

	var zipkinTracer *zipkin.Tracer
	{
		var rep reporter.Reporter = reporter.NewNoopReporter()
		if *zipkinURL != "" {
			rep = zipkinhttp.NewReporter(*zipkinURL)
		}
		defer rep.Close()
		zEP, _ := zipkin.NewEndpoint("calccli", "localhost:0")
		zipkinTracer, err = zipkin.NewTracer(rep, zipkin.WithLocalEndpoint(zEP), zipkin.WithNoopTracer(*zipkinURL == ""))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	svc, closer, err := newClient(clientConfig{
		httpAddr:     *httpAddr,
		grpcAddr:     *grpcAddr,
		consulAddr:   *consulAddr,
		serviceName:  *serviceName,
		retryMax:     *retryMax,
		retryTimeout: *retryTimeout,
	}, otTracer, zipkinTracer, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closer()

	rs, err := svc.Add(context.Background(), x, y)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		closer()
		os.Exit(1)
	}
	fmt.Fprintln(os.Stdout, rs)
}

func usageFor(fs *flag.FlagSet, short string) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "USAGE\n")
		fmt.Fprintf(os.Stderr, "  %s\n", short)
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "FLAGS\n")
		w := tabwriter.NewWriter(os.Stderr, 0, 2, 2, ' ', 0)
		fs.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(w, "\t-%s %s\t%s\n", f.Name, f.DefValue, f.Usage)
		})
		w.Flush()
		fmt.Fprintf(os.Stderr, "\n")
	}
}
