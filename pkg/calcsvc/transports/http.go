package transports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/cage1016/gokitcalc/pkg/calcsvc/endpoints"
	"github.com/cage1016/gokitcalc/pkg/calcsvc/operands"
	"github.com/cage1016/gokitcalc/pkg/calcsvc/service"
)

const (
	maxFormMemory = 32 << 20
	maxJSONBody   = 1 << 20
)

// errSemicolon rejects ';' as a query separator. Only '&' separates pairs.
var errSemicolon = errors.New("invalid semicolon separator in query")

type errorWrapper struct {
	Error string `json:"error"`
}

// JSONErrorDecoder turns the JSON error body of a failed reply into an error.
func JSONErrorDecoder(r *http.Response) error {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return fmt.Errorf("expected JSON formatted error, got Content-Type %s", contentType)
	}
	var w errorWrapper
	if err := json.NewDecoder(r.Body).Decode(&w); err != nil {
		return err
	}
	return decodeServiceError(w.Error)
}

// NewHTTPHandler returns a handler that makes a set of endpoints available on
// predefined paths.
func NewHTTPHandler(endpoints endpoints.Endpoints, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) http.Handler {
	// Zipkin HTTP Server Trace can either be instantiated per endpoint with a
	// provided operation name or a global tracing service can be instantiated
	// without an operation name and fed to each Go kit endpoint as ServerOption.
	// We use the global one; the span name is the HTTP method.
	zipkinServer := zipkin.HTTPServerTrace(zipkinTracer)

	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(httpEncodeError),
		httptransport.ServerErrorLogger(logger),
		zipkinServer,
	}

	r := mux.NewRouter()
	r.Methods(http.MethodGet).Path("/").Handler(newIndexHandler(logger))
	r.Methods(http.MethodGet).Path("/health").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Methods(http.MethodGet).Path("/calc").Handler(httptransport.NewServer(
		endpoints.AddEndpoint,
		decodeHTTPQueryAddRequest,
		encodeHTTPTextResponse,
		append(options, httptransport.ServerBefore(opentracing.HTTPToContext(otTracer, "Add", logger)))...,
	))
	r.Methods(http.MethodPost).Path("/calc").Handler(httptransport.NewServer(
		endpoints.AddEndpoint,
		decodeHTTPFormAddRequest,
		encodeHTTPTextResponse,
		append(options, httptransport.ServerBefore(opentracing.HTTPToContext(otTracer, "Add", logger)))...,
	))
	r.Methods(http.MethodPost).Path("/api/calc").Handler(httptransport.NewServer(
		endpoints.AddEndpoint,
		decodeHTTPJSONAddRequest,
		encodeHTTPTextResponse,
		append(options, httptransport.ServerBefore(opentracing.HTTPToContext(otTracer, "Add", logger)))...,
	))
	return r
}

func addRequestFrom(src operands.Source) (interface{}, error) {
	x, y, err := src.Extract()
	if err != nil {
		return nil, err
	}
	return endpoints.AddRequest{X: x, Y: y}, nil
}

// decodeHTTPQueryAddRequest is a transport/http.DecodeRequestFunc that reads
// the operands from the URL query string. A query with pairs that cannot be
// decoded is rejected rather than read as missing operands. Primarily useful
// in a server.
func decodeHTTPQueryAddRequest(_ context.Context, r *http.Request) (interface{}, error) {
	if strings.Contains(r.URL.RawQuery, ";") {
		return nil, &encodingError{"query string", errSemicolon}
	}
	values, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		return nil, &encodingError{"query string", err}
	}
	return addRequestFrom(operands.QuerySource{Values: values})
}

// decodeHTTPFormAddRequest is a transport/http.DecodeRequestFunc that reads
// the operands from an url-encoded or multipart form body. Query parameters
// are ignored. Primarily useful in a server.
func decodeHTTPFormAddRequest(_ context.Context, r *http.Request) (interface{}, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && err != http.ErrNotMultipart {
		return nil, &encodingError{"form body", err}
	}
	return addRequestFrom(operands.FormSource{Values: r.PostForm})
}

// decodeHTTPJSONAddRequest is a transport/http.DecodeRequestFunc that reads
// the operands from a JSON object body. Primarily useful in a server.
func decodeHTTPJSONAddRequest(_ context.Context, r *http.Request) (interface{}, error) {
	body, err := ioutil.ReadAll(io.LimitReader(r.Body, maxJSONBody+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxJSONBody {
		return nil, &operands.MalformedBodyError{Reason: "body too large"}
	}
	return addRequestFrom(operands.JSONSource{Body: body})
}

// encodeHTTPTextResponse writes the sum as a decimal string. A response
// carrying a business error is handed to the error encoder.
func encodeHTTPTextResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if f, ok := response.(endpoint.Failer); ok && f.Failed() != nil {
		httpEncodeError(ctx, f.Failed(), w)
		return nil
	}
	resp := response.(endpoints.AddResponse)
	for k, values := range resp.Headers() {
		for _, v := range values {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(resp.StatusCode())
	_, err := io.WriteString(w, strconv.FormatInt(resp.Rs, 10))
	return err
}

// NewHTTPClient returns an CalcService backed by an HTTP server living at the
// remote instance. We expect instance to come from a service discovery system,
// so likely of the form "host:port". We bake-in certain middlewares,
// implementing the client library pattern.
func NewHTTPClient(instance string, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) (service.CalcService, error) {
	if !strings.HasPrefix(instance, "http") {
		instance = "http://" + instance
	}
	u, err := url.Parse(instance)
	if err != nil {
		return nil, err
	}

	// A single ratelimiter limits the total outgoing QPS from this client to
	// the remote instance.
	limiter := ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Every(time.Second), 100))

	// global client middlewares
	options := []httptransport.ClientOption{
		zipkin.HTTPClientTrace(zipkinTracer),
	}

	var addEndpoint endpoint.Endpoint
	{
		addEndpoint = httptransport.NewClient(
			http.MethodPost,
			copyURL(u, "/api/calc"),
			encodeHTTPAddRequest,
			decodeHTTPAddResponse,
			append(options, httptransport.ClientBefore(opentracing.ContextToHTTP(otTracer, logger)))...,
		).Endpoint()
		addEndpoint = opentracing.TraceClient(otTracer, "Add")(addEndpoint)
		addEndpoint = zipkin.TraceEndpoint(zipkinTracer, "Add")(addEndpoint)
		addEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "Add",
			Timeout: 30 * time.Second,
		}))(addEndpoint)
		addEndpoint = limiter(addEndpoint)
	}

	return endpoints.Endpoints{AddEndpoint: addEndpoint}, nil
}

func copyURL(base *url.URL, path string) *url.URL {
	next := *base
	next.Path = path
	return &next
}

// encodeHTTPAddRequest is a transport/http.EncodeRequestFunc that
// JSON-encodes an add request to the request body. Primarily useful in a client.
func encodeHTTPAddRequest(_ context.Context, r *http.Request, request interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return err
	}
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	r.Body = ioutil.NopCloser(&buf)
	return nil
}

// decodeHTTPAddResponse is a transport/http.DecodeResponseFunc that reads
// the decimal sum from the HTTP response body. If the response has a
// non-200 status code, we will interpret that as an error and attempt to decode
// the specific error message from the response body. Primarily useful in a client.
func decodeHTTPAddResponse(_ context.Context, r *http.Response) (interface{}, error) {
	if r.StatusCode != http.StatusOK {
		err := JSONErrorDecoder(r)
		if err == service.ErrOverflow {
			return endpoints.AddResponse{Err: err}, nil
		}
		return nil, err
	}
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	rs, err := strconv.ParseInt(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("decode sum %q: %w", body, err)
	}
	return endpoints.AddResponse{Rs: rs}, nil
}
